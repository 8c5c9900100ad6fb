package store

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nattawatz/linkboard/internal/models"
)

// TopicStore owns all persisted state: topics, the singleton config row and the
// append-only audit log.
type TopicStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *TopicStore {
	return &TopicStore{db: db}
}

// CreateTopic inserts the topic and fills in its assigned id.
func (s *TopicStore) CreateTopic(ctx context.Context, t *models.Topic) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// SoftDeleteTopic marks the topic deleted and reports whether a row actually
// changed. Deleting a missing or already-deleted topic returns false, nil.
func (s *TopicStore) SoftDeleteTopic(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListActiveTopics returns non-deleted topics newest-first. The id-descending
// order is the board's feed order, not an accident.
func (s *TopicStore) ListActiveTopics(ctx context.Context) ([]models.Topic, error) {
	topics := make([]models.Topic, 0)
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id DESC").
		Find(&topics).Error
	return topics, err
}

func (s *TopicStore) GetConfig(ctx context.Context) (*models.BoardConfig, error) {
	var cfg models.BoardConfig
	if err := s.db.WithContext(ctx).First(&cfg, models.ConfigRowID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetAllowedRole updates the singleton row; it never inserts a second one.
func (s *TopicStore) SetAllowedRole(ctx context.Context, roleID string) error {
	return s.db.WithContext(ctx).
		Model(&models.BoardConfig{}).
		Where("id = ?", models.ConfigRowID).
		Updates(map[string]any{
			"allowed_role_id": roleID,
			"updated_at":      time.Now().UTC(),
		}).Error
}

// AppendLog records a mutation. Callers treat it as best-effort: a failed append
// must never fail the mutation it describes.
func (s *TopicStore) AppendLog(ctx context.Context, action string, topicID *uint, actorUserID, actorTag string, detail map[string]any) error {
	payload := []byte("{}")
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		payload = b
	}
	entry := models.AuditLog{
		Action:      action,
		TopicID:     topicID,
		ActorUserID: actorUserID,
		ActorTag:    actorTag,
		Detail:      datatypes.JSON(payload),
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}
