package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nattawatz/linkboard/internal/models"
)

func TestConfigGet_NullUntilSet(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/internal/config.get", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"allowed_role_id":null`)

	w = doJSON(r, http.MethodGet, "/internal/config.getRole", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"roleId":""`)
}

func TestConfigSetRole_RoundTrip(t *testing.T) {
	r, db := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/internal/config.setRole",
		`{"roleId":"role-1","actor":{"userId":"42","tag":"a#1"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/internal/config.get", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AllowedRoleID *string `json:"allowed_role_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.AllowedRoleID)
	require.Equal(t, "role-1", *resp.AllowedRoleID)

	// The singleton row is updated in place.
	var count int64
	require.NoError(t, db.Model(&models.BoardConfig{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Mutations land in the audit log.
	var entry models.AuditLog
	require.NoError(t, db.Where("action = ?", models.ActionConfigSetRole).First(&entry).Error)
	require.Equal(t, "42", entry.ActorUserID)
}

func TestConfigSetRole_MissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{
		`{"actor":{"userId":"42","tag":"a#1"}}`,
		`{"roleId":"role-1"}`,
		`{"roleId":"role-1","actor":{"userId":"42"}}`,
	} {
		w := doJSON(r, http.MethodPost, "/internal/config.setRole", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "missing_fields")
	}
}
