// Package api is the bot's client for the mediation API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Actor identifies the acting chat user on mutation requests.
type Actor struct {
	UserID string `json:"userId"`
	Tag    string `json:"tag"`
}

// Error is a non-2xx response from the mediation API.
type Error struct {
	Status int
	Code   string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

type Client struct {
	baseURL    string
	authSecret string
	http       *http.Client
}

// New builds a client with a bounded per-request timeout. authSecret may be
// empty when the API runs without the internal bearer gate.
func New(baseURL string, timeout time.Duration, authSecret string) *Client {
	return &Client{
		baseURL:    baseURL,
		authSecret: authSecret,
		http:       &http.Client{Timeout: timeout},
	}
}

type createTopicRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Actor       Actor  `json:"actor"`
}

type createTopicResponse struct {
	OK      bool `json:"ok"`
	TopicID uint `json:"topicId"`
}

func (c *Client) CreateTopic(ctx context.Context, title, url, description, imageURL string, actor Actor) (uint, error) {
	var resp createTopicResponse
	req := createTopicRequest{Title: title, URL: url, Description: description, ImageURL: imageURL, Actor: actor}
	if err := c.post(ctx, "/internal/topic.create", req, &resp); err != nil {
		return 0, err
	}
	return resp.TopicID, nil
}

type removeTopicRequest struct {
	ID    uint  `json:"id"`
	Actor Actor `json:"actor"`
}

type removeTopicResponse struct {
	OK      bool `json:"ok"`
	Removed bool `json:"removed"`
}

func (c *Client) RemoveTopic(ctx context.Context, id uint, actor Actor) (bool, error) {
	var resp removeTopicResponse
	if err := c.post(ctx, "/internal/topic.remove", removeTopicRequest{ID: id, Actor: actor}, &resp); err != nil {
		return false, err
	}
	return resp.Removed, nil
}

type setRoleRequest struct {
	RoleID string `json:"roleId"`
	Actor  Actor  `json:"actor"`
}

func (c *Client) SetAllowedRole(ctx context.Context, roleID string, actor Actor) error {
	var resp struct {
		OK bool `json:"ok"`
	}
	return c.post(ctx, "/internal/config.setRole", setRoleRequest{RoleID: roleID, Actor: actor}, &resp)
}

// GetAllowedRole fetches the persisted role id; "" means none is configured.
func (c *Client) GetAllowedRole(ctx context.Context) (string, error) {
	var resp struct {
		AllowedRoleID *string `json:"allowed_role_id"`
	}
	if err := c.get(ctx, "/internal/config.get", &resp); err != nil {
		return "", err
	}
	if resp.AllowedRoleID == nil {
		return "", nil
	}
	return *resp.AllowedRoleID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.authSecret != "" {
		token, err := c.mintToken()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Code = body.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mintToken signs a short-lived service token for the internal bearer gate.
func (c *Client) mintToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"svc": "bot",
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.authSecret))
}
