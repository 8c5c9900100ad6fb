// Package webhook posts audit embeds to a chat webhook. Everything here is
// best-effort: failures are logged and swallowed, never propagated.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ColorInfo    = 0xffa500
	ColorCreate  = 0x57f287
	ColorRemove  = 0xed4245
	ColorSetRole = 0x5865f2
)

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type payload struct {
	Embeds []Embed `json:"embeds"`
}

type Notifier struct {
	url  string
	http *http.Client
	log  *zap.Logger
}

// New returns a Notifier; url may be empty, in which case Send is a no-op.
func New(url string, timeout time.Duration, log *zap.Logger) *Notifier {
	return &Notifier{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Send posts one embed. Each event carries a footer id so deliveries can be
// traced back through the logs.
func (n *Notifier) Send(ctx context.Context, embed Embed) {
	if n == nil || n.url == "" {
		return
	}
	embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	embed.Footer = &EmbedFooter{Text: "event " + uuid.NewString()}

	body, err := json.Marshal(payload{Embeds: []Embed{embed}})
	if err != nil {
		n.log.Warn("webhook marshal failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.Warn("webhook request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		n.log.Warn("webhook send failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		n.log.Warn("webhook rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail))
	}
}
