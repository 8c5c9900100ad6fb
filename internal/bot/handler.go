package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nattawatz/linkboard/internal/bot/api"
	"github.com/nattawatz/linkboard/internal/bot/webhook"
)

// Interaction is one dispatched command, already decoded by the platform
// adapter. MemberRoles are the actor's role ids in the scope the command came
// from.
type Interaction struct {
	Command        string
	GuildID        string
	Options        map[string]string
	Actor          api.Actor
	MemberRoles    []string
	CanManageGuild bool
}

// Handler runs the command lifecycle: authorize, normalize, call the mediation
// API, notify. It is transport-agnostic; adapters feed it Interactions and
// deliver the returned message.
type Handler struct {
	API     *api.Client
	Roles   *RoleResolver
	Webhook *webhook.Notifier
	Log     *zap.Logger
}

// Handle processes one command and returns the single terminal reply for the
// actor. It never panics out: any failure becomes a user-readable message.
func (h *Handler) Handle(ctx context.Context, in Interaction) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			h.Log.Error("command handler panic",
				zap.String("command", in.Command),
				zap.Any("panic", r))
			msg = "Something went wrong while handling your command."
		}
	}()

	// /setrole is gated by the platform's manage permission, not the topic role.
	if in.Command == "setrole" {
		return h.handleSetRole(ctx, in)
	}

	switch h.Roles.Authorize(ctx, in.GuildID, in.MemberRoles) {
	case DeniedUnconfigured:
		return "No allowed role is configured yet. Ask a server manager to run /setrole first."
	case DeniedMissingRole:
		return "You don't have the role required to use this command."
	}

	switch in.Command {
	case "topic":
		return h.handleTopic(ctx, in)
	case "remove":
		return h.handleRemove(ctx, in)
	default:
		return "Unknown command."
	}
}

func (h *Handler) handleSetRole(ctx context.Context, in Interaction) string {
	if !in.CanManageGuild {
		return "You need the Manage Server permission to change the allowed role."
	}
	roleID := in.Options["role"]
	if roleID == "" {
		return "Pick a role to allow."
	}

	// Apply the override first so the new role takes effect even if
	// persistence fails.
	h.Roles.Overrides.Set(in.GuildID, roleID)

	if err := h.API.SetAllowedRole(ctx, roleID, in.Actor); err != nil {
		h.Log.Error("set role persistence failed",
			zap.String("roleId", roleID),
			zap.Error(err))
		return fmt.Sprintf("Allowed role changed to <@&%s> for this session only — saving it failed, so the change is lost on restart.", roleID)
	}

	h.Webhook.Send(ctx, webhook.Embed{
		Title: "CONFIG SET ROLE",
		Color: webhook.ColorSetRole,
		Fields: []webhook.EmbedField{
			{Name: "Set by", Value: fmt.Sprintf("<@%s> (%s)", in.Actor.UserID, in.Actor.Tag)},
			{Name: "Role", Value: fmt.Sprintf("<@&%s>", roleID)},
		},
	})
	return fmt.Sprintf("Allowed role updated and saved: <@&%s>", roleID)
}

func (h *Handler) handleTopic(ctx context.Context, in Interaction) string {
	title := in.Options["title"]
	link := in.Options["link"]
	if title == "" || link == "" {
		return "Both a title and a link are required."
	}

	url := NormalizeURL(link)
	if !IsValidHTTPURL(url) {
		return "Your link must start with http:// or https://."
	}
	image := NormalizeImage(in.Options["image"])
	desc := in.Options["desc"]

	topicID, err := h.API.CreateTopic(ctx, title, url, desc, image, in.Actor)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Code == "invalid_url" {
			return "Your link must start with http:// or https://."
		}
		h.Log.Error("create topic failed",
			zap.String("title", title),
			zap.String("url", url),
			zap.Error(err))
		return "Could not create the topic. Try again later."
	}

	h.Webhook.Send(ctx, webhook.Embed{
		Title: "TOPIC CREATED",
		Color: webhook.ColorCreate,
		Fields: []webhook.EmbedField{
			{Name: "ID", Value: strconv.FormatUint(uint64(topicID), 10), Inline: true},
			{Name: "Title", Value: title, Inline: true},
			{Name: "URL", Value: url},
			{Name: "Image", Value: image},
			{Name: "By", Value: fmt.Sprintf("<@%s> (%s)", in.Actor.UserID, in.Actor.Tag)},
		},
	})
	return fmt.Sprintf("Topic created.\nID: **%d**", topicID)
}

func (h *Handler) handleRemove(ctx context.Context, in Interaction) string {
	id, err := strconv.ParseUint(in.Options["id"], 10, 32)
	if err != nil || id == 0 {
		return "Give me a numeric topic ID to remove."
	}

	removed, err := h.API.RemoveTopic(ctx, uint(id), in.Actor)
	if err != nil {
		h.Log.Error("remove topic failed",
			zap.Uint64("id", id),
			zap.Error(err))
		return "Could not remove the topic. Try again later."
	}

	result := "not found / already removed"
	if removed {
		result = "removed"
	}
	h.Webhook.Send(ctx, webhook.Embed{
		Title: "TOPIC REMOVED",
		Color: webhook.ColorRemove,
		Fields: []webhook.EmbedField{
			{Name: "ID", Value: strconv.FormatUint(id, 10), Inline: true},
			{Name: "By", Value: fmt.Sprintf("<@%s> (%s)", in.Actor.UserID, in.Actor.Tag)},
			{Name: "Result", Value: result},
		},
	})

	if removed {
		return fmt.Sprintf("Topic **%d** removed.", id)
	}
	return fmt.Sprintf("Topic **%d** was not found (or was already removed).", id)
}
