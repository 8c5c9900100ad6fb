package bot

// CommandOption describes one option of a slash-style command.
type CommandOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
}

// Command is a platform-neutral command definition. The platform glue reads
// these to register its slash commands.
type Command struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Options       []CommandOption `json:"options,omitempty"`
	RequireManage bool            `json:"require_manage,omitempty"`
}

func Definitions() []Command {
	return []Command{
		{
			Name:        "topic",
			Description: "Share a new topic on the board",
			Options: []CommandOption{
				{Name: "title", Description: "Topic title", Type: "string", Required: true},
				{Name: "link", Description: "Link to share", Type: "string", Required: true},
				{Name: "image", Description: "Image link, or - for none", Type: "string", Required: true},
				{Name: "desc", Description: "Short description", Type: "string", Required: false},
			},
		},
		{
			Name:        "remove",
			Description: "Remove a topic by its ID",
			Options: []CommandOption{
				{Name: "id", Description: "Topic ID", Type: "integer", Required: true},
			},
		},
		{
			Name:          "setrole",
			Description:   "Set the role allowed to use the bot",
			RequireManage: true,
			Options: []CommandOption{
				{Name: "role", Description: "Role to allow", Type: "role", Required: true},
			},
		},
	}
}
