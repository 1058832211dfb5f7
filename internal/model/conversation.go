package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ConversationEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationLog is owned by the caller and only ever grows.
type ConversationLog []ConversationEntry
