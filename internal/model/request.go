package model

import json "github.com/goccy/go-json"

// TimelineRequest carries a profile and, optionally, policy updates. Agent1Updates
// may hold either a JSON array of updates or a JSON string containing that array as
// text; when absent the configured policy provider is used.
type TimelineRequest struct {
	UserProfile   StudentProfile  `json:"user_profile"`
	Agent1Updates json.RawMessage `json:"agent1_updates,omitempty"`
}

type ChatRequest struct {
	History ConversationLog `json:"history"`
	Message string          `json:"message"`
}
