// Package chat is the assistant widget's stub: canned replies over a conversation
// log that the caller owns and passes in on every turn.
package chat

import (
	"strings"

	"visa-engine/internal/model"
)

const (
	replyCPT   = "CPT becomes available after one academic year of full-time enrollment. Check the Month 12 section of your checklist for your date."
	replyOPT   = "You can file for OPT up to 90 days before graduation. The Pre-OPT Window section lists the documents you need."
	replySEVIS = "SEVIS check-in is done with your international student office in your first month."
	replyOther = "I can help with CPT, OPT and SEVIS questions. Generate your timeline to see a personalized checklist."
)

// Respond returns a new log with the user's message and the reply appended. The
// input log is never modified.
func Respond(history model.ConversationLog, message string) (model.ConversationLog, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return history, "", model.ErrEmptyMessage
	}

	reply := cannedReply(message)

	out := make(model.ConversationLog, len(history), len(history)+2)
	copy(out, history)
	out = append(out,
		model.ConversationEntry{Role: model.RoleUser, Content: message},
		model.ConversationEntry{Role: model.RoleAssistant, Content: reply},
	)
	return out, reply, nil
}

func cannedReply(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "cpt"):
		return replyCPT
	case strings.Contains(m, "opt"):
		return replyOPT
	case strings.Contains(m, "sevis"):
		return replySEVIS
	default:
		return replyOther
	}
}
