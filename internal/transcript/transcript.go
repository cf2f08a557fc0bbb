// Package transcript exports finished demo conversations to a JSON file.
package transcript

import (
	"time"

	"github.com/csheth/buildvision/internal/answer"
	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/conversation"
)

const entryTypeConversation = "conversation"

// Snapshot captures a conversation at the moment it was exported.
type Snapshot struct {
	EntryType  string    `json:"entryType"`
	CapturedAt time.Time `json:"capturedAt"`
	Endpoint   string    `json:"endpoint,omitempty"`
	Messages   []Entry   `json:"messages"`
}

// Entry records one transcript message. Text is the answer as a reader
// sees it, with emphasis markers removed; it is only set for replies.
type Entry struct {
	Role          string         `json:"role"`
	Content       string         `json:"content"`
	Text          string         `json:"text,omitempty"`
	Sources       []atlas.Source `json:"sources,omitempty"`
	Manufacturers []string       `json:"manufacturers,omitempty"`
	At            time.Time      `json:"at"`
}

// FromState builds a snapshot from the controller state.
func FromState(state conversation.State, endpoint string, capturedAt time.Time) Snapshot {
	entries := make([]Entry, 0, len(state.Messages))
	for _, msg := range state.Messages {
		entry := Entry{
			Role:          string(msg.Role),
			Content:       msg.Content,
			Sources:       append([]atlas.Source(nil), msg.Sources...),
			Manufacturers: append([]string(nil), msg.Manufacturers...),
			At:            msg.At,
		}
		if msg.Role == conversation.RoleAssistant {
			entry.Text = answer.PlainText(answer.Format(msg.Content, msg.Sources))
		}
		entries = append(entries, entry)
	}
	return Snapshot{
		EntryType:  entryTypeConversation,
		CapturedAt: capturedAt,
		Endpoint:   endpoint,
		Messages:   entries,
	}
}
