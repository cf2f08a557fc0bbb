// Package conversation owns the demo chat transcript and the lifecycle of
// the single request that may be in flight against the chat endpoint.
package conversation

import (
	"time"

	"github.com/csheth/buildvision/internal/atlas"
)

// DefaultErrorText is the only failure message end users ever see.
const DefaultErrorText = "Unable to reach Atlas. Please try again."

// Role tells who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Messages are never mutated once appended.
type Message struct {
	Role          Role
	Content       string
	Sources       []atlas.Source
	Manufacturers []string
	At            time.Time
}

// State is a copy of the controller state at one point in time.
type State struct {
	Messages []Message
	Pending  bool
	Err      string
	Input    string
}

// Turn identifies the user question a pending request belongs to.
type Turn struct {
	ID       uint64
	Question string
}
