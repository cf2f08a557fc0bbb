package site

import (
	"github.com/csheth/buildvision/internal/answer"
	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/conversation"
)

type stateView struct {
	Messages []messageView `json:"messages"`
	Pending  bool          `json:"pending"`
	Error    string        `json:"error,omitempty"`
	Input    string        `json:"input"`
}

type messageView struct {
	Role          string         `json:"role"`
	Content       string         `json:"content"`
	Segments      []segmentView  `json:"segments,omitempty"`
	Sources       []atlas.Source `json:"sources,omitempty"`
	Manufacturers []string       `json:"manufacturers,omitempty"`
}

type segmentView struct {
	Kind    string `json:"kind"`
	Text    string `json:"text"`
	Index   int    `json:"index,omitempty"`
	URL     string `json:"url,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
}

func newStateView(state conversation.State) stateView {
	view := stateView{
		Messages: make([]messageView, 0, len(state.Messages)),
		Pending:  state.Pending,
		Error:    state.Err,
		Input:    state.Input,
	}
	for _, msg := range state.Messages {
		mv := messageView{
			Role:          string(msg.Role),
			Content:       msg.Content,
			Sources:       msg.Sources,
			Manufacturers: msg.Manufacturers,
		}
		if msg.Role == conversation.RoleAssistant {
			for _, seg := range answer.Format(msg.Content, msg.Sources) {
				mv.Segments = append(mv.Segments, segmentView{
					Kind:    seg.Kind.String(),
					Text:    seg.Text,
					Index:   seg.Index,
					URL:     seg.URL,
					Tooltip: seg.Tooltip,
				})
			}
		}
		view.Messages = append(view.Messages, mv)
	}
	return view
}
