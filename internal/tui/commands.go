package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/transcript"
)

type chatResultMsg struct {
	turn conversation.Turn
	resp atlas.Response
	err  error
}

type exportResultMsg struct {
	path     string
	messages int
	err      error
}

// stateMsg carries a state published by the controller.
type stateMsg struct {
	state conversation.State
}

func chatJob(ctrl *conversation.Controller, turn conversation.Turn) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		resp, err := ctrl.Ask(ctx, turn)
		return chatResultMsg{turn: turn, resp: resp, err: err}, err
	}
}

func exportJob(path, endpoint string, state conversation.State, now time.Time) jobRunner {
	snapshot := transcript.FromState(state, endpoint, now)
	return func(context.Context) (tea.Msg, error) {
		if err := transcript.Append(path, snapshot); err != nil {
			return exportResultMsg{path: path, err: err}, err
		}
		return exportResultMsg{path: path, messages: len(snapshot.Messages)}, nil
	}
}

// stateFeed forwards controller states into the program. Only the latest
// state is kept; each one is a full snapshot so skipping is harmless.
type stateFeed struct {
	ch     chan conversation.State
	cancel func()
}

func newStateFeed(ctrl *conversation.Controller) *stateFeed {
	feed := &stateFeed{ch: make(chan conversation.State, 1)}
	feed.cancel = ctrl.Subscribe(feed.push)
	return feed
}

func (f *stateFeed) push(state conversation.State) {
	for {
		select {
		case f.ch <- state:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

func (f *stateFeed) wait() tea.Cmd {
	return func() tea.Msg {
		state, ok := <-f.ch
		if !ok {
			return nil
		}
		return stateMsg{state: state}
	}
}
