package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/pitch"
	"github.com/csheth/buildvision/internal/transcript"
)

type fakeAtlas struct {
	resp  atlas.Response
	err   error
	calls atomic.Int32
}

func (f *fakeAtlas) Chat(context.Context, string) (atlas.Response, error) {
	f.calls.Add(1)
	return f.resp, f.err
}

func (f *fakeAtlas) Name() string { return "fake" }

func newTestModel(t *testing.T, client atlas.Client) *model {
	t.Helper()
	teaModel, ok := New(Config{
		Controller: conversation.New(client),
		Name:       "Atlas (fake)",
		Endpoint:   "https://atlas.example/api/embed/chat",
	}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	return teaModel
}

func page(n int) *int { return &n }

func sampleResponse() atlas.Response {
	return atlas.Response{
		OK:     true,
		Answer: "The **Trane CenTraVac** fits [1].",
		Sources: []atlas.Source{{
			Index:        1,
			Title:        "CenTraVac Catalog",
			Manufacturer: "Trane",
			URL:          "https://example.com/trane.pdf",
			PageNumber:   page(12),
		}},
		ManufacturersReferenced: []string{"Trane"},
	}
}

// finishChat runs the pending chat job the way the job bus would and feeds
// the envelope back into the model.
func finishChat(t *testing.T, m *model, turn conversation.Turn) {
	t.Helper()
	payload, err := chatJob(m.ctrl, turn)(context.Background())
	status := jobStatusSucceeded
	if err != nil {
		status = jobStatusFailed
	}
	m.Update(jobResultEnvelope{
		Snapshot: jobSnapshot{ID: "chat-1", Kind: jobKindChat, Status: status},
		Payload:  payload,
	})
}

func TestEnterSendsTrimmedQuestion(t *testing.T) {
	client := &fakeAtlas{resp: sampleResponse()}
	m := newTestModel(t, client)
	m.composer.SetValue("  200-ton chiller  ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start a chat job")
	}
	if !m.state.Pending {
		t.Fatal("model should be pending after send")
	}
	if got := len(m.state.Messages); got != 1 || m.state.Messages[0].Content != "200-ton chiller" {
		t.Fatalf("unexpected messages: %+v", m.state.Messages)
	}
	if m.composer.Value() != "" {
		t.Fatalf("composer not cleared: %q", m.composer.Value())
	}
	if m.composer.Focused() {
		t.Fatal("composer should be disabled while pending")
	}

	finishChat(t, m, conversation.Turn{ID: 1, Question: "200-ton chiller"})
	if m.state.Pending {
		t.Fatal("model should be idle after settle")
	}
	if got := len(m.state.Messages); got != 2 {
		t.Fatalf("expected 2 messages, got %d", got)
	}
	if !m.composer.Focused() {
		t.Fatal("composer should be enabled after settle")
	}
	view := m.View()
	for _, want := range []string{"Trane CenTraVac", "Sources", "Trane — CenTraVac Catalog (p.12)", "https://example.com/trane.pdf"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if strings.Contains(view, "**") {
		t.Fatal("bold markers should not be shown")
	}
}

func TestFailedChatRollsBackQuestion(t *testing.T) {
	client := &fakeAtlas{err: errors.New("boom")}
	m := newTestModel(t, client)
	m.composer.SetValue("smoke control")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	finishChat(t, m, conversation.Turn{ID: 1, Question: "smoke control"})
	if len(m.state.Messages) != 0 {
		t.Fatalf("question should be rolled back, got %+v", m.state.Messages)
	}
	if m.state.Err != conversation.DefaultErrorText {
		t.Fatalf("unexpected error text %q", m.state.Err)
	}
	if !strings.Contains(m.View(), conversation.DefaultErrorText) {
		t.Fatal("view should show the error line")
	}
	if strings.Contains(m.View(), "boom") {
		t.Fatal("underlying cause must not be shown")
	}
}

func TestComposerDisabledWhilePending(t *testing.T) {
	client := &fakeAtlas{resp: sampleResponse()}
	m := newTestModel(t, client)
	m.composer.SetValue("first")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.composer.Value() != "" {
		t.Fatalf("typing should be ignored while pending, got %q", m.composer.Value())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("enter while pending should not start another job")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true}); cmd != nil {
		t.Fatal("preset while pending should not start another job")
	}
	if got := len(m.state.Messages); got != 1 {
		t.Fatalf("expected a single question, got %d", got)
	}
	if client.calls.Load() != 0 {
		t.Fatalf("no request should have run yet, got %d", client.calls.Load())
	}
}

func TestBlankEnterIsIgnored(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	m.composer.SetValue("   ")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("blank input should not start a job")
	}
	if m.state.Pending || len(m.state.Messages) != 0 {
		t.Fatalf("state changed on blank send: %+v", m.state)
	}
}

func TestEscClearsComposerThenQuits(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	m.composer.SetValue("draft")

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Fatalf("first esc should only clear, got %T", cmd)
	}
	if m.composer.Value() != "" {
		t.Fatalf("composer not cleared: %q", m.composer.Value())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("second esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestPresetShortcutSendsPreset(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{resp: sampleResponse()})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true}); cmd == nil {
		t.Fatal("alt+2 should start a chat job")
	}
	if got := m.state.Messages[0].Content; got != pitch.Presets()[1] {
		t.Fatalf("unexpected question %q", got)
	}
}

func TestCyclePresetsFillsComposer(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	presets := pitch.Presets()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := m.composer.Value(); got != presets[1] {
		t.Fatalf("got %q want %q", got, presets[1])
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := m.composer.Value(); got != presets[0] {
		t.Fatalf("got %q want %q", got, presets[0])
	}
	if got := m.ctrl.Snapshot().Input; got != presets[0] {
		t.Fatalf("controller input not synced: %q", got)
	}
}

func TestTypingMirrorsIntoController(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("vrf")})
	if got := m.ctrl.Snapshot().Input; got != "vrf" {
		t.Fatalf("controller input %q", got)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.helpVisible {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.View(), "Export transcript") {
		t.Fatal("help legend missing from view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.helpVisible {
		t.Fatal("esc should close help")
	}

	m.composer.SetValue("why")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if m.helpVisible {
		t.Fatal("? while typing belongs to the question")
	}
	if got := m.composer.Value(); got != "why?" {
		t.Fatalf("composer %q", got)
	}
}

func TestExportRequiresPath(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Fatal("export without a path should not start a job")
	}
	if !strings.Contains(m.infoMessage, "-transcript") {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}
}

func TestExportWritesTranscript(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{resp: sampleResponse()})
	m.config.TranscriptPath = filepath.Join(t.TempDir(), "out", "atlas.json")
	m.composer.SetValue("chiller")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	finishChat(t, m, conversation.Turn{ID: 1, Question: "chiller"})

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd == nil {
		t.Fatal("export should start a job")
	}
	payload, err := m.exportRunner()(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	m.Update(jobResultEnvelope{Snapshot: jobSnapshot{Kind: jobKindExport, Status: jobStatusSucceeded}, Payload: payload})
	if !strings.Contains(m.infoMessage, "Saved 2 messages") {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}

	snapshots, err := transcript.Load(m.config.TranscriptPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snapshots) != 1 || len(snapshots[0].Messages) != 2 {
		t.Fatalf("unexpected snapshots: %+v", snapshots)
	}
	if got := snapshots[0].Endpoint; got != "https://atlas.example/api/embed/chat" {
		t.Fatalf("export recorded endpoint %q", got)
	}
	if meter := m.sessionMeterView(); !strings.Contains(meter, "Atlas (fake)") || strings.Contains(meter, "https://atlas.example") {
		t.Fatalf("status bar should name the endpoint: %q", meter)
	}
}

func TestStateMsgUpdatesModel(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	state := conversation.State{Messages: []conversation.Message{{Role: conversation.RoleUser, Content: "hi"}}, Pending: true}
	_, cmd := m.Update(stateMsg{state: state})
	if cmd == nil {
		t.Fatal("state updates should keep listening")
	}
	if !m.state.Pending || m.composer.Focused() {
		t.Fatal("pending state should disable the composer")
	}
}

func TestStateFeedKeepsLatest(t *testing.T) {
	ctrl := conversation.New(&fakeAtlas{})
	feed := newStateFeed(ctrl)
	defer feed.cancel()

	ctrl.SetInput("a")
	ctrl.SetInput("b")
	msg, ok := feed.wait()().(stateMsg)
	if !ok {
		t.Fatal("expected stateMsg")
	}
	if msg.state.Input != "b" {
		t.Fatalf("expected latest state, got %q", msg.state.Input)
	}
}

func TestJobBadges(t *testing.T) {
	m := newTestModel(t, &fakeAtlas{})
	m.Update(jobSignalMsg{Snapshot: jobSnapshot{Kind: jobKindChat, Status: jobStatusRunning}})
	if !strings.Contains(m.sessionMeterView(), "chat …") {
		t.Fatalf("missing running badge: %q", m.sessionMeterView())
	}
	m.Update(jobResultEnvelope{Snapshot: jobSnapshot{Kind: jobKindExport, Status: jobStatusFailed}})
	if !strings.Contains(m.sessionMeterView(), "export ✗") {
		t.Fatalf("missing failed badge: %q", m.sessionMeterView())
	}
}
