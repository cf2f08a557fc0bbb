package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/pitch"
)

// Config wires the terminal demo to a conversation.
type Config struct {
	// Controller is required.
	Controller *conversation.Controller
	// Name labels the endpoint in the status bar.
	Name string
	// Endpoint is recorded in exported transcripts.
	Endpoint string
	// TranscriptPath enables ctrl+s export when set.
	TranscriptPath string
	Logger         *zap.Logger
}

type model struct {
	config   Config
	ctrl     *conversation.Controller
	log      *zap.Logger
	jobs     *jobBus
	feed     *stateFeed
	now      func() time.Time
	composer textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	layout   pageLayout

	state           conversation.State
	transcriptLines []string
	presets         []string
	presetCursor    int
	infoMessage     string
	helpVisible     bool
	viewportDirty   bool
	stickToBottom   bool
	jobStatus       map[jobKind]jobSnapshot
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	composer := textinput.New()
	composer.Placeholder = pitch.Placeholder
	composer.CharLimit = composerCharLimit
	composer.Width = 70
	composer.Prompt = "› "
	composer.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	m := &model{
		config:        config,
		ctrl:          config.Controller,
		log:           log,
		jobs:          newJobBus(log.Named("jobs")),
		feed:          newStateFeed(config.Controller),
		now:           time.Now,
		composer:      composer,
		spinner:       spin,
		viewport:      vp,
		layout:        newPageLayout(),
		presets:       pitch.Presets(),
		presetCursor:  -1,
		viewportDirty: true,
		jobStatus:     map[jobKind]jobSnapshot{},
	}
	m.state = m.ctrl.Snapshot()
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.feed.wait())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		m.composer.Width = m.layout.composerWidth
		m.markViewportDirty()
		return m, nil
	case spinner.TickMsg:
		if m.state.Pending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.markViewportDirty()
			return m, cmd
		}
		return m, nil
	case stateMsg:
		m.applyState(msg.state)
		return m, m.feed.wait()
	case jobSignalMsg:
		m.jobStatus[msg.Snapshot.Kind] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.jobStatus[msg.Snapshot.Kind] = msg.Snapshot
		return m.handleJobResult(msg.Payload)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleJobResult(payload tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := payload.(type) {
	case chatResultMsg:
		m.applyState(m.ctrl.Settle(msg.turn, msg.resp, msg.err))
		m.stickToBottom = true
		return m, nil
	case exportResultMsg:
		if msg.err != nil {
			m.infoMessage = "Export failed: " + msg.err.Error()
			return m, nil
		}
		m.infoMessage = fmt.Sprintf("Saved %d messages to %s.", msg.messages, msg.path)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		if m.helpVisible {
			m.helpVisible = false
			return m, nil
		}
		if m.composer.Value() != "" {
			m.setComposer("")
			return m, nil
		}
		return m.quit()
	case tea.KeyEnter:
		return m, m.send(m.composer.Value())
	case tea.KeyCtrlS:
		return m, m.exportTranscript()
	case tea.KeyCtrlP:
		m.cyclePreset(1)
		return m, nil
	case tea.KeyCtrlN:
		m.cyclePreset(-1)
		return m, nil
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.stickToBottom = m.viewport.AtBottom()
		return m, cmd
	}

	key := msg.String()
	if idx, ok := presetShortcut(key); ok {
		if idx < len(m.presets) {
			return m, m.send(m.presets[idx])
		}
		return m, nil
	}
	if key == "?" && m.composer.Value() == "" {
		m.helpVisible = !m.helpVisible
		return m, nil
	}
	if m.state.Pending {
		// The composer is disabled until the answer lands.
		return m, nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	m.ctrl.SetInput(m.composer.Value())
	return m, cmd
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	if m.feed != nil {
		m.feed.cancel()
	}
	return m, tea.Quit
}

// presetShortcut maps alt+1..alt+9 to a preset index.
func presetShortcut(key string) (int, bool) {
	if len(key) != 5 || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	d := key[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}

// send starts a turn. Blank text and sends while a request is pending are
// rejected by the controller and leave the screen unchanged.
func (m *model) send(text string) tea.Cmd {
	turn, ok := m.ctrl.Begin(text)
	if !ok {
		return nil
	}
	m.composer.SetValue("")
	m.presetCursor = -1
	m.infoMessage = ""
	m.helpVisible = false
	m.stickToBottom = true
	m.applyState(m.ctrl.Snapshot())
	return tea.Batch(m.jobs.Start(jobKindChat, chatJob(m.ctrl, turn)), m.spinner.Tick)
}

func (m *model) exportTranscript() tea.Cmd {
	switch {
	case m.config.TranscriptPath == "":
		m.infoMessage = "Start with -transcript <file> to enable export."
		return nil
	case len(m.state.Messages) == 0:
		m.infoMessage = "Nothing to export yet."
		return nil
	}
	m.infoMessage = "Exporting transcript…"
	return m.jobs.Start(jobKindExport, m.exportRunner())
}

func (m *model) exportRunner() jobRunner {
	return exportJob(m.config.TranscriptPath, m.config.Endpoint, m.state, m.now())
}

func (m *model) cyclePreset(step int) {
	if m.state.Pending || len(m.presets) == 0 {
		return
	}
	n := len(m.presets)
	m.presetCursor = ((m.presetCursor+step)%n + n) % n
	m.setComposer(m.presets[m.presetCursor])
}

func (m *model) setComposer(text string) {
	m.composer.SetValue(text)
	m.ctrl.SetInput(text)
}

func (m *model) applyState(state conversation.State) {
	if len(state.Messages) != len(m.state.Messages) {
		m.stickToBottom = true
	}
	m.state = state
	if state.Pending {
		m.composer.Blur()
		m.composer.Placeholder = composerPendingPlaceholder
	} else {
		m.composer.Focus()
		m.composer.Placeholder = pitch.Placeholder
	}
	m.markViewportDirty()
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	content := m.buildTranscript()
	m.transcriptLines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	m.viewport.SetContent(content)
	if m.stickToBottom {
		m.viewport.GotoBottom()
		m.stickToBottom = false
	}
	m.viewportDirty = false
}

// transcriptView renders the visible slice of the pre-wrapped transcript.
// The viewport only tracks the scroll offset: its own renderer re-wraps
// lines and miscounts the width of OSC 8 hyperlinks.
func (m *model) transcriptView() string {
	lines := m.transcriptLines
	start := min(max(m.viewport.YOffset, 0), len(lines))
	end := min(start+m.viewport.Height, len(lines))
	visible := append([]string(nil), lines[start:end]...)
	for len(visible) < m.viewport.Height {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}
