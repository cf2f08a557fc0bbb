package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/buildvision/internal/answer"
	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/pitch"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	top := m.heroView()
	if m.helpVisible {
		top = m.keyLegendView()
	}
	return joinNonEmpty([]string{
		top,
		sectionHeaderStyle.Render(pitch.AssistantTag) + "\n" + m.transcriptView(),
		m.noticeLine(),
		m.composerPanel(),
		m.sessionMeterView(),
	})
}

func (m *model) heroView() string {
	tagline := lipgloss.JoinHorizontal(
		lipgloss.Top,
		badgeStyle.Render(pitch.Badge),
		" ",
		taglineStyle.Render(pitch.Product+" · "+pitch.Tagline),
	)
	return lipgloss.JoinVertical(lipgloss.Left, renderLogo(), tagline)
}

func (m *model) buildTranscript() string {
	cb := &strings.Builder{}
	wrap := m.wrapWidth(len(transcriptIndent))
	if len(m.state.Messages) == 0 && !m.state.Pending {
		m.writeEmptyState(cb, wrap)
		return cb.String()
	}
	for idx, msg := range m.state.Messages {
		if idx > 0 {
			cb.WriteRune('\n')
		}
		m.writeMessage(cb, msg, wrap)
	}
	if m.state.Pending {
		cb.WriteRune('\n')
		cb.WriteString(helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), pitch.LoadingLine)))
		cb.WriteRune('\n')
	}
	return cb.String()
}

func (m *model) writeEmptyState(cb *strings.Builder, wrap int) {
	cb.WriteString(helperStyle.Render(wordwrap.String(pitch.EmptyPrompt, wrap)))
	cb.WriteRune('\n')
	cb.WriteRune('\n')
	for idx, preset := range m.presets {
		cb.WriteString(keyStyle.Render(fmt.Sprintf("alt+%d", idx+1)))
		cb.WriteRune(' ')
		cb.WriteString(keyDescStyle.Render(preset))
		cb.WriteRune('\n')
	}
	cb.WriteRune('\n')
	cb.WriteString(helperStyle.Render(wordwrap.String(pitch.StatsNote, wrap)))
	cb.WriteRune('\n')
}

func (m *model) writeMessage(cb *strings.Builder, msg conversation.Message, wrap int) {
	if msg.Role == conversation.RoleUser {
		cb.WriteString(userLabelStyle.Render("You"))
		cb.WriteRune('\n')
		cb.WriteString(indentMultiline(userBubbleStyle.Render(wordwrap.String(msg.Content, wrap)), transcriptIndent))
		cb.WriteRune('\n')
		return
	}
	cb.WriteString(atlasLabelStyle.Render("Atlas"))
	cb.WriteRune('\n')
	body := renderAnswer(answer.Format(msg.Content, msg.Sources), wrap)
	cb.WriteString(indentMultiline(body, transcriptIndent))
	cb.WriteRune('\n')
	if sources := renderSources(msg.Sources, wrap); sources != "" {
		cb.WriteRune('\n')
		cb.WriteString(indentMultiline(sources, transcriptIndent))
		cb.WriteRune('\n')
	}
	if chips := renderChips(msg.Manufacturers, wrap); chips != "" {
		cb.WriteRune('\n')
		cb.WriteString(indentMultiline(chips, transcriptIndent))
		cb.WriteRune('\n')
	}
}

func (m *model) noticeLine() string {
	switch {
	case m.state.Err != "":
		return errorStyle.Render(m.state.Err)
	case m.infoMessage != "":
		return helperStyle.Render(m.infoMessage)
	case m.state.Pending:
		return helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), pitch.LoadingLine))
	case len(m.state.Messages) > 0 && len(m.presets) > 0:
		return presetStyle.Render("ctrl+p: " + m.presets[(m.presetCursor+1)%len(m.presets)])
	default:
		return ""
	}
}

func (m *model) composerPanel() string {
	return m.composer.View() + "\n" + helperStyle.Render(m.composerHelpText())
}

func (m *model) composerHelpText() string {
	if m.state.Pending {
		return "Waiting for Atlas • ↑/↓ scroll • Ctrl+C quit"
	}
	return "Enter: ask • Ctrl+P/N: presets • ?: help • Esc: clear/quit"
}

func (m *model) sessionMeterView() string {
	status := "Idle"
	if m.state.Pending {
		status = "Atlas working…"
	}
	stats := []string{
		fmt.Sprintf("Messages %d", len(m.state.Messages)),
		status,
	}
	if m.config.Name != "" {
		stats = append(stats, m.config.Name)
	}
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindChat, jobKindExport} {
		snap, ok := m.jobStatus[kind]
		if !ok {
			continue
		}
		switch snap.Status {
		case jobStatusRunning:
			badges = append(badges, fmt.Sprintf("%s …", kind))
		case jobStatusSucceeded:
			badges = append(badges, fmt.Sprintf("%s ✓ %s", kind, snap.Duration.Round(100*time.Millisecond)))
		case jobStatusFailed:
			badges = append(badges, fmt.Sprintf("%s ✗", kind))
		}
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Ask Atlas"},
		{"alt+1…4", "Ask a preset"},
		{"Ctrl+P/N", "Cycle presets"},
		{"↑/↓", "Scroll"},
		{"PgUp/PgDn", "Page"},
		{"Ctrl+S", "Export transcript"},
		{"?", "Toggle help"},
		{"Esc", "Clear or quit"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}
