package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	userLabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8ecae6"))
	atlasLabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	userBubbleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))

	boldStyle     = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor)
	citationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroSecondaryTextColor)
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	chipStyle     = lipgloss.NewStyle().Foreground(heroTextColor).Background(lipgloss.Color("#3a2a10")).Padding(0, 1)
	presetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	badgeStyle         = lipgloss.NewStyle().Bold(true).Foreground(heroEmberColor).Background(heroAccentColor).Padding(0, 1)
	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
)

var (
	glyphA = []string{" █████╗ ", "██╔══██╗", "███████║", "██╔══██║", "██║  ██║", "╚═╝  ╚═╝"}
	glyphT = []string{"████████╗", "╚══██╔══╝", "   ██║   ", "   ██║   ", "   ██║   ", "   ╚═╝   "}
	glyphL = []string{"██╗     ", "██║     ", "██║     ", "██║     ", "███████╗", "╚══════╝"}
	glyphS = []string{"███████╗", "██╔════╝", "███████╗", "╚════██║", "███████║", "╚══════╝"}

	logoArtLines = joinGlyphs(glyphA, glyphT, glyphL, glyphA, glyphS)
)

// joinGlyphs lays equal-height glyphs side by side, two columns apart.
func joinGlyphs(glyphs ...[]string) []string {
	if len(glyphs) == 0 {
		return nil
	}
	rows := make([]string, len(glyphs[0]))
	for i := range rows {
		parts := make([]string, 0, len(glyphs))
		for _, g := range glyphs {
			if i < len(g) {
				parts = append(parts, g[i])
			}
		}
		rows[i] = strings.Join(parts, "  ")
	}
	return rows
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	// Shadow first, offset one cell down-right, then the face on top.
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
