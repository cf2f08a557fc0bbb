package tui

import (
	"strings"
)

type pageLayout struct {
	viewportWidth  int
	viewportHeight int
	composerWidth  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
		composerWidth:  76,
	}
}

// Update recomputes the transcript viewport for a window size. The chrome
// around it is the hero, the transcript header, the notice line, the
// composer with its helper line and the status bar, plus the blank lines
// joinNonEmpty puts between them.
func (l *pageLayout) Update(width, height int) {
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.composerWidth = innerWidth - 4
	// Six logo rows, the shadow row and the tagline.
	const heroHeight = 8
	const chrome = heroHeight + 1 + 1 + 2 + 1 + 4
	usable := height - chrome
	if usable < 4 {
		usable = 4
	}
	l.viewportHeight = usable
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
