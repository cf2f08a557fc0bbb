package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/csheth/buildvision/internal/answer"
	"github.com/csheth/buildvision/internal/atlas"
)

// piece is a run of characters sharing one segment's styling.
type piece struct {
	kind answer.Kind
	text string
	url  string
}

// word is a group of pieces with no whitespace between them, for example a
// bold model name followed directly by its citation.
type word []piece

func (w word) width() int {
	total := 0
	for _, p := range w {
		total += lipgloss.Width(p.text)
	}
	return total
}

// renderAnswer styles formatted segments and wraps them to width. Styling
// is applied after line breaking so escape sequences never split.
func renderAnswer(segments []answer.Segment, width int) string {
	paragraphs := splitParagraphs(segments)
	lines := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		lines = append(lines, wrapWords(para, width)...)
	}
	return strings.Join(lines, "\n")
}

func splitParagraphs(segments []answer.Segment) [][]word {
	var (
		paragraphs [][]word
		current    []word
		open       word
		buf        strings.Builder
		bufKind    answer.Kind
	)
	flushPiece := func() {
		if buf.Len() == 0 {
			return
		}
		open = append(open, piece{kind: bufKind, text: buf.String()})
		buf.Reset()
	}
	flushWord := func() {
		flushPiece()
		if len(open) > 0 {
			current = append(current, open)
			open = nil
		}
	}

	for _, seg := range segments {
		if seg.Kind == answer.KindCitation {
			flushPiece()
			open = append(open, piece{kind: answer.KindCitation, text: "[" + seg.Text + "]", url: seg.URL})
			continue
		}
		bufKind = seg.Kind
		for _, r := range seg.Text {
			switch r {
			case ' ', '\t':
				flushWord()
			case '\n':
				flushWord()
				paragraphs = append(paragraphs, current)
				current = nil
			default:
				buf.WriteRune(r)
			}
		}
		flushPiece()
	}
	flushWord()
	return append(paragraphs, current)
}

func wrapWords(words []word, width int) []string {
	if len(words) == 0 {
		return []string{""}
	}
	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)
	for _, w := range words {
		ww := w.width()
		if lineWidth > 0 && lineWidth+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteRune(' ')
			lineWidth++
		}
		for _, p := range w {
			line.WriteString(renderPiece(p))
		}
		lineWidth += ww
	}
	return append(lines, line.String())
}

func renderPiece(p piece) string {
	switch p.kind {
	case answer.KindBold:
		return boldStyle.Render(p.text)
	case answer.KindCitation:
		return termenv.Hyperlink(p.url, citationStyle.Render(p.text))
	default:
		return p.text
	}
}

// renderSources lists the answer's sources under a small header.
func renderSources(sources []atlas.Source, width int) string {
	if len(sources) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(helperStyle.Render("Sources"))
	for _, src := range sources {
		marker := fmt.Sprintf("[%d]", src.Index)
		if answer.Linkable(src.URL) {
			marker = termenv.Hyperlink(src.URL, citationStyle.Render(marker))
		} else {
			marker = citationStyle.Render(marker)
		}
		lines := strings.Split(wordwrap.String(src.Label(), width-6), "\n")
		for i, line := range lines {
			b.WriteRune('\n')
			if i == 0 {
				b.WriteString(marker + " ")
			} else {
				b.WriteString("    ")
			}
			b.WriteString(sourceStyle.Render(line))
		}
	}
	return b.String()
}

// renderChips lays manufacturer names out as chips, wrapping to width.
func renderChips(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}
	var (
		rows     []string
		row      []string
		rowWidth int
	)
	for _, name := range names {
		chip := chipStyle.Render(name)
		w := lipgloss.Width(chip)
		if rowWidth > 0 && rowWidth+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row = nil
			rowWidth = 0
		}
		if rowWidth > 0 {
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	rows = append(rows, strings.Join(row, " "))
	return strings.Join(rows, "\n")
}
