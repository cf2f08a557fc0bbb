// Package answer turns an assistant answer into display segments.
//
// Answers may carry inline citation markers such as [3] that refer to the
// sources returned alongside them, and **bold** spans. Format resolves both
// without touching any presentation technology; the terminal and web front
// ends decide how each segment kind is drawn.
package answer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/csheth/buildvision/internal/atlas"
)

// Kind identifies how a segment should be drawn.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindCitation
)

func (k Kind) String() string {
	switch k {
	case KindBold:
		return "bold"
	case KindCitation:
		return "citation"
	default:
		return "text"
	}
}

// Segment is one run of the formatted answer.
type Segment struct {
	Kind    Kind
	Text    string
	Index   int
	URL     string
	Tooltip string
}

var (
	citationPattern = regexp.MustCompile(`\[\d+\]`)
	boldPattern     = regexp.MustCompile(`\*\*[^*]+\*\*`)
)

// Format splits text into plain, bold and citation segments. Citation
// markers resolve against the first source sharing their index; markers
// without a source, or whose source has no URL, stay literal text.
func Format(text string, sources []atlas.Source) []Segment {
	var segments []Segment
	for _, part := range splitKeep(text, citationPattern) {
		if part.match {
			if seg, ok := citation(part.text, sources); ok {
				segments = append(segments, seg)
				continue
			}
		}
		segments = appendEmphasis(segments, part.text)
	}
	return segments
}

// PlainText flattens segments back to readable text, citations as [N].
func PlainText(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind == KindCitation {
			b.WriteString("[" + seg.Text + "]")
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func citation(token string, sources []atlas.Source) (Segment, bool) {
	idx, err := strconv.Atoi(token[1 : len(token)-1])
	if err != nil {
		return Segment{}, false
	}
	source, ok := lookup(sources, idx)
	if !ok || !Linkable(source.URL) {
		return Segment{}, false
	}
	return Segment{
		Kind:    KindCitation,
		Text:    strconv.Itoa(idx),
		Index:   idx,
		URL:     source.URL,
		Tooltip: source.Manufacturer + " — " + source.Title,
	}, true
}

// Linkable reports whether raw is an absolute http or https URL, the only
// kind of source link the front ends will open.
func Linkable(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// lookup keeps first-match semantics when the endpoint repeats an index.
func lookup(sources []atlas.Source, idx int) (atlas.Source, bool) {
	for _, source := range sources {
		if source.Index == idx {
			return source, true
		}
	}
	return atlas.Source{}, false
}

func appendEmphasis(segments []Segment, text string) []Segment {
	for _, part := range splitKeep(text, boldPattern) {
		if part.match {
			segments = append(segments, Segment{Kind: KindBold, Text: part.text[2 : len(part.text)-2]})
			continue
		}
		segments = append(segments, Segment{Kind: KindText, Text: part.text})
	}
	return segments
}

type fragment struct {
	text  string
	match bool
}

// splitKeep splits text around pattern matches, keeping the matches and
// dropping empty fragments.
func splitKeep(text string, pattern *regexp.Regexp) []fragment {
	var out []fragment
	pos := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] > pos {
			out = append(out, fragment{text: text[pos:loc[0]]})
		}
		out = append(out, fragment{text: text[loc[0]:loc[1]], match: true})
		pos = loc[1]
	}
	if pos < len(text) {
		out = append(out, fragment{text: text[pos:]})
	}
	return out
}
