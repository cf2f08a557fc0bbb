package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/csheth/buildvision/internal/answer"
	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/pitch"
)

// Form targets of the demo widget.
const (
	ChatPath  = "/demo/chat"
	ResetPath = "/demo/reset"
)

// LatestAnchor is the element id of the newest message.
const LatestAnchor = "latest"

// DemoState is what the demo widget needs to render.
type DemoState struct {
	Conversation conversation.State
	Presets      []string
}

func DemoChat(demo DemoState) g.Node {
	state := demo.Conversation
	return g.El("section",
		Class("demo"),
		ID("demo"),
		Div(
			Class("demo-header"),
			Span(Class("dot")),
			Strong(g.Text(pitch.AssistantTag)),
		),
		Div(
			Class("demo-messages"),
			g.If(len(state.Messages) == 0 && !state.Pending, emptyState(demo.Presets)),
			g.Group(messageNodes(state)),
			g.If(state.Pending, Div(
				Class("message assistant loading"),
				ID(LatestAnchor),
				Span(Class("spinner")),
				g.Text(pitch.LoadingLine),
			)),
		),
		g.If(state.Err != "", P(Class("demo-error"), g.Attr("role", "alert"), g.Text(state.Err))),
		composer(state),
	)
}

func emptyState(presets []string) g.Node {
	return Div(
		Class("demo-empty"),
		P(g.Text(pitch.EmptyPrompt)),
		Div(
			Class("presets"),
			g.Group(g.Map(presets, func(preset string) g.Node {
				return g.El("form",
					g.Attr("method", "post"),
					g.Attr("action", ChatPath),
					Input(Type("hidden"), Name("message"), Value(preset)),
					Button(Type("submit"), Class("preset"), g.Text(preset)),
				)
			})),
		),
	)
}

func messageNodes(state conversation.State) []g.Node {
	nodes := make([]g.Node, 0, len(state.Messages))
	for idx, msg := range state.Messages {
		latest := idx == len(state.Messages)-1 && !state.Pending
		nodes = append(nodes, message(msg, latest))
	}
	return nodes
}

func message(msg conversation.Message, latest bool) g.Node {
	if msg.Role == conversation.RoleUser {
		return Div(
			Class("message user"),
			g.If(latest, ID(LatestAnchor)),
			P(g.Text(msg.Content)),
		)
	}
	return Div(
		Class("message assistant"),
		g.If(latest, ID(LatestAnchor)),
		P(Class("answer"), AnswerText(answer.Format(msg.Content, msg.Sources))),
		g.If(len(msg.Sources) > 0, sourceList(msg.Sources)),
		g.If(len(msg.Manufacturers) > 0, Div(
			Class("chips"),
			g.Group(g.Map(msg.Manufacturers, func(name string) g.Node {
				return Span(Class("chip"), g.Text(name))
			})),
		)),
	)
}

// AnswerText renders formatted answer segments. Citations open in a new
// browsing context without opener or referrer; a citation whose URL is not
// http or https stays plain text.
func AnswerText(segments []answer.Segment) g.Node {
	nodes := make([]g.Node, 0, len(segments))
	for _, seg := range segments {
		switch {
		case seg.Kind == answer.KindBold:
			nodes = append(nodes, Strong(g.Text(seg.Text)))
		case seg.Kind == answer.KindCitation && !answer.Linkable(seg.URL):
			nodes = append(nodes, g.Text("["+seg.Text+"]"))
		case seg.Kind == answer.KindCitation:
			nodes = append(nodes, A(
				Class("citation"),
				Href(seg.URL),
				g.Attr("target", "_blank"),
				Rel("noopener noreferrer"),
				g.Attr("title", seg.Tooltip),
				g.Text(seg.Text),
			))
		default:
			nodes = append(nodes, g.Text(seg.Text))
		}
	}
	return g.Group(nodes)
}

func sourceList(sources []atlas.Source) g.Node {
	return Div(
		Class("sources"),
		Span(Class("sources-title"), g.Text("Sources")),
		Ul(g.Group(g.Map(sources, func(src atlas.Source) g.Node {
			label := g.Text(src.Label())
			if answer.Linkable(src.URL) {
				label = A(
					Href(src.URL),
					g.Attr("target", "_blank"),
					Rel("noopener noreferrer"),
					g.Text(src.Label()),
				)
			}
			return Li(Span(Class("citation"), g.Text(fmt.Sprint(src.Index))), label)
		}))),
	)
}

func composer(state conversation.State) g.Node {
	return Div(
		Class("composer"),
		g.El("form",
			g.Attr("method", "post"),
			g.Attr("action", ChatPath),
			Input(
				Type("text"),
				Name("message"),
				Placeholder(pitch.Placeholder),
				Value(state.Input),
				g.Attr("autocomplete", "off"),
				g.Attr("required"),
				g.If(state.Pending, g.Attr("disabled")),
			),
			Button(
				Type("submit"),
				Class("btn send"),
				g.If(state.Pending, g.Attr("disabled")),
				g.Text("Send"),
			),
		),
		g.If(len(state.Messages) > 0, g.El("form",
			g.Attr("method", "post"),
			g.Attr("action", ResetPath),
			Button(Type("submit"), Class("reset"), g.Text("New conversation")),
		)),
	)
}
