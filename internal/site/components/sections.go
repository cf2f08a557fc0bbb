package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/csheth/buildvision/internal/pitch"
)

func Logo() g.Node {
	return Span(Class("logo"), g.Text(pitch.Product))
}

func Navbar() g.Node {
	return g.El("nav",
		Class("navbar"),
		A(Href("/"), Logo()),
		Span(Class("badge"), g.Text(pitch.Badge)),
		Ul(
			Class("nav-links"),
			Li(A(Href("#demo"), g.Text("Try Atlas"))),
			Li(A(Href("#how-it-works"), g.Text("How It Works"))),
			Li(A(Href("mailto:"+pitch.ContactEmail), g.Text("Contact"))),
		),
	)
}

func Hero() g.Node {
	return g.El("section",
		Class("hero"),
		ID("hero"),
		H1(g.Text(pitch.Tagline)),
		P(Class("hero-note"), g.Text(pitch.StatsNote)),
		A(Class("btn"), Href("#demo"), g.Text("Ask Atlas")),
	)
}

func HowItWorks(flow pitch.Flow) g.Node {
	return g.El("section",
		Class("how-it-works"),
		ID("how-it-works"),
		H2(g.Text(flow.Title)),
		P(Class("subtitle"), g.Text(flow.Subtitle)),
		Div(
			Class("flow-row intake"),
			g.Group(g.Map(flow.Intake, flowCard)),
		),
		Div(
			Class("flow-core"),
			H3(g.Text(flow.CoreName)),
			Div(Class("flow-row"), g.Group(g.Map(flow.Core, flowCard))),
		),
		Div(
			Class("flow-row audiences"),
			audienceCard(flow.Free, "free"),
			audienceCard(flow.Paid, "paid"),
		),
		Div(
			Class("flow-loop"),
			Span(Class("icon"), g.Text(flow.Loop.Icon)),
			Strong(g.Text(flow.Loop.Label)),
			P(g.Text(flow.Loop.Detail)),
		),
	)
}

func flowCard(item pitch.Item) g.Node {
	return Div(
		Class("card"),
		g.If(item.Icon != "", Span(Class("icon"), g.Text(item.Icon))),
		Strong(g.Text(item.Label)),
		P(g.Text(item.Detail)),
	)
}

func audienceCard(a pitch.Audience, variant string) g.Node {
	return Div(
		Class(fmt.Sprintf("card audience %s", variant)),
		Span(Class("badge"), g.Text(a.Badge)),
		H3(g.Text(a.Title)),
		Ul(g.Group(g.Map(a.Items, func(item pitch.Item) g.Node {
			return Li(Strong(g.Text(item.Label)), g.Text(" "+item.Detail))
		}))),
		P(Class("closing"), g.Text(a.Closing)),
	)
}

func PageFooter() g.Node {
	return g.El("footer",
		Class("footer"),
		Logo(),
		P(g.Text(pitch.Tagline)),
		A(Href("mailto:"+pitch.ContactEmail), g.Text(pitch.ContactEmail)),
	)
}
