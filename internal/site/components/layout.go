// Package components renders the landing page with gomponents.
package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/csheth/buildvision/internal/pitch"
)

type PageConfig struct {
	Title       string
	Description string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = pitch.Product + " - " + pitch.Tagline
	}
	if config.Description == "" {
		config.Description = pitch.StatsNote
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				g.El("style", g.Raw(stylesheet)),
			),
			Body(
				g.Group(content),
			),
		),
	})
}

// Page is the full landing page.
func Page(demo DemoState) g.Node {
	return Layout(
		PageConfig{},
		Navbar(),
		Hero(),
		DemoChat(demo),
		HowItWorks(pitch.HowItWorks()),
		PageFooter(),
	)
}
