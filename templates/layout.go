package templates

import (
	"dealdesk/database"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

type LayoutProps struct {
	Title       string
	CurrentUser string
}

func NavbarComponent(props LayoutProps) g.Node {
	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href("/"), g.Text("DealDesk"))),
		),
		Div(Class("nav-links nav-right"),
			g.If(props.CurrentUser != "",
				Div(Class("row"),
					Div(Class("col"), g.Textf("Signed in as %s", props.CurrentUser)),
					Div(Class("col"), A(Href("/dashboard"), g.Text("Review queue"))),
				)),
		),
	)
}

func FooterComponent() g.Node {
	return Footer(Class("footer"),
		P(Class("fine-print"),
			Small(g.Text("Internal moderation console. Offers shown here are unreviewed drafts.")),
		),
	)
}

func Layout(props LayoutProps, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/assets/css/chota.min.css")),
				Link(Rel("stylesheet"), Href("/assets/css/main.css")),
				TitleEl(g.Text(props.Title)),
			),
			Body(
				Div(Class("container"), Style("margin-top: 1.5em;"),
					NavbarComponent(props),
					Main(
						g.Group(children),
					),
				),
				FooterComponent(),
			),
		),
	)
}

// ReviewQueuePage renders the moderation queue as a table, one row per
// pending post with its source tweet.
func ReviewQueuePage(props LayoutProps, pending []database.PendingPost) g.Node {
	return Layout(props,
		H1(g.Text("Review queue")),
		P(g.Textf("%d post(s) waiting", len(pending))),
		Table(Class("striped"),
			THead(
				Tr(
					Th(g.Text("ID")),
					Th(g.Text("Status")),
					Th(g.Text("Category")),
					Th(g.Text("Source")),
					Th(g.Text("Tweet")),
					Th(g.Text("Notes")),
				),
			),
			TBody(
				g.Group(g.Map(pending, func(p database.PendingPost) g.Node {
					return Tr(
						Td(g.Textf("%d", p.ID)),
						Td(g.Text(string(p.Status))),
						Td(g.Text(p.Category)),
						Td(g.Text("@"+p.RawTweet.Handle)),
						Td(g.Text(p.RawTweet.Content)),
						Td(g.Text(p.AdminNotes)),
					)
				})),
			),
		),
	)
}
