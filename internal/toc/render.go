package toc

import (
	"iter"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render builds the navigation sidebar for headings. It returns "" when
// there are no headings.
func Render(headings iter.Seq[Heading], opts RenderOptions) string {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ListID == "" {
		opts.ListID = DefaultListID
	}

	list := element(atom.Ol,
		html.Attribute{Key: "id", Val: opts.ListID},
		html.Attribute{Key: "class", Val: "toc-list"},
		html.Attribute{Key: "data-toc", Val: ""},
	)
	count := 0
	for h := range headings {
		level := strconv.Itoa(h.Level)
		link := element(atom.A,
			html.Attribute{Key: "href", Val: "#" + h.ID},
			html.Attribute{Key: "data-level", Val: level},
		)
		link.AppendChild(&html.Node{Type: html.TextNode, Data: h.Text})

		item := element(atom.Li, html.Attribute{Key: "class", Val: "toc-item toc-level-" + level})
		item.AppendChild(link)
		list.AppendChild(item)
		count++
	}
	if count == 0 {
		return ""
	}

	title := element(atom.Div, html.Attribute{Key: "class", Val: "toc-title"})
	title.AppendChild(&html.Node{Type: html.TextNode, Data: opts.Title})

	nav := element(atom.Nav,
		html.Attribute{Key: "class", Val: "toc"},
		html.Attribute{Key: "aria-label", Val: opts.Title},
	)
	nav.AppendChild(title)
	nav.AppendChild(list)

	var buf strings.Builder
	if err := html.Render(&buf, nav); err != nil {
		// Rendering into a strings.Builder does not fail.
		return ""
	}
	return buf.String()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}
