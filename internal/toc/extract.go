package toc

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Extract returns the headings of fragment at the configured levels, in
// document order. Headings without an id attribute are skipped.
//
// The fragment is parsed each time the sequence is ranged over, so the
// sequence can be consumed more than once. Input that cannot be parsed
// yields nothing.
func Extract(fragment string, opts ExtractOptions) iter.Seq[Heading] {
	levels := opts.Levels
	if len(levels) == 0 {
		levels = DefaultLevels
	}

	return func(yield func(Heading) bool) {
		if strings.TrimSpace(fragment) == "" {
			return
		}
		nodes, err := parseFragment(fragment)
		if err != nil {
			return
		}

		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			if n.Type == html.ElementNode {
				if level := headingLevel(n.DataAtom); level > 0 {
					// Headings don't nest, so there is nothing to find below one.
					if !slices.Contains(levels, level) {
						return true
					}
					id := strings.TrimSpace(attr(n, "id"))
					if id == "" {
						return true
					}
					return yield(Heading{ID: id, Text: headingText(n), Level: level})
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}
			return true
		}

		for _, n := range nodes {
			if !walk(n) {
				return
			}
		}
	}
}

// Headings collects Extract into a slice.
func Headings(fragment string, opts ExtractOptions) []Heading {
	return slices.Collect(Extract(fragment, opts))
}

func parseFragment(fragment string) ([]*html.Node, error) {
	parent := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	return html.ParseFragment(strings.NewReader(fragment), parent)
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// headingText returns the visible text of a heading, minus the "#" that
// permalink anchors leave at the front.
func headingText(n *html.Node) string {
	t := strings.TrimSpace(textContent(n))
	t = strings.TrimPrefix(t, "#")
	return strings.TrimSpace(t)
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return collapseSpace(buf.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
