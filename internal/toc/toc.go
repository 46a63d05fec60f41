// Package toc extracts headings from rendered pages and injects a
// table-of-contents sidebar with a scroll-spy script.
package toc

// Heading is a single heading found in rendered markup.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// DefaultLevels are the heading levels included when none are configured.
var DefaultLevels = []int{2, 3, 4}

const (
	DefaultTitle           = "Contents"
	DefaultListID          = "toc-list"
	DefaultMinHeadings     = 2
	DefaultPlaceholder     = "<!-- toc -->"
	DefaultContentSelector = "main"
)

// ExtractOptions controls which headings Extract reports.
type ExtractOptions struct {
	Levels []int
}

// RenderOptions controls the generated navigation markup.
type RenderOptions struct {
	Title  string
	ListID string
}

// Options configures a Transformer.
type Options struct {
	Levels          []int
	Title           string
	ListID          string
	MinHeadings     int
	Placeholder     string
	ContentSelector string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Levels:          append([]int(nil), DefaultLevels...),
		Title:           DefaultTitle,
		ListID:          DefaultListID,
		MinHeadings:     DefaultMinHeadings,
		Placeholder:     DefaultPlaceholder,
		ContentSelector: DefaultContentSelector,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Levels) == 0 {
		o.Levels = append([]int(nil), DefaultLevels...)
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.ListID == "" {
		o.ListID = DefaultListID
	}
	if o.MinHeadings <= 0 {
		o.MinHeadings = DefaultMinHeadings
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.ContentSelector == "" {
		o.ContentSelector = DefaultContentSelector
	}
	return o
}

func (o Options) extractOptions() ExtractOptions {
	return ExtractOptions{Levels: o.Levels}
}

func (o Options) renderOptions() RenderOptions {
	return RenderOptions{Title: o.Title, ListID: o.ListID}
}
