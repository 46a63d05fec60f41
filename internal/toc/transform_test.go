package toc

import (
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Post</title></head>
<body>
<aside><!-- toc --></aside>
<main>
<h1 id="post">Post</h1>
<h2 id="setup">Setup</h2>
<p>Install things.</p>
<h3 id="deps">Dependencies</h3>
<h2 id="usage">Usage</h2>
<h2>Untitled</h2>
</main>
</body>
</html>`

func newTestTransformer() *Transformer {
	return NewTransformer(DefaultOptions(), nil)
}

func TestTransform_InjectsTOCAndScript(t *testing.T) {
	res, err := newTestTransformer().Transform("post/index.html", testPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeInjected {
		t.Fatalf("expected outcome %q, got %q", OutcomeInjected, res.Outcome)
	}
	if res.Headings != 3 {
		t.Errorf("expected 3 headings, got %d", res.Headings)
	}
	if strings.Contains(res.HTML, DefaultPlaceholder) {
		t.Error("expected placeholder to be replaced")
	}
	if !strings.Contains(res.HTML, `<aside><nav class="toc"`) {
		t.Errorf("expected toc in place of the placeholder, got:\n%s", res.HTML)
	}
	for _, id := range []string{"setup", "deps", "usage"} {
		if !strings.Contains(res.HTML, `href="#`+id+`"`) {
			t.Errorf("expected link to %q", id)
		}
	}
	if strings.Contains(res.HTML, `href="#post"`) {
		t.Error("h1 should not be listed with default levels")
	}
	if n := strings.Count(res.HTML, Script); n != 1 {
		t.Fatalf("expected script exactly once, got %d", n)
	}
	if !strings.Contains(res.HTML, Script+"</body>") {
		t.Error("expected script immediately before </body>")
	}
}

func TestTransform_NoPlaceholderIsIdentity(t *testing.T) {
	page := strings.Replace(testPage, DefaultPlaceholder, "", 1)
	res, err := newTestTransformer().Transform("post/index.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != page {
		t.Error("expected output to equal input")
	}
	if res.Outcome != OutcomeSkipped {
		t.Errorf("expected outcome %q, got %q", OutcomeSkipped, res.Outcome)
	}
}

func TestTransform_SkipsNonHTMLTargets(t *testing.T) {
	for _, path := range []string{"feed.xml", "robots.txt", "post/index"} {
		res, err := newTestTransformer().Transform(path, testPage)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		if res.HTML != testPage || res.Outcome != OutcomeSkipped {
			t.Errorf("%s: expected page to be left alone", path)
		}
	}
	res, _ := newTestTransformer().Transform("POST.HTM", testPage)
	if res.Outcome != OutcomeInjected {
		t.Errorf("expected .HTM to be treated as html, got %q", res.Outcome)
	}
}

func TestTransform_MissingContentContainer(t *testing.T) {
	page := strings.NewReplacer("<main>", "<div>", "</main>", "</div>").Replace(testPage)
	res, err := newTestTransformer().Transform("index.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != page || res.Outcome != OutcomeSkipped {
		t.Error("expected page without <main> to be unchanged")
	}
}

func TestTransform_BelowMinimumStripsPlaceholder(t *testing.T) {
	page := `<html><body><aside><!-- toc --></aside><main><h2 id="only">Only</h2></main></body></html>`
	res, err := newTestTransformer().Transform("index.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeStripped {
		t.Fatalf("expected outcome %q, got %q", OutcomeStripped, res.Outcome)
	}
	want := `<html><body><aside></aside><main><h2 id="only">Only</h2></main></body></html>`
	if res.HTML != want {
		t.Errorf("expected %q, got %q", want, res.HTML)
	}
	if strings.Contains(res.HTML, "<script") || strings.Contains(res.HTML, "<ol") {
		t.Error("expected no toc or script markup")
	}
}

func TestTransform_Idempotent(t *testing.T) {
	tr := newTestTransformer()
	first, err := tr.Transform("index.html", testPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := tr.Transform("index.html", first.HTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.HTML != first.HTML {
		t.Error("expected second pass to be a no-op")
	}
}

func TestTransform_ExtraPlaceholdersRemoved(t *testing.T) {
	page := strings.Replace(testPage, "<p>Install things.</p>", "<p>Install things.</p><!-- toc -->", 1)
	res, err := newTestTransformer().Transform("index.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.HTML, DefaultPlaceholder) {
		t.Error("expected every placeholder to be consumed")
	}
	if n := strings.Count(res.HTML, `<nav class="toc"`); n != 1 {
		t.Errorf("expected one toc, got %d", n)
	}
}

func TestTransform_NoClosingBody(t *testing.T) {
	page := `<aside><!-- toc --></aside><main><h2 id="a">A</h2><h2 id="b">B</h2></main>`
	res, err := newTestTransformer().Transform("index.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeInjected {
		t.Fatalf("expected outcome %q, got %q", OutcomeInjected, res.Outcome)
	}
	if strings.Contains(res.HTML, "<script") {
		t.Error("expected no script without </body>")
	}
}

func TestTransform_UppercaseClosingBody(t *testing.T) {
	page := `<HTML><BODY><aside><!-- toc --></aside><main><h2 id="a">A</h2><h2 id="b">B</h2></main></BODY></HTML>`
	res, err := newTestTransformer().Transform("x.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeInjected {
		t.Fatalf("expected outcome %q, got %q", OutcomeInjected, res.Outcome)
	}
	if n := strings.Count(res.HTML, Script); n != 1 {
		t.Fatalf("expected script exactly once, got %d", n)
	}
	if !strings.Contains(res.HTML, Script+"</BODY>") {
		t.Error("expected script immediately before </BODY>")
	}
}

func TestLastIndexFold(t *testing.T) {
	tests := []struct {
		doc  string
		want int
	}{
		{"<p></BoDy></body>", 10},
		{"ß</Body>", 2},
		{"no closing tag", -1},
		{"</bod", -1},
	}
	for _, tt := range tests {
		if got := lastIndexFold(tt.doc, closingBody); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.doc, tt.want, got)
		}
	}
}

func TestTransform_CustomOptions(t *testing.T) {
	tr := NewTransformer(Options{
		Levels:          []int{2},
		Title:           "Jump to",
		ListID:          "jump",
		MinHeadings:     3,
		Placeholder:     "{{TOC}}",
		ContentSelector: "article.post",
	}, nil)

	page := `<body>{{TOC}}<article class="post"><h2 id="a">A</h2><h3 id="x">X</h3><h2 id="b">B</h2><h2 id="c">C</h2></article></body>`
	res, err := tr.Transform("a.html", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeInjected || res.Headings != 3 {
		t.Fatalf("expected 3 headings injected, got %q with %d", res.Outcome, res.Headings)
	}
	if !strings.Contains(res.HTML, `<ol id="jump"`) || !strings.Contains(res.HTML, ">Jump to<") {
		t.Errorf("expected custom title and list id, got %s", res.HTML)
	}
	if strings.Contains(res.HTML, `href="#x"`) {
		t.Error("expected h3 to be excluded")
	}
}

func TestNewTransformer_Defaults(t *testing.T) {
	opts := NewTransformer(Options{}, nil).Options()
	if opts.MinHeadings != DefaultMinHeadings || opts.Placeholder != DefaultPlaceholder || opts.ContentSelector != DefaultContentSelector {
		t.Errorf("expected defaults, got %+v", opts)
	}
	if len(opts.Levels) != 3 {
		t.Errorf("expected default levels, got %v", opts.Levels)
	}
}
