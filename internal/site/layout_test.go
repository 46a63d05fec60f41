package site

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/blogtoc/internal/post"
)

func testLayout() Layout {
	return Layout{SiteTitle: "Notes", BaseURL: "/blog", Placeholder: "<!-- toc -->"}
}

func TestRenderPost_Structure(t *testing.T) {
	p := &post.Post{
		Slug:   "hello",
		Title:  "Hello <World>",
		Author: "sam",
		Tags:   []string{"go"},
		Date:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}
	doc, err := testLayout().RenderPost(p, []byte(`<h2 id="a">A</h2>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []string{
		`<aside class="sidebar"><!-- toc --></aside>`,
		`<main>`,
		`<h2 id="a">A</h2>`,
		`<h1>Hello &lt;World&gt;</h1>`,
		`<time datetime="2024-05-06">May 6, 2024</time> by sam`,
		`<link rel="stylesheet" href="/blog/static/chroma.css">`,
		"</body>",
	}
	for _, c := range checks {
		if !strings.Contains(doc, c) {
			t.Errorf("expected document to contain %q\n%s", c, doc)
		}
	}
	if strings.Index(doc, "<!-- toc -->") > strings.Index(doc, "<main>") {
		t.Error("expected placeholder outside the content container")
	}
}

func TestRenderPost_NoDate(t *testing.T) {
	doc, err := testLayout().RenderPost(&post.Post{Slug: "x", Title: "X"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "<time") {
		t.Error("expected no time element for undated post")
	}
}

func TestRenderIndex(t *testing.T) {
	posts := []*post.Post{
		{Slug: "b", Title: "Second", Summary: "more"},
		{Slug: "a", Title: "First", Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	doc, err := testLayout().RenderIndex(posts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, `<a href="/blog/b/">Second</a>`) {
		t.Errorf("expected link to b, got %s", doc)
	}
	if !strings.Contains(doc, `<time>2023-01-02</time>`) {
		t.Errorf("expected date for a, got %s", doc)
	}
	if strings.Index(doc, "Second") > strings.Index(doc, "First") {
		t.Error("expected input order preserved")
	}
	if strings.Contains(doc, "<!-- toc -->") {
		t.Error("index page should not carry the toc placeholder")
	}
}

func TestPaths(t *testing.T) {
	if got := PostPath("hello"); got != "hello/index.html" {
		t.Errorf("expected %q, got %q", "hello/index.html", got)
	}
	if got := (Layout{}).url("x/"); got != "/x/" {
		t.Errorf("expected %q, got %q", "/x/", got)
	}
}
