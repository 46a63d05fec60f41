// Package site wraps rendered post bodies into full HTML pages.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/dgallion1/blogtoc/internal/post"
)

// Layout renders pages for one site.
type Layout struct {
	SiteTitle   string
	BaseURL     string
	Placeholder string // TOC placeholder emitted into post pages
}

// PostPath is where a post page is written, relative to the output root.
func PostPath(slug string) string {
	return path.Join(slug, "index.html")
}

// IndexPath is the output path of the post listing.
const IndexPath = "index.html"

// StylesheetPath is the output path of the code highlighting stylesheet.
const StylesheetPath = "static/chroma.css"

type postView struct {
	SiteTitle   string
	Home        string
	Stylesheet  string
	Title       string
	Date        string
	ISODate     string
	Author      string
	Minutes     int
	Tags        []string
	Summary     string
	Body        template.HTML
	Placeholder template.HTML
}

type indexEntry struct {
	Title   string
	URL     string
	Date    string
	Summary string
}

type indexView struct {
	SiteTitle  string
	Home       string
	Stylesheet string
	Posts      []indexEntry
}

// RenderPost returns the full document for p with body as the article
// content. The TOC placeholder sits in the sidebar, outside <main>.
func (l Layout) RenderPost(p *post.Post, body []byte) (string, error) {
	v := postView{
		SiteTitle:   l.SiteTitle,
		Home:        l.url(""),
		Stylesheet:  l.url(StylesheetPath),
		Title:       p.Title,
		Author:      p.Author,
		Minutes:     p.ReadingMinutes(),
		Tags:        p.Tags,
		Summary:     p.Summary,
		Body:        template.HTML(body),
		Placeholder: template.HTML(l.Placeholder),
	}
	if !p.Date.IsZero() {
		v.Date = p.Date.Format("January 2, 2006")
		v.ISODate = p.Date.Format(time.DateOnly)
	}

	var buf bytes.Buffer
	if err := postTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render layout for %s: %w", p.Slug, err)
	}
	return buf.String(), nil
}

// RenderIndex returns the post listing page.
func (l Layout) RenderIndex(posts []*post.Post) (string, error) {
	v := indexView{
		SiteTitle:  l.SiteTitle,
		Home:       l.url(""),
		Stylesheet: l.url(StylesheetPath),
	}
	for _, p := range posts {
		e := indexEntry{
			Title:   p.Title,
			URL:     l.url(p.Slug + "/"),
			Summary: p.Summary,
		}
		if !p.Date.IsZero() {
			e.Date = p.Date.Format(time.DateOnly)
		}
		v.Posts = append(v.Posts, e)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}
	return buf.String(), nil
}

func (l Layout) url(rel string) string {
	base := l.BaseURL
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + rel
}

var postTemplate = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.SiteTitle}}</title>
{{- if .Summary}}
<meta name="description" content="{{.Summary}}">
{{- end}}
<link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
<header><a href="{{.Home}}">{{.SiteTitle}}</a></header>
<div class="layout">
<aside class="sidebar">{{.Placeholder}}</aside>
<main>
<article>
<h1>{{.Title}}</h1>
{{- if .Date}}
<p class="meta"><time datetime="{{.ISODate}}">{{.Date}}</time>{{if .Author}} by {{.Author}}{{end}}{{if .Minutes}} · {{.Minutes}} min read{{end}}</p>
{{- end}}
{{- if .Tags}}
<ul class="tags">{{range .Tags}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{.Body}}
</article>
</main>
</div>
<footer><a href="{{.Home}}">{{.SiteTitle}}</a></footer>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteTitle}}</title>
<link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
<header><a href="{{.Home}}">{{.SiteTitle}}</a></header>
<main>
<ul class="posts">
{{- range .Posts}}
<li><a href="{{.URL}}">{{.Title}}</a>{{if .Date}} <time>{{.Date}}</time>{{end}}{{if .Summary}}<p>{{.Summary}}</p>{{end}}</li>
{{- end}}
</ul>
</main>
</body>
</html>
`))
