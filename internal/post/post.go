// Package post loads Markdown blog posts and renders them to HTML.
package post

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
)

// Post is a blog post source file.
type Post struct {
	Slug       string
	Title      string
	Summary    string
	Author     string
	Tags       []string
	Date       time.Time
	Draft      bool
	Body       []byte // Markdown without front matter
	SourcePath string
}

type frontMatter struct {
	Title   string    `yaml:"title" toml:"title" json:"title"`
	Slug    string    `yaml:"slug" toml:"slug" json:"slug"`
	Summary string    `yaml:"summary" toml:"summary" json:"summary"`
	Author  string    `yaml:"author" toml:"author" json:"author"`
	Tags    []string  `yaml:"tags" toml:"tags" json:"tags"`
	Date    time.Time `yaml:"date" toml:"date" json:"date"`
	Draft   bool      `yaml:"draft" toml:"draft" json:"draft"`
}

// Extensions lists the source file extensions treated as posts.
var Extensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Load reads a single post from path.
func Load(path string) (*Post, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post: %w", err)
	}
	return Parse(src, filepath.Base(path))
}

// Parse builds a Post from raw source. filename supplies the fallback slug
// and title when the front matter has none.
func Parse(src []byte, filename string) (*Post, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter of %s: %w", filename, err)
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	rawSlug := meta.Slug
	if rawSlug == "" {
		rawSlug = base
	}
	s, err := slug.Normalize(rawSlug)
	if err != nil {
		return nil, fmt.Errorf("slug for %s: %w", filename, err)
	}
	if s == "" {
		return nil, fmt.Errorf("slug for %s is empty", filename)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = base
	}

	return &Post{
		Slug:       s,
		Title:      title,
		Summary:    meta.Summary,
		Author:     meta.Author,
		Tags:       append([]string(nil), meta.Tags...),
		Date:       meta.Date,
		Draft:      meta.Draft,
		Body:       body,
		SourcePath: filename,
	}, nil
}

// LoadDir loads every post in dir, newest first. Drafts are skipped unless
// includeDrafts is set.
func LoadDir(dir string, includeDrafts bool) ([]*Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var posts []*Post
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !Extensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := Load(path)
		if err != nil {
			return nil, err
		}
		p.SourcePath = path
		if p.Draft && !includeDrafts {
			continue
		}
		if prev, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("duplicate slug %q in %s and %s", p.Slug, prev, path)
		}
		seen[p.Slug] = path
		posts = append(posts, p)
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// Find returns the post with the given slug, or nil.
func Find(posts []*Post, s string) *Post {
	for _, p := range posts {
		if p.Slug == s {
			return p
		}
	}
	return nil
}
