// Package render turns a sorted directory listing into a standalone HTML
// index page. Pages carry no generation timestamp, so rendering an
// unchanged directory twice produces identical bytes.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/jamesainslie/genindex/pkg/genindex/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

// Layouts for the modification time column.
const (
	isoLayout   = "2006-01-02T15:04:05"
	humanLayout = time.ANSIC
)

// Crumb is one segment of the header path.
type Crumb struct {
	Name string
	// Sep precedes the name in the header.
	Sep string
	// Href is relative to the page; empty for the current directory.
	Href string
}

// Row is one listed entry.
type Row struct {
	Name      string
	Href      string
	Icon      string
	IconClass string
	Class     string
	SizeBytes int64
	SizeHuman string
	HasSize   bool
	ModISO    string
	ModHuman  string
}

// Page is everything needed to render one index file.
type Page struct {
	Title      string
	Crumbs     []Crumb
	ShowParent bool
	Rows       []Row
	Readme     template.HTML
}

// pageData wraps Page to add the sprite.
type pageData struct {
	*Page
	Sprite []Glyph
}

// Renderer renders pages and README documents. It is safe for
// concurrent use.
type Renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	sprite []Glyph
}

// New parses the embedded page template.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	return &Renderer{
		tmpl: tmpl,
		// Raw HTML in READMEs is omitted.
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sprite: sprite(),
	}, nil
}

// MustNew is like New but panics if the embedded template is invalid.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes the page to the buffer.
func (r *Renderer) Render(w *bytes.Buffer, p *Page) error {
	return r.tmpl.Execute(w, pageData{Page: p, Sprite: r.sprite})
}

// Readme converts Markdown source into HTML for the page header.
func (r *Renderer) Readme(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render readme: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark output with raw HTML disabled
}

// BuildPage assembles the page for dir, a directory at or below root.
// Entries must already be filtered and sorted.
func BuildPage(root, dir string, entries []types.DirectoryEntry) *Page {
	root = filepath.Clean(root)
	dir = filepath.Clean(dir)

	segments := titleSegments(root, dir)
	isRoot := dir == root

	page := &Page{
		Title:      strings.Join(segments, "/"),
		Crumbs:     crumbs(segments),
		ShowParent: !(isRoot && hasNoParent(root)),
		Rows:       make([]Row, 0, len(entries)),
	}
	if hasNoParent(root) {
		page.Title = "/" + strings.TrimPrefix(page.Title, "/")
	}

	for _, e := range entries {
		page.Rows = append(page.Rows, BuildRow(e))
	}

	return page
}

// BuildRow converts one entry into its table row.
func BuildRow(e types.DirectoryEntry) Row {
	row := Row{
		Name:      e.Name,
		Href:      Href(e),
		Icon:      IconFor(e),
		Class:     "file",
		SizeBytes: e.Size,
		HasSize:   e.HasSize(),
		SizeHuman: e.HumanSize(),
	}

	if e.Kind == types.KindDirectory {
		row.IconClass = "folder-filled"
	}
	if e.IsDirLike() {
		row.Class = "dir"
	}

	if !e.ModTime.IsZero() {
		t := e.ModTime.Local().Truncate(time.Second)
		row.ModISO = t.Format(isoLayout)
		row.ModHuman = t.Format(humanLayout)
	}

	return row
}

// Href returns the escaped link target for an entry. Directory-like
// entries get a trailing slash.
func Href(e types.DirectoryEntry) string {
	href := url.PathEscape(e.Name)
	// A colon in the first segment would read as a scheme.
	href = strings.ReplaceAll(href, ":", "%3A")
	if e.IsDirLike() {
		href += "/"
	}
	return href
}

// titleSegments returns the path components of dir relative to the
// parent of root, starting with the base name of root.
func titleSegments(root, dir string) []string {
	base := filepath.Base(root)
	if hasNoParent(root) {
		base = ""
	}
	segments := []string{base}

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return segments
	}
	return append(segments, strings.Split(filepath.ToSlash(rel), "/")...)
}

// crumbs links every segment except the last to its own index.
func crumbs(segments []string) []Crumb {
	out := make([]Crumb, len(segments))
	last := len(segments) - 1
	for i, name := range segments {
		out[i] = Crumb{Name: name}
		if i > 0 && segments[i-1] != "" {
			out[i].Sep = "/"
		}
		if i < last {
			out[i].Href = strings.Repeat("../", last-i)
		}
	}
	if out[0].Name == "" {
		out[0].Name = "/"
	}
	return out
}

func hasNoParent(path string) bool {
	return filepath.Dir(path) == path
}
