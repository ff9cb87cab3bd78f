// Package markdown turns post sources (YAML front matter followed by a
// markdown body) into HTML and a plain-text excerpt.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v3"
)

// ExcerptLength is the default excerpt length in runes.
const ExcerptLength = 140

var (
	// ErrUnterminatedFrontMatter is returned when a source opens a front
	// matter block that is never closed.
	ErrUnterminatedFrontMatter = errors.New("markdown: unterminated front matter")

	fence = []byte("---")
)

// FrontMatter holds the metadata block at the top of a post source.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   Date   `yaml:"date"`
	Slug   string `yaml:"slug"`
	Draft  bool   `yaml:"draft"`
}

// Date accepts the date spellings commonly found in front matter.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	v := strings.TrimSpace(value.Value)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("markdown: unrecognized date %q", v)
}

// Document is a parsed post source.
type Document struct {
	Meta    FrontMatter
	HTML    string
	Excerpt string
}

// Parse splits the front matter from src, decodes it, and renders the
// body.
func Parse(src []byte) (Document, error) {
	meta, body, err := SplitFrontMatter(src)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &doc.Meta); err != nil {
			return Document{}, fmt.Errorf("markdown: front matter: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := RenderHTML(&buf, body); err != nil {
		return Document{}, err
	}
	doc.HTML = buf.String()
	doc.Excerpt = Excerpt(doc.HTML, ExcerptLength)
	return doc, nil
}

// SplitFrontMatter returns the YAML block delimited by "---" lines at the
// start of src, and the remaining body. A source without front matter is
// returned whole as the body.
func SplitFrontMatter(src []byte) (meta, body []byte, err error) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	rest, ok := cutLine(src)
	if !ok {
		return nil, src, nil
	}
	for off := 0; off <= len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		var line []byte
		if end < 0 {
			line = rest[off:]
		} else {
			line = rest[off : off+end]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t"), fence) {
			meta = rest[:off]
			if end < 0 {
				return meta, nil, nil
			}
			return meta, rest[off+end+1:], nil
		}
		if end < 0 {
			break
		}
		off += end + 1
	}
	return nil, nil, ErrUnterminatedFrontMatter
}

// cutLine reports whether src starts with a fence line and returns what
// follows it.
func cutLine(src []byte) ([]byte, bool) {
	line, rest, found := bytes.Cut(src, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimRight(line, " \t"), fence) {
		return nil, false
	}
	return rest, true
}

// RenderHTML renders a markdown body to w with blackfriday's common
// extensions.
func RenderHTML(w io.Writer, body []byte) error {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	node := md.Parse(body)
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	return render(w, node, renderer)
}

// An errWriter writes until the underlying writer fails once, then keeps
// returning that error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(data []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(data)
	w.err = err
	return n, err
}

// render replicates blackfriday.Run against a writer, since Run only
// returns a byte slice.
func render(w io.Writer, node *blackfriday.Node, renderer blackfriday.Renderer) error {
	ew := errWriter{w: w}
	renderer.RenderHeader(&ew, node)
	node.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return renderer.RenderNode(&ew, node, entering)
	})
	renderer.RenderFooter(&ew, node)
	return ew.err
}

// Markdown returns a templ.Component that renders a markdown body.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderHTML(w, []byte(content))
	})
}
