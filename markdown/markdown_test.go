package markdown

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	src := "---\ntitle: Hello World\nauthor: Aatish\ndate: 2021-03-04\nslug: hello\n---\n# Heading\n\nBody *text*.\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Meta.Title != "Hello World" {
		t.Errorf("Title = %q", doc.Meta.Title)
	}
	if doc.Meta.Author != "Aatish" {
		t.Errorf("Author = %q", doc.Meta.Author)
	}
	if doc.Meta.Slug != "hello" {
		t.Errorf("Slug = %q", doc.Meta.Slug)
	}
	want := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	if !doc.Meta.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", doc.Meta.Date.Time, want)
	}
	if !strings.Contains(doc.HTML, "<h1") || !strings.Contains(doc.HTML, "<em>text</em>") {
		t.Errorf("HTML = %q", doc.HTML)
	}
	if doc.Excerpt != "Heading Body text." {
		t.Errorf("Excerpt = %q", doc.Excerpt)
	}
}

func TestParseQuotedAndTimestampDates(t *testing.T) {
	tests := []struct {
		src  string
		want time.Time
	}{
		{"---\ndate: \"2020-01-02\"\n---\n", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"---\ndate: 2020-01-02T10:30:00Z\n---\n", time.Date(2020, 1, 2, 10, 30, 0, 0, time.UTC)},
		{"---\ndate: 2020-01-02 10:30\n---\n", time.Date(2020, 1, 2, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		doc, err := Parse([]byte(tt.src))
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.src, err)
		}
		if !doc.Meta.Date.Equal(tt.want) {
			t.Errorf("Parse(%q) date = %v, want %v", tt.src, doc.Meta.Date.Time, tt.want)
		}
	}
}

func TestParseBadDate(t *testing.T) {
	if _, err := Parse([]byte("---\ndate: yesterday\n---\nbody")); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		meta     string
		body     string
		hasError bool
	}{
		{"none", "just body\n", "", "just body\n", false},
		{"crlf", "---\r\ntitle: x\r\n---\r\nbody\r\n", "title: x\n", "body\n", false},
		{"empty", "---\n---\nbody", "", "body", false},
		{"at eof", "---\ntitle: x\n---", "title: x\n", "", false},
		{"unterminated", "---\ntitle: x\nbody", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := SplitFrontMatter([]byte(tt.src))
			if tt.hasError {
				if !errors.Is(err, ErrUnterminatedFrontMatter) {
					t.Fatalf("err = %v, want ErrUnterminatedFrontMatter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitFrontMatter: %v", err)
			}
			if string(meta) != tt.meta {
				t.Errorf("meta = %q, want %q", meta, tt.meta)
			}
			if string(body) != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestExcerptPrunesOnWordBoundary(t *testing.T) {
	got := Excerpt("<p>one two three four</p>", 12)
	if got != "one two…" {
		t.Errorf("Excerpt = %q, want %q", got, "one two…")
	}
}

func TestExcerptShortTextUnchanged(t *testing.T) {
	got := Excerpt("<p>Hello <strong>bold</strong> world!</p><p>Next</p>", 140)
	if got != "Hello bold world! Next" {
		t.Errorf("Excerpt = %q", got)
	}
}

func TestExcerptUnescapesEntities(t *testing.T) {
	got := Excerpt("<p>Fish &amp; chips</p>", 140)
	if got != "Fish & chips" {
		t.Errorf("Excerpt = %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("**bold**").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<strong>bold</strong>") {
		t.Errorf("Render = %q", buf.String())
	}
}
