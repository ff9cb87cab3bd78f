// Package content supplies blog posts to the page shell. A Provider
// returns post summaries for the navigation panel and single rendered
// posts for the post page; adapters back it with markdown files on disk,
// SQLite, or an in-memory cache over either.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("content: post not found")

// PostSummary is one entry of the post collection.
type PostSummary struct {
	ID          string
	Slug        string
	Title       string
	Author      string
	Date        time.Time
	DisplayDate string // relative, e.g. "3 days ago"
	Excerpt     string
}

// Post is a single post with its rendered body. HTML is trusted markup.
type Post struct {
	Slug        string
	Title       string
	Date        time.Time
	DisplayDate string
	HTML        string
}

// Provider is the read-only content query contract.
type Provider interface {
	// ListPosts returns the post collection in display order.
	ListPosts(ctx context.Context) ([]PostSummary, error)
	// GetPost returns the post with the given slug, or ErrNotFound.
	GetPost(ctx context.Context, slug string) (Post, error)
}

// Document is a fully parsed post as loaded from a source, before it is
// split into the summary and body views.
type Document struct {
	ID      string
	Slug    string
	Title   string
	Author  string
	Date    time.Time
	Excerpt string
	HTML    string
}

// Summary returns the navigation view of d, with its date shown relative
// to now.
func (d Document) Summary(now time.Time) PostSummary {
	return PostSummary{
		ID:          d.ID,
		Slug:        d.Slug,
		Title:       d.Title,
		Author:      d.Author,
		Date:        d.Date,
		DisplayDate: RelativeDate(d.Date, now),
		Excerpt:     d.Excerpt,
	}
}

// Post returns the page view of d.
func (d Document) Post(now time.Time) Post {
	return Post{
		Slug:        d.Slug,
		Title:       d.Title,
		Date:        d.Date,
		DisplayDate: RelativeDate(d.Date, now),
		HTML:        d.HTML,
	}
}

// RelativeDate formats t relative to now ("2 weeks ago"). The zero time
// formats as the empty string.
func RelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

var idNamespace = uuid.MustParse("6f1c8a52-3d0e-4b7a-9c41-2e5d8f0b7a13")

// DocumentID derives a stable post id from its slug.
func DocumentID(slug string) string {
	return uuid.NewSHA1(idNamespace, []byte(slug)).String()
}
