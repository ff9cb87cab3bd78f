// Package shell composes one page: a disclosure controller for the
// overlay drawer and the navigation entries shown in both the permanent
// sidebar and the drawer.
package shell

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eringen/blogshell/content"
	"github.com/eringen/blogshell/disclosure"
)

// Entry is one navigable item of the navigation panel.
type Entry struct {
	ID          string
	Href        string
	Label       string
	Author      string
	DisplayDate string
	Excerpt     string
}

// Entries maps the post collection to navigation entries, one per post,
// in the order given.
func Entries(posts []content.PostSummary) []Entry {
	entries := make([]Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, Entry{
			ID:          p.ID,
			Href:        PostHref(p.Slug),
			Label:       p.Title,
			Author:      p.Author,
			DisplayDate: p.DisplayDate,
			Excerpt:     p.Excerpt,
		})
	}
	return entries
}

// PostHref is the link target for a post slug.
func PostHref(slug string) string {
	return "/blog/" + url.PathEscape(slug) + "/"
}

// PageShell is one mounted page. It owns exactly one disclosure
// controller; the entries are a snapshot taken at mount.
type PageShell struct {
	ID      string
	Entries []Entry

	nav *disclosure.Controller
}

// Mount loads the post collection from provider and returns a shell with
// its drawer closed. An empty id yields a shell the browser cannot
// address; its affordances render inert.
func Mount(ctx context.Context, id string, provider content.Provider) (*PageShell, error) {
	posts, err := provider.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("shell: load posts: %w", err)
	}
	return &PageShell{
		ID:      id,
		Entries: Entries(posts),
		nav:     disclosure.New(),
	}, nil
}

// IsOpen reports whether the overlay drawer is open.
func (s *PageShell) IsOpen() bool {
	return s.nav.IsOpen()
}

// Toggle flips the overlay drawer.
func (s *PageShell) Toggle() {
	s.nav.Toggle()
}

// Activate forwards an affordance activation to the controller.
func (s *PageShell) Activate(a disclosure.Activation) bool {
	return s.nav.Activate(a)
}

// Subscribe registers fn for drawer state changes.
func (s *PageShell) Subscribe(fn func(disclosure.State)) func() {
	return s.nav.Subscribe(fn)
}

// Drawer returns the overlay drawer's presentation. The permanent sidebar
// has no presentation: it is always shown.
func (s *PageShell) Drawer() disclosure.Presentation {
	return disclosure.PresentationFor(s.nav.IsOpen())
}

// Addressable reports whether the shell is registered and can receive
// toggle requests.
func (s *PageShell) Addressable() bool {
	return s.ID != ""
}
