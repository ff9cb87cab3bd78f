package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/blogshell/markdown"
)

// Dir is a Provider reading markdown posts from a directory tree. Every
// call re-reads the tree; wrap it in a Cache for serving.
type Dir struct {
	root   string
	author string
	now    func() time.Time
}

// DirOption configures a Dir.
type DirOption func(*Dir)

// WithDefaultAuthor sets the author used for posts whose front matter
// names none.
func WithDefaultAuthor(name string) DirOption {
	return func(d *Dir) {
		d.author = name
	}
}

// WithClock sets the clock used for relative dates.
func WithClock(now func() time.Time) DirOption {
	return func(d *Dir) {
		d.now = now
	}
}

// NewDir returns a Dir rooted at root.
func NewDir(root string, opts ...DirOption) *Dir {
	d := &Dir{root: root, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ListPosts implements Provider.
func (d *Dir) ListPosts(ctx context.Context) ([]PostSummary, error) {
	docs, err := d.Documents(ctx)
	if err != nil {
		return nil, err
	}
	now := d.now()
	posts := make([]PostSummary, len(docs))
	for i, doc := range docs {
		posts[i] = doc.Summary(now)
	}
	return posts, nil
}

// GetPost implements Provider.
func (d *Dir) GetPost(ctx context.Context, slug string) (Post, error) {
	docs, err := d.Documents(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, doc := range docs {
		if doc.Slug == slug {
			return doc.Post(d.now()), nil
		}
	}
	return Post{}, ErrNotFound
}

// Documents loads and parses every published markdown file under the
// root, ordered by date descending and then by slug.
func (d *Dir) Documents(ctx context.Context) ([]Document, error) {
	var paths []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != d.root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: walk %s: %w", d.root, err)
	}

	docs := make([]*Document, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := d.load(path)
			if err != nil {
				return fmt.Errorf("content: %s: %w", path, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(docs))
	seen := make(map[string]string, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		if prev, ok := seen[doc.Slug]; ok {
			return nil, fmt.Errorf("content: duplicate slug %q in %s and %s", doc.Slug, prev, paths[i])
		}
		seen[doc.Slug] = paths[i]
		out = append(out, *doc)
	}
	SortDocuments(out)
	return out, nil
}

// load parses one file. Drafts yield a nil document.
func (d *Dir) load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	parsed, err := markdown.Parse(src)
	if err != nil {
		return nil, err
	}
	if parsed.Meta.Draft {
		return nil, nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(base, "index") {
		base = filepath.Base(filepath.Dir(path))
	}
	s := parsed.Meta.Slug
	if s == "" {
		s = slug.Make(base)
	}
	title := parsed.Meta.Title
	if title == "" {
		title = base
	}
	author := parsed.Meta.Author
	if author == "" {
		author = d.author
	}
	date := parsed.Meta.Date.Time
	if date.IsZero() {
		date = info.ModTime().UTC()
	}

	return &Document{
		ID:      DocumentID(s),
		Slug:    s,
		Title:   title,
		Author:  author,
		Date:    date,
		Excerpt: parsed.Excerpt,
		HTML:    parsed.HTML,
	}, nil
}

// SortDocuments orders docs newest first, breaking ties by slug.
func SortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].Date.Equal(docs[j].Date) {
			return docs[i].Date.After(docs[j].Date)
		}
		return docs[i].Slug < docs[j].Slug
	})
}
