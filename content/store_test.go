package content

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestNewStoreReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.Close()
	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s.Close()
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	doc := Document{
		Slug:    "test-post",
		Title:   "Test Post",
		Author:  "Tester",
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Excerpt: "A test post summary",
		HTML:    "<p>This is test content.</p>",
	}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	got, err := s.GetPost(ctx, "test-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Slug != doc.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, doc.Slug)
	}
	if got.Title != doc.Title {
		t.Errorf("Title = %q, want %q", got.Title, doc.Title)
	}
	if !got.Date.Equal(doc.Date) {
		t.Errorf("Date = %v, want %v", got.Date, doc.Date)
	}
	if got.HTML != doc.HTML {
		t.Errorf("HTML = %q, want %q", got.HTML, doc.HTML)
	}
	if got.DisplayDate != "2 weeks ago" {
		t.Errorf("DisplayDate = %q, want %q", got.DisplayDate, "2 weeks ago")
	}
}

func TestSaveDocumentUpdate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	doc := Document{Slug: "update-test", Title: "Original Title", Date: time.Now(), HTML: "<p>x</p>"}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	doc.Title = "Updated Title"
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument update failed: %v", err)
	}

	got, err := s.GetPost(ctx, "update-test")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
}

func TestSaveDocumentRequiresSlug(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SaveDocument(context.Background(), Document{Title: "x"}); err == nil {
		t.Fatal("expected error for empty slug")
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetPost(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPostsOrderAndUnpublished(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	docs := []Document{
		{Slug: "post-1", Title: "Post 1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), HTML: "c1"},
		{Slug: "post-2", Title: "Post 2", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), HTML: "c2"},
		{Slug: "post-3", Title: "Post 3", Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), HTML: "c3"},
	}
	for _, d := range docs {
		if err := s.SaveDocument(ctx, d); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}
	}
	if err := s.Unpublish(ctx, "post-2"); err != nil {
		t.Fatalf("Unpublish failed: %v", err)
	}

	got, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPosts count = %d, want 2 (excluding unpublished)", len(got))
	}
	if got[0].Slug != "post-3" || got[1].Slug != "post-1" {
		t.Errorf("order = %s, %s; want post-3, post-1", got[0].Slug, got[1].Slug)
	}
	if got[0].ID != DocumentID("post-3") {
		t.Errorf("ID = %q, want derived id", got[0].ID)
	}
	if _, err := s.GetPost(ctx, "post-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unpublished post should be hidden, got %v", err)
	}
}

func TestListPostsEmpty(t *testing.T) {
	s := setupTestStore(t)
	got, err := s.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListPosts count = %d, want 0", len(got))
	}
}

func TestUnpublishMissing(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Unpublish(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
