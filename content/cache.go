package content

import (
	"context"
	"sync"
	"time"
)

// Cache is an in-memory Provider over another Provider. The post
// collection is reloaded once its TTL passes; post bodies are cached on
// first read and dropped with the collection.
type Cache struct {
	mu      sync.RWMutex
	posts   []PostSummary
	bodies  map[string]Post
	fetched time.Time
	ttl     time.Duration
	src     Provider
	now     func() time.Time
}

// NewCache creates a Cache backed by src.
func NewCache(src Provider, ttl time.Duration) *Cache {
	return &Cache{src: src, ttl: ttl, now: time.Now}
}

func (c *Cache) valid() bool {
	return c.posts != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.bodies = nil
	c.mu.Unlock()
}

func (c *Cache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.src.ListPosts(ctx)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []PostSummary{}
	}
	c.posts = posts
	c.bodies = make(map[string]Post)
	c.fetched = c.now()
	return nil
}

// ensureLoaded returns the cached collection after ensuring it is fresh.
// It tries a read lock first and only takes the write lock to reload.
func (c *Cache) ensureLoaded(ctx context.Context) ([]PostSummary, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// ListPosts implements Provider.
func (c *Cache) ListPosts(ctx context.Context) ([]PostSummary, error) {
	return c.ensureLoaded(ctx)
}

// GetPost implements Provider. Slugs missing from the cached collection
// are reported as ErrNotFound without consulting the source.
func (c *Cache) GetPost(ctx context.Context, slug string) (Post, error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return Post{}, err
	}
	found := false
	for _, p := range posts {
		if p.Slug == slug {
			found = true
			break
		}
	}
	if !found {
		return Post{}, ErrNotFound
	}

	c.mu.RLock()
	post, ok := c.bodies[slug]
	c.mu.RUnlock()
	if ok {
		return post, nil
	}

	post, err = c.src.GetPost(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	c.mu.Lock()
	if c.bodies != nil {
		c.bodies[slug] = post
	}
	c.mu.Unlock()
	return post, nil
}
