package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/blogshell/content"
	"github.com/eringen/blogshell/markdown"
	"github.com/eringen/blogshell/shell"
)

// ScriptURL is where the client script driving the toggle affordances is
// served.
const ScriptURL = "/public/blogshell.js"

// page renders the document around body. A nil shell renders the bare
// layout used by error pages.
func page(cfg SiteConfig, meta PageMeta, csrfToken string, s *shell.PageShell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		hw.raw(`<title>`)
		hw.text(meta.Title)
		hw.raw(`</title>`)
		if meta.Description != "" {
			hw.raw(`<meta name="description"`)
			hw.attr("content", meta.Description)
			hw.raw(`/>`)
		}
		if meta.URL != "" {
			hw.raw(`<link rel="canonical"`)
			hw.href(meta.URL)
			hw.raw(`/><meta property="og:url"`)
			hw.attr("content", meta.URL)
			hw.raw(`/>`)
		}
		hw.raw(`<meta property="og:title"`)
		hw.attr("content", meta.Title)
		hw.raw(`/><meta property="og:type"`)
		hw.attr("content", meta.OGType)
		hw.raw(`/>`)
		if csrfToken != "" {
			hw.raw(`<meta name="csrf-token"`)
			hw.attr("content", csrfToken)
			hw.raw(`/>`)
		}
		hw.raw(`<link rel="stylesheet" href="/public/styles.css"/>`)
		hw.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`)
		if s != nil {
			hw.raw(`<script`)
			hw.attr("src", ScriptURL)
			hw.raw(` defer></script>`)
		}
		if meta.JSONLD != "" {
			hw.raw(`<script type="application/ld+json">`, meta.JSONLD, `</script>`)
		}
		hw.raw(`</head><body`)
		if s != nil && s.Addressable() {
			hw.attr("data-shell-unmount", UnmountURL(s.ID))
		}
		hw.raw(`><div class="`, classLayoutOuter, `"><div class="`, classLayoutInner, `">`)
		if s != nil {
			hw.component(Header(cfg, s))
			hw.component(Drawer(cfg, s))
			hw.component(Sidebar(cfg, s))
		}
		hw.raw(`<main class="`, classContent, `">`)
		hw.component(body)
		hw.raw(`</main></div></div></body></html>`)
		return hw.err
	})
}

// Home renders the landing page: the shell with the site description in
// the content slot.
func Home(cfg SiteConfig, s *shell.PageShell, csrfToken string) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(cfg),
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<section class="`, classBlog, `"><h1>`)
		hw.text(cfg.Name)
		hw.raw(`</h1>`)
		if cfg.Description != "" {
			hw.raw(`<p>`)
			hw.text(cfg.Description)
			hw.raw(`</p>`)
		}
		if cfg.About != "" {
			hw.component(markdown.Markdown(cfg.About))
		}
		hw.raw(`</section>`)
		return hw.err
	})
	return page(cfg, meta, csrfToken, s, body)
}

// PostContent embeds the post's pre-rendered HTML verbatim. The markup is
// trusted as supplied by the content provider.
func PostContent(post content.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<div class="`, classBlog, `">`)
		hw.component(templ.Raw(post.HTML))
		hw.raw(`</div>`)
		return hw.err
	})
}

// PostPage renders one post inside the page shell.
func PostPage(cfg SiteConfig, s *shell.PageShell, post content.Post, csrfToken string) templ.Component {
	meta := PageMeta{
		Title:  post.Title + " | " + cfg.Name,
		URL:    buildURL(cfg.URL, "blog", post.Slug),
		OGType: "article",
		JSONLD: BlogPostingJsonLD(cfg, post),
	}
	return page(cfg, meta, csrfToken, s, PostContent(post))
}

// NotFound renders the 404 page, suggesting suggestion when it is set.
func NotFound(cfg SiteConfig, suggestion *shell.Entry) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<section class="`, classError, `"><h1>Page not found</h1>`)
		if suggestion != nil {
			hw.raw(`<p>Did you mean <a`)
			hw.href(suggestion.Href)
			hw.raw(`>`)
			hw.text(suggestion.Label)
			hw.raw(`</a>?</p>`)
		}
		hw.raw(`<p><a href="/">Back home</a></p></section>`)
		return hw.err
	})
	return page(cfg, PageMeta{Title: "Not found | " + cfg.Name, OGType: "website"}, "", nil, body)
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<section class="`, classError, `"><h1>Something went wrong</h1><p><a href="/">Back home</a></p></section>`)
		return hw.err
	})
	return page(cfg, PageMeta{Title: "Error | " + cfg.Name, OGType: "website"}, "", nil, body)
}
