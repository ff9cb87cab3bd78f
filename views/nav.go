package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/blogshell/shell"
)

// NavigationPanel renders the post list under the site name, which links
// home. It is rendered twice per page: in the sidebar and in the drawer.
func NavigationPanel(cfg SiteConfig, entries []shell.Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<div class="`, classNavPanel, `">`)
		hw.raw(`<h1 class="`, classNavTitle, `"><a href="/">`)
		hw.text(cfg.Name)
		hw.raw(`</a></h1>`)
		hw.raw(`<div class="`, classNavList, `">`)
		for _, e := range entries {
			hw.raw(`<article class="`, classNavEntry, `"`)
			hw.attr("data-id", e.ID)
			hw.raw(`><a`)
			hw.href(e.Href)
			hw.raw(`><h2>`)
			hw.text(e.Label)
			hw.raw(`</h2></a>`)
			if line := byline(e.Author, e.DisplayDate); line != "" {
				hw.raw(`<small>`)
				hw.text(line)
				hw.raw(`</small>`)
			}
			if e.Excerpt != "" {
				hw.raw(`<p>`)
				hw.text(e.Excerpt)
				hw.raw(`</p>`)
			}
			hw.raw(`</article>`)
		}
		hw.raw(`</div></div>`)
		return hw.err
	})
}

// toggleAttrs writes the attributes shared by the menu and close
// affordances. Both post the same activation to the same endpoint; an
// unregistered shell gets no endpoint and stays inert.
func toggleAttrs(hw *htmlWriter, s *shell.PageShell, label string) {
	hw.attr("role", "button")
	hw.attr("tabindex", "0")
	hw.attr("aria-label", label)
	hw.attr("aria-controls", "drawer")
	if s.IsOpen() {
		hw.attr("aria-expanded", "true")
	} else {
		hw.attr("aria-expanded", "false")
	}
	if !s.Addressable() {
		return
	}
	hw.attr("data-disclosure-toggle", ToggleURL(s.ID))
}

// ToggleURL is the endpoint the affordances of shell id post to.
func ToggleURL(id string) string {
	return "/shell/" + id + "/toggle/"
}

// UnmountURL is the endpoint a page calls when it is hidden for good.
func UnmountURL(id string) string {
	return "/shell/" + id + "/"
}

func menuAffordance(hw *htmlWriter, s *shell.PageShell, oob bool) {
	hw.raw(`<div id="menu" class="`, classMenu, `"`)
	if oob {
		hw.attr(attrSwapOOB, "true")
	}
	toggleAttrs(hw, s, "Open navigation")
	hw.raw(`>&#9776;</div>`)
}

func drawer(hw *htmlWriter, cfg SiteConfig, s *shell.PageShell, oob bool) {
	p := s.Drawer()
	hw.raw(`<aside id="drawer" class="`, classDrawer, `"`)
	if oob {
		hw.attr(attrSwapOOB, "true")
	}
	hw.attr("style", p.Style())
	if p.Hidden() {
		hw.attr("aria-hidden", "true")
	} else {
		hw.attr("aria-hidden", "false")
	}
	hw.raw(`><div id="drawer-close" class="`, classClose, `"`)
	toggleAttrs(hw, s, "Close navigation")
	hw.raw(`>&#10005;</div>`)
	hw.component(NavigationPanel(cfg, s.Entries))
	hw.raw(`</aside>`)
}

// Header renders the top bar: the menu affordance and the site name with
// the avatar, linking home.
func Header(cfg SiteConfig, s *shell.PageShell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<div class="`, classHeader, `">`)
		menuAffordance(hw, s, false)
		hw.raw(`<div class="`, classHeaderContent, `"><a href="/">`)
		if cfg.AvatarURL != "" {
			hw.raw(`<img class="`, classAvatar, `"`)
			hw.attr("src", cfg.AvatarURL)
			hw.attr("alt", cfg.Author)
			hw.raw(` width="96" height="96"/>`)
		}
		hw.raw(`<h2>`)
		hw.text(cfg.Name)
		hw.raw(`</h2></a></div></div>`)
		return hw.err
	})
}

// Drawer renders the overlay navigation drawer in its current
// presentation.
func Drawer(cfg SiteConfig, s *shell.PageShell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		drawer(hw, cfg, s, false)
		return hw.err
	})
}

// Sidebar renders the permanent navigation sidebar. It does not depend on
// the drawer state.
func Sidebar(cfg SiteConfig, s *shell.PageShell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		hw.raw(`<nav class="`, classSidebar, `">`)
		hw.component(NavigationPanel(cfg, s.Entries))
		hw.raw(`</nav>`)
		return hw.err
	})
}

// attrSwapOOB marks a fragment that replaces the page element with the
// same id.
const attrSwapOOB = "data-swap-oob"

// ToggleFragments renders the pieces of the page that depend on the
// drawer state, marked for out-of-band swapping.
func ToggleFragments(cfg SiteConfig, s *shell.PageShell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		menuAffordance(hw, s, true)
		drawer(hw, cfg, s, true)
		return hw.err
	})
}
