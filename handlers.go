package blogshell

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/blogshell/content"
	"github.com/eringen/blogshell/disclosure"
	"github.com/eringen/blogshell/shell"
	"github.com/eringen/blogshell/views"
)

// mountShell mounts the page shell for the page being rendered. Clients
// over the mount limit get an unregistered shell: the page renders with
// the drawer closed and inert affordances.
func (a *App) mountShell(c echo.Context) (*shell.PageShell, error) {
	ctx := c.Request().Context()
	visitor, err := ensureVisitor(c)
	if err != nil {
		return nil, err
	}
	if !a.mountLimiter.Allow(c.RealIP()) {
		c.Logger().Warnf("mount limit reached for %s", c.RealIP())
		return shell.Mount(ctx, "", a.Provider)
	}
	return a.Shells.Mount(ctx, visitor, a.Provider)
}

func (a *App) handleHome(c echo.Context) error {
	s, err := a.mountShell(c)
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.viewConfig(), s, CsrfToken(c)))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Provider.GetPost(c.Request().Context(), slug)
	if errors.Is(err, content.ErrNotFound) {
		return a.renderNotFound(c, slug)
	}
	if err != nil {
		return err
	}
	s, err := a.mountShell(c)
	if err != nil {
		return err
	}
	return Render(c, views.PostPage(a.viewConfig(), s, post, CsrfToken(c)))
}

// renderNotFound renders the 404 page, suggesting the post whose slug is
// closest to the one requested.
func (a *App) renderNotFound(c echo.Context, slug string) error {
	var suggestion *shell.Entry
	if posts, err := a.Provider.ListPosts(c.Request().Context()); err == nil {
		if p, ok := content.Closest(slug, posts); ok {
			e := shell.Entries([]content.PostSummary{p})[0]
			suggestion = &e
		}
	}
	return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig(), suggestion))
}

// handleToggle applies one affordance activation to the shell it came
// from. When the drawer changes, the shell's subscriber re-renders the
// affordance and the drawer as out-of-band fragments; an ignored key
// yields 204.
//
// A shell that expired or was lost to a restart is remounted for the
// visitor with the drawer state the page last showed (form value open),
// and the fragments carry the new shell's endpoints.
func (a *App) handleToggle(c echo.Context) error {
	act, err := disclosure.ParseActivation(c.FormValue("input"), c.FormValue("key"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	cfg := a.viewConfig()
	var buf bytes.Buffer
	apply := func(s *shell.PageShell) error {
		var renderErr error
		unsubscribe := s.Subscribe(func(disclosure.State) {
			buf.Reset()
			renderErr = views.ToggleFragments(cfg, s).Render(ctx, &buf)
		})
		defer unsubscribe()
		s.Activate(act)
		return renderErr
	}

	err = a.Shells.With(c.Param("id"), currentVisitor(c), apply)
	if errors.Is(err, shell.ErrUnknownShell) {
		err = a.remount(c, apply, &buf)
	}
	if err != nil {
		return shellError(err)
	}
	if buf.Len() == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// remount replaces a page's lost shell. The fragments are always
// rendered so the page stops addressing the old id, even when the
// activation itself was ignored.
func (a *App) remount(c echo.Context, apply func(*shell.PageShell) error, buf *bytes.Buffer) error {
	s, err := a.mountShell(c)
	if err != nil {
		return err
	}
	c.Logger().Debugf("remounted lost shell %s as %q", c.Param("id"), s.ID)
	if c.FormValue("open") == "true" {
		s.Toggle()
	}
	if s.Addressable() {
		c.Response().Header().Set(headerShellUnmount, views.UnmountURL(s.ID))
	}
	if err := apply(s); err != nil {
		return err
	}
	if buf.Len() > 0 {
		return nil
	}
	return views.ToggleFragments(a.viewConfig(), s).Render(c.Request().Context(), buf)
}

// handleUnmount drops the shell of a page that was closed. Unknown ids
// are already gone.
func (a *App) handleUnmount(c echo.Context) error {
	err := a.Shells.Unmount(c.Param("id"), currentVisitor(c))
	if err != nil && !errors.Is(err, shell.ErrUnknownShell) {
		return shellError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// headerShellUnmount tells the page the unmount endpoint of the shell that
// replaced its lost one.
const headerShellUnmount = "X-Shell-Unmount"

func shellError(err error) error {
	if errors.Is(err, shell.ErrNotOwner) {
		return echo.NewHTTPError(http.StatusForbidden)
	}
	return err
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Provider.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Provider.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && !isShellPath(c.Request().URL.Path) {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig(), nil))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
