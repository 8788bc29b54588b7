package blog

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jyodsh/jyothish-in/content"
)

// homeRecent is how many posts the home page lists.
const homeRecent = 5

func (a *App) handleHome(c echo.Context) error {
	records, err := a.Cache.Records()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.Config, Recent(records, homeRecent), SiteMeta(a.Config, "")))
}

func (a *App) handleBlog(c echo.Context) error {
	records, err := a.Cache.Records()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Blog(a.Config, Listing(records), SiteMeta(a.Config, "Blog", "blog")))
}

func (a *App) handlePost(c echo.Context) error {
	rec, err := a.Cache.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		}
		return err
	}
	return Render(c, a.Views.Post(a.Config, rec, RecordMeta(a.Config, rec)))
}

func (a *App) handleSitemap(c echo.Context) error {
	records, err := a.Cache.Records()
	if err != nil {
		return err
	}
	body, err := BuildSitemap(a.Config, records, a.now())
	if err != nil {
		return err
	}
	return writeXML(c, echo.MIMEApplicationXMLCharsetUTF8, body)
}

func (a *App) handleFeed(c echo.Context) error {
	records, err := a.Cache.Records()
	if err != nil {
		return err
	}
	body, err := BuildRSS(a.Config, records, a.Config.FeedLimit)
	if err != nil {
		return err
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", body)
}

func (a *App) handleAtom(c echo.Context) error {
	records, err := a.Cache.Records()
	if err != nil {
		return err
	}
	body, err := BuildAtom(a.Config, records, a.Config.FeedLimit, a.now())
	if err != nil {
		return err
	}
	return writeXML(c, "application/atom+xml; charset=utf-8", body)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, BuildRobots(a.Config))
}

func (a *App) handleOG(c echo.Context) error {
	if !a.ogLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}
	title := strings.TrimSpace(c.QueryParam("title"))
	if title == "" {
		title = a.Config.Name
	}
	var buf bytes.Buffer
	if err := a.OG.Render(&buf, title); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "favicon.svg"))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
