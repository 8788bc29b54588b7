package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// Export writes every public page and generated file under outDir, laid out
// so a static file server reproduces the site's routes. outDir is removed
// first. Preview cards are not exported; pages still reference /og, so
// deployments that need them serve that route separately.
func (a *App) Export(outDir string) (int, error) {
	if outDir == "" || filepath.Clean(outDir) == "." || filepath.Clean(outDir) == "/" {
		return 0, fmt.Errorf("blog: refusing to export into %q", outDir)
	}
	if err := a.Init(); err != nil {
		return 0, err
	}
	coll, err := a.Repo.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("blog: load content: %w", err)
	}
	records := coll.All()

	if err := os.RemoveAll(outDir); err != nil {
		return 0, fmt.Errorf("blog: clean %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("blog: create %s: %w", outDir, err)
	}

	w := exportWriter{root: outDir}
	w.component("index.html", a.Views.Home(a.Config, Recent(records, homeRecent), SiteMeta(a.Config, "")))
	w.component("blog/index.html", a.Views.Blog(a.Config, Listing(records), SiteMeta(a.Config, "Blog", "blog")))
	for _, rec := range records {
		w.component(filepath.Join("blog", rec.Slug, "index.html"), a.Views.Post(a.Config, rec, RecordMeta(a.Config, rec)))
	}
	w.component("404.html", a.Views.NotFound(a.Config))

	w.generated("feed.xml", func() ([]byte, error) { return BuildRSS(a.Config, records, a.Config.FeedLimit) })
	w.generated("atom.xml", func() ([]byte, error) { return BuildAtom(a.Config, records, a.Config.FeedLimit, a.now()) })
	w.generated("sitemap.xml", func() ([]byte, error) { return BuildSitemap(a.Config, records, a.now()) })
	w.generated("robots.txt", func() ([]byte, error) { return []byte(BuildRobots(a.Config)), nil })
	if w.err != nil {
		return 0, w.err
	}

	if err := a.exportAssets(outDir); err != nil {
		return 0, err
	}
	a.Echo.Logger.Infof("exported %d posts to %s", len(records), outDir)
	return len(records), nil
}

func (a *App) exportAssets(outDir string) error {
	public := filepath.Join(outDir, "public")
	if _, err := os.Stat(a.Config.StaticDir); err == nil {
		if err := os.CopyFS(public, os.DirFS(a.Config.StaticDir)); err != nil {
			return fmt.Errorf("blog: copy %s: %w", a.Config.StaticDir, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	css, err := EmbeddedAssets.ReadFile("embedded/style.css")
	if err != nil {
		return err
	}
	w := exportWriter{root: public}
	w.write("style.css", css)
	return w.err
}

// exportWriter keeps the first error so a run of writes can be checked once.
type exportWriter struct {
	root string
	err  error
}

func (w *exportWriter) component(name string, cmp templ.Component) {
	if w.err != nil {
		return
	}
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		w.err = fmt.Errorf("blog: render %s: %w", name, err)
		return
	}
	w.write(name, buf.Bytes())
}

func (w *exportWriter) generated(name string, build func() ([]byte, error)) {
	if w.err != nil {
		return
	}
	body, err := build()
	if err != nil {
		w.err = fmt.Errorf("blog: build %s: %w", name, err)
		return
	}
	w.write(name, body)
}

func (w *exportWriter) write(name string, body []byte) {
	if w.err != nil {
		return
	}
	path := filepath.Join(w.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.err = err
		return
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		w.err = err
	}
}

