package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/labstack/gommon/log"
)

// Policy decides what LoadAll does with a file that fails to parse.
type Policy int

const (
	// FailFast aborts the load on the first malformed file.
	FailFast Policy = iota
	// SkipInvalid logs malformed files and leaves them out of the collection.
	SkipInvalid
)

// Logger is the subset of echo.Logger the repository writes to.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// RepositoryConfig configures where posts live and how bad files are treated.
type RepositoryConfig struct {
	// Dir is the directory inside the filesystem holding the posts (default "content").
	Dir string
	// Extensions lists recognised file extensions, compared case-insensitively
	// (default ".mdx", ".md").
	Extensions []string
	Policy     Policy
	Logger     Logger
}

// Repository loads posts from a directory. It keeps no state between calls;
// wrap it in a Cache to avoid re-reading the directory on every request.
type Repository struct {
	fsys       fs.FS
	dir        string
	extensions []string
	policy     Policy
	logger     Logger
}

// NewRepository creates a Repository reading from fsys.
func NewRepository(fsys fs.FS, cfg RepositoryConfig) *Repository {
	dir := path.Clean(strings.TrimSpace(cfg.Dir))
	if cfg.Dir == "" {
		dir = "content"
	}
	exts := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".mdx", ".md"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New("content")
	}
	return &Repository{
		fsys:       fsys,
		dir:        dir,
		extensions: exts,
		policy:     cfg.Policy,
		logger:     logger,
	}
}

// LoadAll reads every post in the directory. Records are ordered by slug.
func (r *Repository) LoadAll() (*Collection, error) {
	files, err := r.files()
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		rec, err := r.load(f)
		if err != nil {
			if r.policy == SkipInvalid && isMalformed(err) {
				r.logger.Warnf("content: skipping %s: %v", f.path, err)
				continue
			}
			return nil, err
		}
		records = append(records, rec)
		paths = append(paths, f.path)
	}
	return newCollection(records, paths)
}

// GetBySlug loads the directory and returns the post with exactly this slug.
// A missing post is reported by ok == false, not by an error.
func (r *Repository) GetBySlug(slug string) (rec Record, ok bool, err error) {
	coll, err := r.LoadAll()
	if err != nil {
		return Record{}, false, err
	}
	rec, ok = coll.Get(slug)
	return rec, ok, nil
}

// Fingerprint summarises the names, sizes and modification times of the
// post files. It changes whenever a post is added, removed or edited.
func (r *Repository) Fingerprint() (string, error) {
	files, err := r.files()
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, f := range files {
		info, err := f.entry.Info()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s|%d|%d\n", f.path, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type contentFile struct {
	path  string
	slug  string
	entry fs.DirEntry
}

// files lists candidate post files in name order. Sub-directories are not
// descended into.
func (r *Repository) files() ([]contentFile, error) {
	entries, err := fs.ReadDir(r.fsys, r.dir)
	if err != nil {
		return nil, err
	}
	var files []contentFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := path.Ext(name)
		if !r.recognised(ext) {
			continue
		}
		files = append(files, contentFile{
			path:  path.Join(r.dir, name),
			slug:  strings.TrimSuffix(name, ext),
			entry: e,
		})
	}
	return files, nil
}

func (r *Repository) recognised(ext string) bool {
	ext = strings.ToLower(ext)
	for _, want := range r.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (r *Repository) load(f contentFile) (Record, error) {
	raw, err := fs.ReadFile(r.fsys, f.path)
	if err != nil {
		return Record{}, err
	}
	rec, err := Parse(raw)
	if err != nil {
		if me, ok := err.(*MalformedContentError); ok {
			me.Path = f.path
		}
		return Record{}, err
	}
	if !slug.IsValid(f.slug) {
		return Record{}, &MalformedContentError{Path: f.path, Reason: fmt.Sprintf("slug %q is not URL-safe", f.slug)}
	}
	if err := rec.Metadata.Validate(); err != nil {
		return Record{}, &MalformedContentError{Path: f.path, Reason: "invalid front matter", Err: err}
	}
	rec.Slug = f.slug
	return rec, nil
}

func isMalformed(err error) bool {
	_, ok := err.(*MalformedContentError)
	return ok
}

// Collection is an immutable set of posts indexed by slug.
type Collection struct {
	records []Record
	bySlug  map[string]int
}

// NewCollection builds a Collection, rejecting duplicate slugs.
func NewCollection(records []Record) (*Collection, error) {
	return newCollection(records, nil)
}

func newCollection(records []Record, paths []string) (*Collection, error) {
	c := &Collection{
		records: make([]Record, 0, len(records)),
		bySlug:  make(map[string]int, len(records)),
	}
	for i, rec := range records {
		if prev, dup := c.bySlug[rec.Slug]; dup {
			err := &DuplicateSlugError{Slug: rec.Slug}
			if paths != nil {
				err.Paths = []string{paths[prev], paths[i]}
			}
			return nil, err
		}
		c.bySlug[rec.Slug] = len(c.records)
		rec.Metadata = rec.Metadata.clone()
		c.records = append(c.records, rec)
	}
	sort.SliceStable(c.records, func(i, j int) bool {
		return c.records[i].Slug < c.records[j].Slug
	})
	for i, rec := range c.records {
		c.bySlug[rec.Slug] = i
	}
	return c, nil
}

// All returns a copy of the records ordered by slug.
func (c *Collection) All() []Record {
	out := make([]Record, len(c.records))
	for i, rec := range c.records {
		rec.Metadata = rec.Metadata.clone()
		out[i] = rec
	}
	return out
}

// Get returns the record with exactly this slug.
func (c *Collection) Get(slug string) (Record, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Record{}, false
	}
	rec := c.records[i]
	rec.Metadata = rec.Metadata.clone()
	return rec, true
}

// Len reports the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}
