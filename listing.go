package blog

import (
	"sort"
	"time"

	"github.com/jyodsh/jyothish-in/content"
)

// Listing returns the posts newest first, ties broken by slug ascending.
// The input slice is not modified. Posts whose date does not parse sort last.
func Listing(records []content.Record) []content.Record {
	type keyed struct {
		rec  content.Record
		date time.Time
	}
	items := make([]keyed, len(records))
	for i, rec := range records {
		d, _ := rec.Metadata.Published()
		items[i] = keyed{rec: rec, date: d}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.date.Equal(b.date) {
			if a.date.IsZero() || b.date.IsZero() {
				return b.date.IsZero()
			}
			return a.date.After(b.date)
		}
		return a.rec.Slug < b.rec.Slug
	})
	out := make([]content.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}

// Recent returns the n newest posts. A negative n returns all of them.
func Recent(records []content.Record, n int) []content.Record {
	list := Listing(records)
	if n >= 0 && len(list) > n {
		list = list[:n]
	}
	return list
}
