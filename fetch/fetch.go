// Package fetch contains the external metadata adapters, one per content
// kind. Each adapter searches its provider, picks the best candidate by
// fuzzy title similarity, retrieves the full detail payload and maps it
// onto a validated media.Record.
package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/altbier/mediatrack/media"
)

// Fetcher fetches and normalizes one piece of content by title. The
// returned error is one of the media error taxonomy members for expected
// failures (not found, upstream unavailable, validation).
type Fetcher interface {
	Fetch(ctx context.Context, title string, year *int) (*media.Record, error)
}

// parseDate parses a provider date string, tolerating full timestamps by
// cutting at the time separator. Unparseable values yield nil.
func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

// score normalizes an optional provider score to the 0-10 scale.
func score(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return media.Score(*v)
}

// popularity rounds an optional provider popularity to an integer.
func popularity(v *float64) *int {
	if v == nil {
		return nil
	}
	return media.Popularity(*v)
}
