// Package rollover decides when a new learning day has begun. Daily counters
// on the server reset at the day boundary; the engine only has to notice the
// transition and refresh its cached view.
package rollover

import (
	"fmt"
	"time"

	"learning-engine/internal/models"
)

// Timestamp layouts accepted from the remote service, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parse(ts string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", models.ErrInvalidTimestamp, ts)
}

// IsNewDay reports whether next falls on a different UTC calendar day than
// prev. An empty prev means no prior review is recorded and never starts a
// new day. Malformed timestamps fail with models.ErrInvalidTimestamp.
func IsNewDay(prev, next string) (bool, error) {
	if prev == "" {
		return false, nil
	}
	p, err := parse(prev)
	if err != nil {
		return false, err
	}
	n, err := parse(next)
	if err != nil {
		return false, err
	}
	py, pm, pd := p.UTC().Date()
	ny, nm, nd := n.UTC().Date()
	return py != ny || pm != nm || pd != nd, nil
}

// Date formats t as a UTC calendar date, the key used by the contribution
// calendar cache.
func Date(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
