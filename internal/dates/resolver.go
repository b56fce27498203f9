// Package dates resolves calendar dates against snapshot dictionaries whose
// keys were written by different scraper runs in inconsistent formats and
// timezones. Resolution is tolerant of format drift but deterministic: the
// same dictionary and the same instant always resolve to the same entries.
package dates

import (
	"sort"
	"strings"
	"time"

	"ratepulse/pkg/contracts/domain"
)

// ISODate is the canonical key format for snapshot dates
const ISODate = "2006-01-02"

// keyLayouts are the formats snapshot keys have been observed in. Tried in
// order during the normalization scan.
var keyLayouts = []string{
	ISODate,
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// Resolver resolves "today" against snapshot dictionaries. The instant
// source is injected so resolution stays a pure function of its inputs.
type Resolver struct {
	now      func() time.Time
	business *time.Location
}

// NewResolver creates a resolver for the given business timezone. The
// business timezone is the fixed calendar reference for all date-bucketed
// comparisons, independent of server or client local time.
func NewResolver(businessTZ string, now func() time.Time) (*Resolver, error) {
	loc, err := time.LoadLocation(businessTZ)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now, business: loc}, nil
}

// CanonicalToday returns today's date in the business timezone
func (r *Resolver) CanonicalToday() string {
	return r.now().In(r.business).Format(ISODate)
}

// CandidateDates returns the candidate keys for "now", deduplicated and in
// priority order: UTC calendar date, server-local date, business-timezone
// date.
func (r *Resolver) CandidateDates() []string {
	n := r.now()
	candidates := []string{
		n.UTC().Format(ISODate),
		n.Local().Format(ISODate),
		n.In(r.business).Format(ISODate),
	}
	return dedupe(candidates)
}

// Resolve finds the dictionary entries matching one of the candidate dates
// and returns the candidate that matched, so callers can report the day the
// data actually came from.
//
// Two passes: exact key membership first, in candidate order; then a scan
// over all keys, trimming and re-parsing each against the known layouts and
// comparing normalized ISO forms. The first structural match wins. ok is
// false when no candidate matches either way.
func Resolve(dict domain.SnapshotDictionary, candidates []string) ([]domain.RoomEntry, string, bool) {
	if len(dict) == 0 {
		return nil, "", false
	}

	for _, candidate := range candidates {
		if entries, exists := dict[candidate]; exists {
			return entries, candidate, true
		}
	}

	// Keys are scanned in sorted order so ties between structurally equal
	// keys resolve the same way on every call.
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, candidate := range candidates {
		for _, key := range keys {
			normalized, ok := Normalize(key)
			if !ok {
				continue
			}
			if normalized == candidate {
				return dict[key], candidate, true
			}
		}
	}

	return nil, "", false
}

// Latest returns the entries under the lexicographically greatest key. This
// is the fallback when no candidate date resolves: ISO-keyed snapshots sort
// chronologically, so the greatest key is the most recent scrape.
func Latest(dict domain.SnapshotDictionary) (string, []domain.RoomEntry, bool) {
	if len(dict) == 0 {
		return "", nil, false
	}
	latest := ""
	for k := range dict {
		if k > latest {
			latest = k
		}
	}
	return latest, dict[latest], true
}

// Normalize parses a loosely formatted date key and returns its ISO form
func Normalize(key string) (string, bool) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", false
	}
	for _, layout := range keyLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(ISODate), true
		}
	}
	return "", false
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
