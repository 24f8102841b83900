// Package suggest implements the search-as-you-type behaviour shared by the
// contact, opportunity, and product pickers: a case-insensitive substring
// filter over a cached option list plus the show/hide state of the
// suggestion panel.
package suggest

import (
	"sort"
	"strings"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

// Filter returns the entries whose label contains the query, case
// insensitively. Prefix matches rank before plain substring matches; ties
// keep label order. An empty or whitespace query returns every entry (the
// panel layer decides whether to show them).
func Filter(entries []option.Entry, query string) []option.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return option.CloneAll(entries)
	}

	q := strings.ToLower(query)
	type match struct {
		entry    option.Entry
		isPrefix bool
	}
	matches := make([]match, 0, len(entries))
	for _, entry := range entries {
		label := strings.ToLower(entry.Label)
		if !strings.Contains(label, q) {
			continue
		}
		matches = append(matches, match{
			entry:    entry.Clone(),
			isPrefix: strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].entry.Label < matches[j].entry.Label
	})

	out := make([]option.Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.entry)
	}
	return out
}
