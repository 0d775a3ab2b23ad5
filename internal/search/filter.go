// Package search turns a snapshot and a query into the ranked display list.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/registry"
)

// Entry is one row of the display list.
type Entry struct {
	Client hypr.Client
	// Label is what the query was matched against.
	Label string
	// Index is the position of Client in the snapshot.
	Index int
	Score int
	// Contiguous is true when Label contains the query as a substring.
	Contiguous bool
	// MatchedIndexes are byte offsets into Label of the matched runes.
	MatchedIndexes []int
}

// DisplayList is the filtered, ranked view of a snapshot.
type DisplayList []Entry

// Len returns the number of entries.
func (l DisplayList) Len() int {
	return len(l)
}

// At returns the entry at i and whether i is in range.
func (l DisplayList) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l) {
		return Entry{}, false
	}
	return l[i], true
}

// Options tune matching.
type Options struct {
	CaseSensitive bool
	// MaxResults caps the list. Zero means unlimited.
	MaxResults int
}

// labelSource feeds only searchable clients to the fuzzy matcher.
type labelSource struct {
	labels  []string
	indexes []int
}

func (s labelSource) String(i int) string { return s.labels[i] }
func (s labelSource) Len() int            { return len(s.labels) }

// Filter builds the display list for snapshot and query.
//
// An empty query lists every client in snapshot order; untitled clients are
// shown with hypr.NoTitleLabel. A non-empty query keeps only titled clients
// whose title contains the query as a subsequence, ordered by
// (substring match, score, snapshot index).
func Filter(snap registry.Snapshot, query string, opts Options) DisplayList {
	if query == "" {
		list := make(DisplayList, 0, snap.Len())
		for i, c := range snap.Clients {
			list = append(list, Entry{Client: c, Label: c.DisplayLabel(), Index: i})
		}
		return limit(list, opts.MaxResults)
	}

	src := labelSource{}
	for i, c := range snap.Clients {
		label, ok := c.Label()
		if !ok {
			continue
		}
		src.labels = append(src.labels, label)
		src.indexes = append(src.indexes, i)
	}

	matches := fuzzy.FindFrom(query, src)
	list := make(DisplayList, 0, len(matches))
	for _, m := range matches {
		matched := append([]int(nil), m.MatchedIndexes...)
		if opts.CaseSensitive {
			var ok bool
			if matched, ok = exactCaseIndexes(m.Str, query); !ok {
				continue
			}
		}
		idx := src.indexes[m.Index]
		list = append(list, Entry{
			Client:         snap.Clients[idx],
			Label:          m.Str,
			Index:          idx,
			Score:          m.Score,
			Contiguous:     containsQuery(m.Str, query, opts.CaseSensitive),
			MatchedIndexes: matched,
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Contiguous != b.Contiguous {
			return a.Contiguous
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Index < b.Index
	})

	return limit(list, opts.MaxResults)
}

func limit(list DisplayList, max int) DisplayList {
	if max > 0 && len(list) > max {
		return list[:max]
	}
	return list
}

func containsQuery(label, query string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.Contains(label, query)
	}
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}

// exactCaseIndexes finds query in label without folding case and returns
// the byte offsets of the matched runes. A substring occurrence wins over a
// scattered one; otherwise runes are taken greedily left to right.
func exactCaseIndexes(label, query string) ([]int, bool) {
	out := make([]int, 0, utf8.RuneCountInString(query))
	if at := strings.Index(label, query); at >= 0 {
		for off := range query {
			out = append(out, at+off)
		}
		return out, true
	}

	rest := query
	for off, r := range label {
		if rest == "" {
			break
		}
		want, size := utf8.DecodeRuneInString(rest)
		if r == want {
			out = append(out, off)
			rest = rest[size:]
		}
	}
	return out, rest == ""
}

// IsSubsequence reports whether every rune of query appears in label in
// order, ignoring case.
func IsSubsequence(label, query string) bool {
	q := []rune(strings.ToLower(query))
	j := 0
	for _, r := range strings.ToLower(label) {
		if j < len(q) && r == q[j] {
			j++
		}
	}
	return j == len(q)
}
