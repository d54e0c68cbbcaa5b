package search

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Result is a matched parent with match metadata for highlighting
type Result struct {
	Parent         domain.Parent
	MatchedIndexes []int // byte positions in the lowercased name
	Score          int   // higher is better
}

// Index implements sahilm/fuzzy.Source over parent display names
type Index struct {
	parents    []domain.Parent
	lowerNames []string // Pre-computed lowercase names
}

// NewIndex builds an index over parents, preserving their order
func NewIndex(parents []domain.Parent) *Index {
	idx := &Index{
		parents:    parents,
		lowerNames: make([]string, len(parents)),
	}
	for i, p := range parents {
		idx.lowerNames[i] = strings.ToLower(p.DisplayName())
	}
	return idx
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of parents (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.parents) }

// Filter returns the parents matching query, best first. An empty query
// returns every parent in index order. When the subsequence matcher finds
// nothing, Rank is used so accents and small typos still match.
func (idx *Index) Filter(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]Result, len(idx.parents))
		for i, p := range idx.parents {
			results[i] = Result{Parent: p}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, idx)
	if len(matches) > 0 {
		results := make([]Result, len(matches))
		for i, m := range matches {
			results[i] = Result{
				Parent:         idx.parents[m.Index],
				MatchedIndexes: m.MatchedIndexes,
				Score:          m.Score,
			}
		}
		return results
	}

	ranked := Rank(query, idx.lowerNames)
	results := make([]Result, len(ranked))
	for i, r := range ranked {
		results[i] = Result{Parent: idx.parents[r]}
	}
	return results
}

// Rank returns the indexes of names matching query, closest first.
// Unicode-normalized subsequence matches come first, then names containing a
// word within typo distance of every query word.
func Rank(query string, names []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ranks := fuzzysearch.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	out := make([]int, 0, len(ranks))
	seen := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		out = append(out, r.OriginalIndex)
		seen[r.OriginalIndex] = true
	}

	type typoMatch struct {
		index    int
		distance int
	}
	var typos []typoMatch
	queryWords := words(query)
	for i, name := range names {
		if seen[i] {
			continue
		}
		if d, ok := typoDistance(queryWords, words(name)); ok {
			typos = append(typos, typoMatch{index: i, distance: d})
		}
	}
	slices.SortStableFunc(typos, func(a, b typoMatch) int { return a.distance - b.distance })
	for _, t := range typos {
		out = append(out, t.index)
	}
	return out
}

// typoDistance sums, for each query word, the smallest Levenshtein distance to
// any name word. It fails when some query word is too far from every name word.
func typoDistance(query, name []string) (int, bool) {
	if len(query) == 0 || len(name) == 0 {
		return 0, false
	}
	total := 0
	for _, q := range query {
		best := -1
		for _, n := range name {
			d := fuzzysearch.LevenshteinDistance(q, n)
			if best < 0 || d < best {
				best = d
			}
		}
		if best > maxTypos(q) {
			return 0, false
		}
		total += best
	}
	return total, true
}

// maxTypos allows one edit per three characters, at least one
func maxTypos(word string) int {
	return max(1, len([]rune(word))/3)
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
