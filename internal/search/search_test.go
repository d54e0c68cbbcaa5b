package search

import (
	"testing"

	"github.com/mmcdole/matchday/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parents = []domain.Parent{
	{Kind: domain.ParentLeague, ID: "l1", Name: "Premier League"},
	{Kind: domain.ParentLeague, ID: "l2", Name: "La Liga"},
	{Kind: domain.ParentTeam, ID: "t1", Name: "Arsenal"},
	{Kind: domain.ParentTeam, ID: "t2", Name: "Atlético Madrid"},
	{Kind: domain.ParentTeam, ID: "t3", Name: "Real Madrid"},
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Parent.ID
	}
	return out
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	idx := NewIndex(parents)

	results := idx.Filter("  ")
	assert.Equal(t, []string{"l1", "l2", "t1", "t2", "t3"}, ids(results))
	assert.Nil(t, results[0].MatchedIndexes)
}

func TestFilterSubsequence(t *testing.T) {
	idx := NewIndex(parents)

	results := idx.Filter("MADRID")
	require.Len(t, results, 2)
	assert.ElementsMatch(t, []string{"t2", "t3"}, ids(results))

	results = idx.Filter("ars")
	require.NotEmpty(t, results)
	assert.Equal(t, "t1", results[0].Parent.ID)
	assert.Equal(t, []int{0, 1, 2}, results[0].MatchedIndexes)
}

func TestFilterFallsBackToRank(t *testing.T) {
	idx := NewIndex(parents)

	// accent-insensitive
	assert.Equal(t, []string{"t2"}, ids(idx.Filter("atletico")))
	// transposed letters
	assert.Equal(t, []string{"t1"}, ids(idx.Filter("arsneal")))
	assert.Empty(t, idx.Filter("zzzz"))
}

func TestRank(t *testing.T) {
	names := []string{"premier league", "la liga", "real madrid"}

	assert.Nil(t, Rank("", names))
	assert.Equal(t, []int{1}, Rank("la liga", names))
	assert.Equal(t, []int{2}, Rank("reel madrid", names))
	assert.Equal(t, []int{0}, Rank("premeir", names))
}

func TestIndexSource(t *testing.T) {
	idx := NewIndex(parents)
	assert.Equal(t, 5, idx.Len())
	assert.Equal(t, "premier league", idx.String(0))
}
