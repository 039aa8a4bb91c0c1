package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCorpusIndex builds the three-document corpus used across tests.
func newCorpusIndex(optFns ...func(o *Options)) *Index {
	x := New(optFns...)
	x.Add(1, "here is some content")
	x.Add(2, "here is some more content")
	x.Add(3, "here is even more content")
	return x
}

func TestIndex_Search(t *testing.T) {
	t.Run("Conjunction", func(t *testing.T) {
		x := newCorpusIndex()

		assert.Equal(t, []uint32{1, 2}, x.Search("is some"))
		assert.Equal(t, []uint32{1, 2, 3}, x.Search("here"))
		assert.Equal(t, []uint32{2, 3}, x.Search("more content"))
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		x := newCorpusIndex()

		assert.Empty(t, x.Search(""))
		assert.Empty(t, x.Search("   \t\n"))
	})

	t.Run("UnknownTerm", func(t *testing.T) {
		x := newCorpusIndex()

		assert.Empty(t, x.Search("missing"))
		assert.Empty(t, x.Search("here missing"))
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		x := New()
		x.Add(7, "Hello World")

		assert.Equal(t, []uint32{7}, x.Search("HELLO world"))
	})

	t.Run("DuplicateQueryTerms", func(t *testing.T) {
		x := newCorpusIndex()

		assert.Equal(t, []uint32{1, 2, 3}, x.Search("here here here"))
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		x := New()

		assert.Empty(t, x.Search("anything"))
	})
}

func TestIndex_OrderingInvariance(t *testing.T) {
	// Both orderings must return identical results for every query.
	queries := []string{
		"is some",
		"here",
		"more content",
		"even",
		"here missing",
		"content here is",
	}

	token := newCorpusIndex()
	freq := newCorpusIndex(func(o *Options) {
		o.Ordering = AscendingFrequencyOrder
	})

	require.Equal(t, TokenOrder, token.Ordering())
	require.Equal(t, AscendingFrequencyOrder, freq.Ordering())

	for _, q := range queries {
		assert.Equal(t, token.Search(q), freq.Search(q), "query %q", q)
	}
}

func TestQueryOrdering_Names(t *testing.T) {
	assert.Equal(t, "token-order", TokenOrder.String())
	assert.Equal(t, "ascending-frequency", AscendingFrequencyOrder.String())

	o, ok := QueryOrderingByName("ascending-frequency")
	require.True(t, ok)
	assert.Equal(t, AscendingFrequencyOrder, o)

	_, ok = QueryOrderingByName("bogus")
	assert.False(t, ok)
}

func TestIndex_Add(t *testing.T) {
	t.Run("Positions", func(t *testing.T) {
		x := New()
		x.Add(1, "to be or not to be")

		assert.Equal(t, []uint32{0, 4}, x.Positions("to", 1))
		assert.Equal(t, []uint32{1, 5}, x.Positions("be", 1))
		assert.Equal(t, []uint32{2}, x.Positions("or", 1))
		assert.Nil(t, x.Positions("be", 2))
		assert.Nil(t, x.Positions("absent", 1))
	})

	t.Run("Replace", func(t *testing.T) {
		x := New()
		x.Add(1, "old words here")
		x.Add(1, "new words")

		// The old text no longer matches, the new one does.
		assert.Empty(t, x.Search("old"))
		assert.Empty(t, x.Search("here"))
		assert.Equal(t, []uint32{1}, x.Search("new words"))
		assert.Equal(t, 2, x.Terms())
	})

	t.Run("ReplaceKeepsOtherDocuments", func(t *testing.T) {
		x := New()
		x.Add(1, "shared term")
		x.Add(2, "shared term")
		x.Add(1, "changed")

		assert.Equal(t, []uint32{2}, x.Search("shared"))
		assert.Equal(t, []uint32{1}, x.Search("changed"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		x := New()
		x.Add(1, "same text twice")
		before := x.Stats()

		x.Add(1, "same text twice")

		assert.Equal(t, before, x.Stats())
		assert.Equal(t, []uint32{1}, x.Search("same text twice"))
	})

	t.Run("EmptyTextRemoves", func(t *testing.T) {
		x := New()
		x.Add(1, "short lived")
		require.True(t, x.Has(1))

		x.Add(1, "")

		assert.False(t, x.Has(1))
		assert.Empty(t, x.Search("short"))
		assert.Equal(t, 0, x.Terms())
	})
}

func TestIndex_Delete(t *testing.T) {
	x := newCorpusIndex()

	require.True(t, x.Delete(2))

	assert.False(t, x.Has(2))
	assert.Equal(t, []uint32{1, 3}, x.Search("here"))
	assert.Equal(t, []uint32{3}, x.Search("more"))
	assert.Equal(t, 2, x.Documents())

	// Deleting again reports absence.
	assert.False(t, x.Delete(2))
	assert.False(t, x.Delete(99))
}

func TestIndex_DeleteDropsEmptyTerms(t *testing.T) {
	x := New()
	x.Add(1, "unique wording")
	x.Add(2, "unique")

	require.True(t, x.Delete(1))

	// "wording" only occurred in document 1, so it left the dictionary.
	assert.Equal(t, 1, x.Terms())
	assert.Equal(t, 0, x.TermFrequency("wording"))
	assert.Equal(t, 1, x.TermFrequency("unique"))
}

func TestIndex_TermFrequency(t *testing.T) {
	x := newCorpusIndex()

	// "here" and "is" occur once in each of the three documents.
	assert.Equal(t, 3, x.TermFrequency("here"))
	assert.Equal(t, 3, x.TermFrequency("is"))
	assert.Equal(t, 2, x.TermFrequency("some"))
	assert.Equal(t, 2, x.TermFrequency("more"))
	assert.Equal(t, 1, x.TermFrequency("even"))
	assert.Equal(t, 0, x.TermFrequency("absent"))
}

func TestIndex_Counts(t *testing.T) {
	x := newCorpusIndex()

	assert.Equal(t, 6, x.Terms())
	assert.Equal(t, 3, x.Documents())

	empty := New()
	assert.Equal(t, 0, empty.Terms())
	assert.Equal(t, 0, empty.Documents())
}
