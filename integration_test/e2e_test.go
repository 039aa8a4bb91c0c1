package integration_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	posidx "github.com/beggers/positional-inverted-index"
	"github.com/beggers/positional-inverted-index/codec"
	"github.com/beggers/positional-inverted-index/persistence"
	"github.com/beggers/positional-inverted-index/testutil"
)

func TestE2E_Restart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.idx")

	// 1. Build and save
	db := posidx.New()
	db.Index(1, "here is some content")
	db.Index(2, "here is some more content")
	db.Index(3, "here is even more content")
	require.NoError(t, db.SaveToFile(path))

	// 2. Reopen and verify
	db, err := posidx.NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []uint32{1, 2}, db.Search("is some"))
	assert.Equal(t, []uint32{1, 2, 3}, db.Search("here"))
	assert.Equal(t, []uint32{2, 3}, db.Search("more content"))
	assert.Equal(t, 3, db.Documents())
}

func TestE2E_CodecCompressionMatrix(t *testing.T) {
	codecs := []codec.Codec{codec.JSON{}, codec.GoJSON{}}
	compressors := []persistence.Compressor{persistence.None{}, persistence.Zstd{}, persistence.LZ4{}}

	for _, c := range codecs {
		for _, comp := range compressors {
			t.Run(c.Name()+"/"+comp.Name(), func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "corpus.idx")

				db := posidx.New(posidx.WithCodec(c), posidx.WithCompressor(comp))
				db.Index(1, "here is some content")
				db.Index(2, "here is some more content")
				require.NoError(t, db.SaveToFile(path))

				// Loading selects codec and compression from the file
				// itself, so no options are needed.
				loaded, err := posidx.NewFromFile(path)
				require.NoError(t, err)
				assert.Equal(t, []uint32{1, 2}, loaded.Search("here is some"))
				assert.Equal(t, db.TermListSize(), loaded.TermListSize())
				assert.Equal(t, db.PostingListSizes(), loaded.PostingListSizes())
			})
		}
	}
}

func TestE2E_GeneratedCorpusRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.idx")
	rng := testutil.NewRNG(7)
	docs := rng.GenerateDocuments(300, 40, 25)

	db := posidx.New(posidx.WithCompressor(persistence.Zstd{}))
	for i, text := range docs {
		db.Index(uint32(i+1), text)
	}
	require.NoError(t, db.SaveToFile(path))

	loaded, err := posidx.NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, db.Stats(), loaded.Stats())
	for _, doc := range []uint32{1, 150, 300} {
		assert.Equal(t, db.Search(docs[doc-1]), loaded.Search(docs[doc-1]))
	}
}
