package benchmark_test

import (
	"bytes"
	"io"
	"testing"

	posidx "github.com/beggers/positional-inverted-index"
	"github.com/beggers/positional-inverted-index/persistence"
	"github.com/beggers/positional-inverted-index/testutil"
)

// populatedDB builds a database with num generated documents.
func populatedDB(num int) *posidx.DB {
	rng := testutil.NewRNG(1)
	db := posidx.New()
	for i, text := range rng.GenerateDocuments(num, 200, 40) {
		db.Index(uint32(i+1), text)
	}
	return db
}

func BenchmarkIndex(b *testing.B) {
	b.ReportAllocs()

	rng := testutil.NewRNG(1)
	docs := rng.GenerateDocuments(1024, 200, 40)
	db := posidx.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db.Index(uint32(i+1), docs[i%len(docs)])
	}
}

func BenchmarkIndex_Replace(b *testing.B) {
	b.ReportAllocs()

	rng := testutil.NewRNG(1)
	docs := rng.GenerateDocuments(1024, 200, 40)
	db := populatedDB(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Overwrite a single document with changing text.
		db.Index(42, docs[i%len(docs)])
	}
}

func BenchmarkSearch_OneTerm(b *testing.B) {
	benchmarkSearch(b, 1)
}

func BenchmarkSearch_TwoTerms(b *testing.B) {
	benchmarkSearch(b, 2)
}

func BenchmarkSearch_FourTerms(b *testing.B) {
	benchmarkSearch(b, 4)
}

func benchmarkSearch(b *testing.B, tokens int) {
	b.ReportAllocs()

	db := populatedDB(10000)
	rng := testutil.NewRNG(2)

	queries := make([]string, 64)
	for i := range queries {
		queries[i] = rng.GenerateDocuments(1, 200, tokens)[0]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db.Search(queries[i%len(queries)])
	}
}

func BenchmarkDelete(b *testing.B) {
	b.ReportAllocs()

	rng := testutil.NewRNG(1)
	docs := rng.GenerateDocuments(1024, 200, 40)
	db := posidx.New()
	for i := 0; i < b.N; i++ {
		db.Index(uint32(i+1), docs[i%len(docs)])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := db.Delete(uint32(i + 1)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSave_None(b *testing.B) {
	benchmarkSave(b, persistence.None{})
}

func BenchmarkSave_Zstd(b *testing.B) {
	benchmarkSave(b, persistence.Zstd{})
}

func BenchmarkSave_LZ4(b *testing.B) {
	benchmarkSave(b, persistence.LZ4{})
}

func benchmarkSave(b *testing.B, comp persistence.Compressor) {
	b.ReportAllocs()

	rng := testutil.NewRNG(1)
	db := posidx.New(posidx.WithCompressor(comp))
	for i, text := range rng.GenerateDocuments(10000, 200, 40) {
		db.Index(uint32(i+1), text)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := db.SaveToWriter(io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoad(b *testing.B) {
	b.ReportAllocs()

	db := populatedDB(10000)
	var buf bytes.Buffer
	if err := db.SaveToWriter(&buf); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := posidx.NewFromReader(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPostingListSizes(b *testing.B) {
	b.ReportAllocs()

	db := populatedDB(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db.PostingListSizes()
	}
}
