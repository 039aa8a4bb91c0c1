package benchmark

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Empty",
			text:     "",
			expected: nil,
		},
		{
			name:     "SingleParagraph",
			text:     "one paragraph of text\n",
			expected: []string{"one paragraph of text"},
		},
		{
			name:     "MultipleParagraphs",
			text:     "first\n\nsecond\n\nthird\n",
			expected: []string{"first", "second", "third"},
		},
		{
			name:     "WhitespaceOnlySeparator",
			text:     "first\n   \nsecond",
			expected: []string{"first", "second"},
		},
		{
			name:     "MultiLineParagraph",
			text:     "line one\nline two\n\nnext",
			expected: []string{"line one\nline two", "next"},
		},
		{
			name:     "LeadingAndTrailingBlankLines",
			text:     "\n\nonly\n\n\n",
			expected: []string{"only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitParagraphs(tt.text))
		})
	}
}

func TestReadParagraphs(t *testing.T) {
	t.Run("ThreeParagraphs", func(t *testing.T) {
		filename := writeCorpusFile(t, t.TempDir(), "corpus.txt", "a\n\nb\n\nc\n")

		paragraphs, err := ReadParagraphs(filename)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, paragraphs)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		filename := writeCorpusFile(t, t.TempDir(), "empty.txt", "")

		paragraphs, err := ReadParagraphs(filename)
		require.NoError(t, err)
		assert.Empty(t, paragraphs)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ReadParagraphs(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
	})
}

func TestLoadCorpus(t *testing.T) {
	t.Run("PreservesFileOrder", func(t *testing.T) {
		dir := t.TempDir()
		first := writeCorpusFile(t, dir, "first.txt", "a1\n\na2\n")
		second := writeCorpusFile(t, dir, "second.txt", "b1\n")

		paragraphs, err := LoadCorpus(context.Background(), []string{first, second})
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2", "b1"}, paragraphs)
	})

	t.Run("MissingFile", func(t *testing.T) {
		dir := t.TempDir()
		first := writeCorpusFile(t, dir, "first.txt", "a\n")

		_, err := LoadCorpus(context.Background(), []string{first, filepath.Join(dir, "missing.txt")})
		assert.Error(t, err)
	})

	t.Run("NoFiles", func(t *testing.T) {
		paragraphs, err := LoadCorpus(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, paragraphs)
	})
}
