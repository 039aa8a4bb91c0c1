package index

import "strings"

// Tokenize splits text into index terms: the input is lowercased and split
// on runs of Unicode whitespace. Punctuation stays attached to its token,
// so "content." and "content" are distinct terms. The position of a term is
// its slice index in the returned tokens.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
