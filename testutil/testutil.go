package testutil

import (
	"fmt"
	"math/rand"
	"strings"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of the integers [0,n).
func (r *RNG) Perm(n int) []int {
	return r.rand.Perm(n)
}

// Term returns one synthetic term drawn from a vocabulary of vocabSize
// distinct terms.
func (r *RNG) Term(vocabSize int) string {
	return fmt.Sprintf("term%04d", r.rand.Intn(vocabSize))
}

// GenerateDocuments generates num documents of wordsPerDoc words each,
// drawn from a vocabulary of vocabSize distinct terms.
func (r *RNG) GenerateDocuments(num, vocabSize, wordsPerDoc int) []string {
	docs := make([]string, num)
	for i := range docs {
		words := make([]string, wordsPerDoc)
		for j := range words {
			words[j] = r.Term(vocabSize)
		}
		docs[i] = strings.Join(words, " ")
	}
	return docs
}
