package benchmark

import (
	"math/rand"
	"strings"

	posidx "github.com/beggers/positional-inverted-index"
)

// FixedDictionary is the closed vocabulary used by the fixed query
// distribution.
var FixedDictionary = []string{"The", "quantity", "respectable", "she", "announced"}

// Distribution selects how query terms are drawn.
type Distribution int

const (
	// Fixed draws distinct terms from FixedDictionary.
	Fixed Distribution = iota

	// Weighted draws terms from the index under test, weighted by
	// occurrence count. A term may repeat within one query.
	Weighted
)

func (d Distribution) String() string {
	switch d {
	case Weighted:
		return "weighted"
	default:
		return "fixed"
	}
}

// DistributionByName resolves a distribution from its configuration name.
func DistributionByName(name string) (Distribution, bool) {
	switch name {
	case "fixed":
		return Fixed, true
	case "weighted":
		return Weighted, true
	default:
		return Fixed, false
	}
}

// QueryGenerator produces benchmark queries of 1 to maxTokens terms.
type QueryGenerator struct {
	distribution Distribution
	maxTokens    int
	rng          *rand.Rand
}

// NewQueryGenerator creates a query generator drawing query lengths and
// fixed-dictionary terms from rng.
func NewQueryGenerator(distribution Distribution, maxTokens int, rng *rand.Rand) *QueryGenerator {
	if maxTokens < 1 {
		maxTokens = 1
	}
	return &QueryGenerator{
		distribution: distribution,
		maxTokens:    maxTokens,
		rng:          rng,
	}
}

// Queries returns n generated queries. Weighted generation samples terms
// from db and returns no queries while db has none.
func (g *QueryGenerator) Queries(db *posidx.DB, n int) []string {
	if n <= 0 {
		return nil
	}
	if g.distribution == Weighted && db.Terms() == 0 {
		return nil
	}

	queries := make([]string, 0, n)
	for i := 0; i < n; i++ {
		length := 1 + g.rng.Intn(g.maxTokens)
		queries = append(queries, strings.Join(g.tokens(db, length), " "))
	}
	return queries
}

func (g *QueryGenerator) tokens(db *posidx.DB, length int) []string {
	if g.distribution == Weighted {
		tokens := make([]string, 0, length)
		for i := 0; i < length; i++ {
			tokens = append(tokens, db.RandomTerms(1)...)
		}
		return tokens
	}

	if length > len(FixedDictionary) {
		length = len(FixedDictionary)
	}

	tokens := make([]string, 0, length)
	for _, i := range g.rng.Perm(len(FixedDictionary))[:length] {
		tokens = append(tokens, FixedDictionary[i])
	}
	return tokens
}
