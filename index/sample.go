package index

import (
	"math/rand"
	"sort"
)

// RandomTerms draws n distinct terms from the dictionary, weighted by term
// frequency: a term occurring ten times is ten times as likely to be drawn
// as a term occurring once. Draws repeat until n distinct terms have been
// seen, so the returned slice is in first-draw order. When the dictionary
// holds fewer than n distinct terms, all of them are returned in
// lexicographic order.
func (x *Index) RandomTerms(rng *rand.Rand, n int) []string {
	if n <= 0 || len(x.terms) == 0 {
		return nil
	}

	terms := x.sortedTerms()
	if n >= len(terms) {
		return terms
	}

	// cum[i] is the total frequency of terms[0..i], so a uniform draw in
	// [0, total) lands on term i with probability freq(i)/total.
	cum := make([]int, len(terms))
	total := 0
	for i, term := range terms {
		total += x.freqs[term]
		cum[i] = total
	}

	picked := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(picked) < n {
		r := rng.Intn(total)
		i := sort.SearchInts(cum, r+1)
		term := terms[i]
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		picked = append(picked, term)
	}

	return picked
}
