// Package similarity implements the term-frequency text index used for the
// first classification pass over transaction descriptions.
package similarity

import (
	"errors"
	"math"

	"spendscope/internal/taxonomy"
)

// Errors reported by index construction and scoring. Callers treat any
// scoring error as a signal to fall back to rule-based classification for
// the whole batch.
var (
	ErrEmptyVocabulary = errors.New("similarity: category keywords produce an empty vocabulary")
	ErrEmptyBatch      = errors.New("similarity: empty description batch")
)

// Match is the best-scoring category for one description.
type Match struct {
	Category string
	Score    float64
}

// vector is a sparse term-frequency vector over the fitted vocabulary.
type vector map[int]float64

// Index is a fitted text-similarity index. Each taxonomy category is
// represented by one synthetic document built from its keyword list; queries
// are scored against every category by cosine similarity. The index is
// immutable after construction and safe for concurrent use.
type Index struct {
	vocabulary map[string]int
	categories []string
	docs       []vector
	norms      []float64
}

// NewIndex fits an index from the taxonomy's keyword documents. Categories
// with no keywords (the fallback category) are indexed with an empty vector
// and can never win a match. Returns ErrEmptyVocabulary when no category
// contributes a single term.
func NewIndex(tax taxonomy.Taxonomy) (*Index, error) {
	ix := &Index{vocabulary: make(map[string]int)}

	for _, c := range tax.Categories() {
		var terms []string
		for _, kw := range c.Keywords {
			terms = append(terms, tokenize(kw)...)
		}

		doc := make(vector, len(terms))
		for _, term := range terms {
			id, ok := ix.vocabulary[term]
			if !ok {
				id = len(ix.vocabulary)
				ix.vocabulary[term] = id
			}
			doc[id]++
		}

		ix.categories = append(ix.categories, c.Name)
		ix.docs = append(ix.docs, doc)
		ix.norms = append(ix.norms, norm(doc))
	}

	if len(ix.vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return ix, nil
}

// ScoreBatch vectorizes each description with the fitted vocabulary
// (out-of-vocabulary terms are ignored) and returns the best-matching
// category and cosine score per description, in input order. A description
// that shares no terms with any category scores 0 against the first
// category.
func (ix *Index) ScoreBatch(descriptions []string) ([]Match, error) {
	if len(descriptions) == 0 {
		return nil, ErrEmptyBatch
	}

	matches := make([]Match, len(descriptions))
	for i, desc := range descriptions {
		q := ix.vectorize(desc)
		qn := norm(q)

		best := Match{Category: ix.categories[0]}
		for j, doc := range ix.docs {
			s := cosine(q, qn, doc, ix.norms[j])
			if s > best.Score {
				best = Match{Category: ix.categories[j], Score: s}
			}
		}
		matches[i] = best
	}
	return matches, nil
}

// vectorize maps a query onto the fitted vocabulary, dropping unknown terms.
func (ix *Index) vectorize(text string) vector {
	v := make(vector)
	for _, term := range tokenize(text) {
		if id, ok := ix.vocabulary[term]; ok {
			v[id]++
		}
	}
	return v
}

func norm(v vector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// cosine computes the cosine similarity between two sparse vectors with
// precomputed norms. Zero vectors score 0.
func cosine(a vector, an float64, b vector, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	// Iterate the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for id, w := range a {
		if bw, ok := b[id]; ok {
			dot += w * bw
		}
	}
	return dot / (an * bn)
}
