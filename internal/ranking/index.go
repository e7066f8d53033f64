// Package ranking implements the keyword similarity and ranking pipeline:
// a TF-IDF corpus index, a blended similarity scorer, a metric estimator
// for novel keywords, a composite efficiency scorer, and a
// diversity-constrained ranker.
//
// The index is immutable once built and safe for concurrent use. All
// scoring functions are pure; persistence and candidate generation live
// elsewhere.
package ranking

import (
	"errors"
	"math"
	"sort"
	"strings"

	"kwforge/internal/models"
)

// ErrEmptyCorpus is returned by BuildIndex when the corpus store yields no
// entries. Scoring is undefined without a reference basis, so this is fatal
// to pipeline initialization.
var ErrEmptyCorpus = errors.New("corpus is empty")

const (
	charNgramMin = 2
	charNgramMax = 5
	wordNgramMin = 1
	wordNgramMax = 2
)

// sparseVec is an L2-normalized TF-IDF vector. Cosine similarity between
// two normalized vectors reduces to their dot product.
type sparseVec map[string]float64

// vectorSpace is one fitted term-weighted space over the corpus. The
// vocabulary (IDF table) is fixed at build time; out-of-vocabulary terms in
// a query contribute zero weight.
type vectorSpace struct {
	idf     map[string]float64
	vectors []sparseVec
	analyze func(string) []string
}

// Index holds the exact-match table and both vector spaces over the
// reference corpus. Entries keep their original insertion order, which is
// also the documented tie-break for equal similarity scores.
type Index struct {
	entries []models.CorpusEntry
	exact   map[string]int // lower-cased keyword -> entry index
	char    *vectorSpace
	word    *vectorSpace
}

// BuildIndex fits both vector spaces over the corpus and builds the
// exact-match table. Keywords are case-normalized; a duplicate keyword
// keeps its first occurrence in the exact table but still contributes a
// vector. Returns ErrEmptyCorpus for an empty corpus.
func BuildIndex(entries []models.CorpusEntry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCorpus
	}

	idx := &Index{
		entries: entries,
		exact:   make(map[string]int, len(entries)),
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Keyword
		key := strings.ToLower(strings.TrimSpace(e.Keyword))
		if _, dup := idx.exact[key]; !dup {
			idx.exact[key] = i
		}
	}

	idx.char = fitSpace(texts, charNgrams)
	idx.word = fitSpace(texts, wordNgrams)

	return idx, nil
}

// Size returns the number of corpus entries behind the index.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Entry returns the corpus entry at position i.
func (idx *Index) Entry(i int) models.CorpusEntry {
	return idx.entries[i]
}

// fitSpace builds one TF-IDF space: document frequencies over the corpus,
// smoothed IDF, and an L2-normalized weighted vector per document.
func fitSpace(docs []string, analyze func(string) []string) *vectorSpace {
	df := make(map[string]int)
	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		terms := analyze(doc)
		tokenized[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		// Smoothed IDF: every term behaves as if seen in one extra
		// document, so single-document corpora still get usable weights.
		idf[term] = math.Log((1+n)/(1+float64(freq))) + 1
	}

	space := &vectorSpace{
		idf:     idf,
		vectors: make([]sparseVec, len(docs)),
		analyze: analyze,
	}
	for i, terms := range tokenized {
		space.vectors[i] = space.weigh(terms)
	}
	return space
}

// weigh turns analyzed terms into an L2-normalized TF-IDF vector using the
// fitted vocabulary. Unknown terms are dropped.
func (s *vectorSpace) weigh(terms []string) sparseVec {
	if len(terms) == 0 {
		return nil
	}

	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}

	// Sum in sorted term order: float addition is not associative, so a
	// fixed order keeps scores identical across calls for the same input.
	ordered := make([]string, 0, len(tf))
	for t := range tf {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	vec := make(sparseVec, len(tf))
	var norm float64
	for _, term := range ordered {
		idf, ok := s.idf[term]
		if !ok {
			continue
		}
		w := float64(tf[term]) * idf
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}

	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// project maps a query string into the space. Returns nil when no term of
// the query is in the fitted vocabulary.
func (s *vectorSpace) project(text string) sparseVec {
	return s.weigh(s.analyze(text))
}

// cosine is the dot product of two normalized sparse vectors. Terms of the
// smaller vector are summed in sorted order so the result does not vary with
// map iteration.
func cosine(a, b sparseVec) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	ordered := make([]string, 0, len(a))
	for t := range a {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	var dot float64
	for _, term := range ordered {
		dot += a[term] * b[term]
	}
	return dot
}

// charNgrams analyzes text into character n-grams of size 2-5. Each word is
// padded with a leading and trailing space so grams mark word boundaries,
// which keeps short keywords comparable across word order changes.
func charNgrams(text string) []string {
	words := tokenizeWords(text)
	var grams []string
	for _, w := range words {
		padded := []rune(" " + w + " ")
		for size := charNgramMin; size <= charNgramMax; size++ {
			if size > len(padded) {
				break
			}
			for i := 0; i+size <= len(padded); i++ {
				grams = append(grams, string(padded[i:i+size]))
			}
		}
	}
	return grams
}

// wordNgrams analyzes text into word unigrams and bigrams.
func wordNgrams(text string) []string {
	words := tokenizeWords(text)
	grams := make([]string, 0, len(words)*2)
	for size := wordNgramMin; size <= wordNgramMax; size++ {
		for i := 0; i+size <= len(words); i++ {
			grams = append(grams, strings.Join(words[i:i+size], " "))
		}
	}
	return grams
}

// tokenizeWords lower-cases and splits text into alphanumeric word tokens.
func tokenizeWords(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	default:
		// Keep non-ASCII runes so UTF-8 keywords survive tokenization.
		return r > 127
	}
}
