// Package tfidf fits a term-frequency / inverse-document-frequency model over
// token sequences and scores queries against it with cosine similarity.
package tfidf

import (
	"errors"
	"math"
	"sort"
)

// DefaultMinDF is the minimum number of documents a term must occur in to enter the vocabulary.
const DefaultMinDF = 2

var (
	// ErrEmptyCorpus signals a fit over zero documents.
	ErrEmptyCorpus = errors.New("tfidf: no documents to fit")
	// ErrEmptyVocabulary signals that no term survived the document-frequency cut.
	ErrEmptyVocabulary = errors.New("tfidf: no terms remain after pruning")
)

// entry is one non-zero component of a sparse vector.
type entry struct {
	col int
	w   float64
}

// Model is a fitted TF-IDF model. It is read-only after Build and safe for concurrent use.
type Model struct {
	minDF int
	vocab map[string]int
	terms []string
	idf   []float64
	docs  [][]entry // L2-normalized, sorted by column
}

// Option configures Build.
type Option func(*Model)

// WithMinDF overrides the minimum document frequency (values < 1 are ignored).
func WithMinDF(n int) Option {
	return func(m *Model) {
		if n >= 1 {
			m.minDF = n
		}
	}
}

// Build fits the model over docs. Vectors are aligned by index with docs.
func Build(docs [][]string, opts ...Option) (*Model, error) {
	m := &Model{minDF: DefaultMinDF}
	for _, o := range opts {
		o(m)
	}
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, t := range doc {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	for t, n := range df {
		if n >= m.minDF {
			m.terms = append(m.terms, t)
		}
	}
	if len(m.terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Strings(m.terms)

	n := float64(len(docs))
	m.vocab = make(map[string]int, len(m.terms))
	m.idf = make([]float64, len(m.terms))
	for i, t := range m.terms {
		m.vocab[t] = i
		// smoothed idf: ln((1+n)/(1+df)) + 1
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	m.docs = make([][]entry, len(docs))
	for i, doc := range docs {
		m.docs[i] = m.vectorize(doc)
	}
	return m, nil
}

// vectorize projects tokens into the vocabulary space. Out-of-vocabulary
// tokens are ignored. The result is L2-normalized and sorted by column.
func (m *Model) vectorize(tokens []string) []entry {
	counts := make(map[int]float64)
	for _, t := range tokens {
		if col, ok := m.vocab[t]; ok {
			counts[col]++
		}
	}
	vec := make([]entry, 0, len(counts))
	for col, tf := range counts {
		vec = append(vec, entry{col: col, w: tf * m.idf[col]})
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].col < vec[b].col })

	var norm float64
	for _, e := range vec {
		norm += e.w * e.w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].w /= norm
	}
	return vec
}

// Score returns the cosine similarity between the query tokens and every
// document, in document order. Values are clamped to [0,1]; a query with no
// in-vocabulary term scores 0 against everything.
func (m *Model) Score(tokens []string) []float64 {
	scores := make([]float64, len(m.docs))
	q := m.vectorize(tokens)
	if len(q) == 0 {
		return scores
	}
	for i, doc := range m.docs {
		scores[i] = clamp01(dot(q, doc))
	}
	return scores
}

// Best returns the arg-max of scores; the first index wins ties.
// It returns (-1, 0) for an empty slice.
func Best(scores []float64) (int, float64) {
	if len(scores) == 0 {
		return -1, 0
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best, scores[best]
}

// Len returns the number of fitted documents.
func (m *Model) Len() int { return len(m.docs) }

// MinDF returns the document-frequency threshold used for the fit.
func (m *Model) MinDF() int { return m.minDF }

// VocabularySize returns the number of terms in the vocabulary.
func (m *Model) VocabularySize() int { return len(m.terms) }

// Vocabulary returns the vocabulary terms in column order.
func (m *Model) Vocabulary() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Contains reports whether term is part of the vocabulary.
func (m *Model) Contains(term string) bool {
	_, ok := m.vocab[term]
	return ok
}

// IDF returns the inverse document frequency of term.
func (m *Model) IDF(term string) (float64, bool) {
	col, ok := m.vocab[term]
	if !ok {
		return 0, false
	}
	return m.idf[col], true
}

// dot multiplies two column-sorted sparse vectors.
func dot(a, b []entry) float64 {
	var s float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].col == b[j].col:
			s += a[i].w * b[j].w
			i++
			j++
		case a[i].col < b[j].col:
			i++
		default:
			j++
		}
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
