package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/faqmatch/internal/domain"
	"github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	"github.com/kailas-cloud/faqmatch/internal/domain/intent"
	"github.com/kailas-cloud/faqmatch/internal/tfidf"
)

// Defaults for the matching tuning constants.
const (
	DefaultThreshold              = 0.4
	DefaultMaxCollectionQuestions = 3
	DefaultMaxServices            = 2
)

// DefaultPricingKeywords trigger the pricing handler.
var DefaultPricingKeywords = []string{"price", "cost", "how much"}

// Options holds the tuning constants of the router.
type Options struct {
	// Threshold is the similarity a generic match must strictly exceed.
	Threshold              float64
	MaxCollectionQuestions int
	MaxServices            int
	PricingKeywords        []string
	// MaxQueryBytes rejects longer queries with domain.ErrInvalidQuery (0 = unlimited).
	MaxQueryBytes int
}

// DefaultOptions returns the default tuning constants.
func DefaultOptions() Options {
	return Options{
		Threshold:              DefaultThreshold,
		MaxCollectionQuestions: DefaultMaxCollectionQuestions,
		MaxServices:            DefaultMaxServices,
		PricingKeywords:        append([]string(nil), DefaultPricingKeywords...),
	}
}

// Service routes a query to the pricing, collection or generic handler.
// It holds only read-only state and is safe for concurrent use.
type Service struct {
	corpus      *corpus.Corpus
	normalizer  Normalizer
	scorer      Scorer
	opts        Options
	keywords    []string
	collections []string // lowercased, aligned with names
	names       []string
}

var _ Answerer = (*Service)(nil)

// New creates a router over an immutable corpus and a scorer fitted on it.
func New(c *corpus.Corpus, normalizer Normalizer, scorer Scorer, opts Options) *Service {
	s := &Service{
		corpus:     c,
		normalizer: normalizer,
		scorer:     scorer,
		opts:       opts,
		names:      c.Collections(),
	}
	for _, k := range opts.PricingKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			s.keywords = append(s.keywords, k)
		}
	}
	s.collections = make([]string, len(s.names))
	for i, n := range s.names {
		s.collections[i] = strings.ToLower(n)
	}
	return s
}

// Answer routes query in strict priority order: pricing, collection, generic.
func (s *Service) Answer(_ context.Context, query string) (Reply, error) {
	if s.opts.MaxQueryBytes > 0 && len(query) > s.opts.MaxQueryBytes {
		return Reply{}, fmt.Errorf("%w: query exceeds %d bytes", domain.ErrInvalidQuery, s.opts.MaxQueryBytes)
	}

	lowered := strings.ToLower(query)

	if s.isPricing(lowered) {
		return s.handlePricing(lowered), nil
	}
	if name, ok := s.matchCollection(lowered); ok {
		return s.handleCollection(name), nil
	}
	return s.handleGeneric(query)
}

// Route reports which handler a query would be dispatched to.
func (s *Service) Route(query string) intent.Intent {
	lowered := strings.ToLower(query)
	if s.isPricing(lowered) {
		return intent.Pricing
	}
	if _, ok := s.matchCollection(lowered); ok {
		return intent.Collection
	}
	return intent.Generic
}

func (s *Service) isPricing(lowered string) bool {
	for _, k := range s.keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// matchCollection returns the first collection, in corpus order, whose
// lowercased name occurs in the query.
func (s *Service) matchCollection(lowered string) (string, bool) {
	for i, c := range s.collections {
		if strings.Contains(lowered, c) {
			return s.names[i], true
		}
	}
	return "", false
}

func (s *Service) handlePricing(lowered string) Reply {
	var blocks []string
	for i := range s.corpus.Len() {
		r := s.corpus.At(i)
		if !r.HasPriceRange() {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(r.PriceRange())) {
			blocks = append(blocks, formatPricingBlock(&r))
		}
	}
	if len(blocks) == 0 {
		return Reply{Text: FallbackPricing, Intent: intent.Pricing}
	}
	return Reply{Text: strings.Join(blocks, "\n\n"), Intent: intent.Pricing, Matched: true}
}

func (s *Service) handleCollection(name string) Reply {
	records := s.corpus.InCollection(name)
	if len(records) == 0 {
		return Reply{Text: formatCollectionNotFound(name), Intent: intent.Collection}
	}
	limit := len(records)
	if s.opts.MaxCollectionQuestions >= 0 && limit > s.opts.MaxCollectionQuestions {
		limit = s.opts.MaxCollectionQuestions
	}
	questions := make([]string, limit)
	for i := range limit {
		questions[i] = records[i].Question()
	}
	return Reply{Text: formatCollection(name, questions), Intent: intent.Collection, Matched: true}
}

func (s *Service) handleGeneric(query string) (Reply, error) {
	tokens := s.normalizer.Tokenize(query)
	scores := s.scorer.Score(tokens)
	if len(scores) != s.corpus.Len() {
		return Reply{}, fmt.Errorf("score: got %d scores for %d documents", len(scores), s.corpus.Len())
	}

	idx, best := tfidf.Best(scores)
	if idx < 0 || best <= s.opts.Threshold {
		return Reply{Text: FallbackResponse(), Intent: intent.Generic, Score: best}, nil
	}

	r := s.corpus.At(idx)
	return Reply{
		Text:    FormatRecord(&r, s.opts.MaxServices),
		Intent:  intent.Generic,
		FAQID:   r.ID(),
		Score:   best,
		Matched: true,
	}, nil
}
