package chat

import (
	"context"

	"github.com/kailas-cloud/faqmatch/internal/domain/intent"
)

// Normalizer turns text into the token sequence used for matching.
type Normalizer interface {
	Tokenize(text string) []string
}

// Scorer scores query tokens against every corpus document, in corpus order.
type Scorer interface {
	Score(tokens []string) []float64
}

// Answerer answers a single raw query. Implemented by Service and its decorators.
type Answerer interface {
	Answer(ctx context.Context, query string) (Reply, error)
}

// Reply is the outcome of answering a query.
type Reply struct {
	Text   string        `json:"text"`
	Intent intent.Intent `json:"intent"`
	// FAQID identifies the record when Matched is true on the generic path.
	// 0 is a valid id, so it is always encoded.
	FAQID   int     `json:"faq_id"`
	Score   float64 `json:"score,omitempty"`
	Matched bool    `json:"matched"`
}
