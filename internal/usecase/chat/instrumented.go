package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqmatch/internal/domain/intent"
	"github.com/kailas-cloud/faqmatch/internal/logger"
	"github.com/kailas-cloud/faqmatch/internal/metrics"
)

// InstrumentedAnswerer wraps an Answerer with query metrics and logging.
type InstrumentedAnswerer struct {
	inner  Answerer
	logger *zap.Logger
}

var _ Answerer = (*InstrumentedAnswerer)(nil)

// NewInstrumentedAnswerer wraps an answerer with observability.
// The request-scoped logger from ctx is preferred when present.
func NewInstrumentedAnswerer(inner Answerer, logger *zap.Logger) *InstrumentedAnswerer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedAnswerer{inner: inner, logger: logger}
}

// Answer delegates to the inner answerer and records intent, outcome and duration.
func (a *InstrumentedAnswerer) Answer(ctx context.Context, query string) (Reply, error) {
	log := logger.FromContextOr(ctx, a.logger)

	start := time.Now()
	reply, err := a.inner.Answer(ctx, query)
	duration := time.Since(start)

	if err != nil {
		metrics.QueriesTotal.WithLabelValues("unknown", "error").Inc()
		log.Error("Query failed",
			zap.Int("query_bytes", len(query)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return Reply{}, fmt.Errorf("answer: %w", err)
	}

	status := "fallback"
	if reply.Matched {
		status = "matched"
	}
	metrics.QueriesTotal.WithLabelValues(string(reply.Intent), status).Inc()
	metrics.QueryDuration.WithLabelValues(string(reply.Intent)).Observe(duration.Seconds())
	if reply.Intent == intent.Generic {
		metrics.GenericBestScore.Observe(reply.Score)
	}

	log.Debug("Query answered",
		zap.String("intent", string(reply.Intent)),
		zap.Bool("matched", reply.Matched),
		zap.Int("faq_id", reply.FAQID),
		zap.Float64("score", reply.Score),
		zap.Duration("duration", duration),
	)
	return reply, nil
}
