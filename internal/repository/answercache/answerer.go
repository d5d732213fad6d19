package answercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/faqmatch/internal/db"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
)

// KeyPrefix namespaces cached replies in the shared key space.
const KeyPrefix = "faqbot:answer:"

// store is the consumer interface for the answer cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedAnswerer caches replies keyed by corpus fingerprint, matching
// configuration and query text. A new corpus file or changed tuning produces
// a new key scope, so stale replies are never served.
type CachedAnswerer struct {
	inner       chat.Answerer
	store       store
	fingerprint string
	configHash  string
	ttl         time.Duration
	cacheTotal  *prometheus.CounterVec
	logger      *zap.Logger
}

var _ chat.Answerer = (*CachedAnswerer)(nil)

// New creates a caching decorator. configHash identifies the matching
// configuration (see ConfigHash).
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner chat.Answerer,
	s store,
	fingerprint string,
	configHash string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnswerer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAnswerer{
		inner:       inner,
		store:       s,
		fingerprint: fingerprint,
		configHash:  configHash,
		ttl:         ttl,
		cacheTotal:  cacheTotal,
		logger:      logger,
	}
}

// Answer returns a cached reply or calls the inner answerer.
// Store failures degrade to a miss; errors from inner are never cached.
func (c *CachedAnswerer) Answer(ctx context.Context, query string) (chat.Reply, error) {
	key := c.cacheKey(query)

	if reply, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return reply, nil
	}

	c.incCache("miss")

	reply, err := c.inner.Answer(ctx, query)
	if err != nil {
		return chat.Reply{}, fmt.Errorf("answer query: %w", err)
	}

	c.putToCache(ctx, key, reply)
	return reply, nil
}

func (c *CachedAnswerer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAnswerer) cacheKey(query string) string {
	h := sha256.Sum256([]byte(query))
	return KeyPrefix + c.fingerprint + ":" + c.configHash + ":" + hex.EncodeToString(h[:])
}

// matchingConfig is everything besides the corpus that shapes a reply.
type matchingConfig struct {
	Options  chat.Options `json:"options"`
	MinDF    int          `json:"min_df"`
	Fallback []string     `json:"fallback"`
}

// ConfigHash returns a short hex digest of the effective matching configuration:
// router options, vocabulary min_df and the normalizer's fallback tokens.
func ConfigHash(opts chat.Options, minDF int, fallback []string) string {
	data, _ := json.Marshal(matchingConfig{Options: opts, MinDF: minDF, Fallback: fallback})
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:8])
}

func (c *CachedAnswerer) getFromCache(ctx context.Context, key string) (chat.Reply, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached answer", zap.String("key", key), zap.Error(err))
		}
		return chat.Reply{}, false
	}
	if len(data) == 0 {
		return chat.Reply{}, false
	}

	var reply chat.Reply
	if err := json.Unmarshal(data, &reply); err != nil {
		c.logger.Warn("Failed to parse cached answer", zap.String("key", key), zap.Error(err))
		return chat.Reply{}, false
	}
	if !reply.Intent.IsValid() || reply.Text == "" {
		c.logger.Warn("Discarding malformed cached answer", zap.String("key", key))
		return chat.Reply{}, false
	}
	return reply, true
}

func (c *CachedAnswerer) putToCache(ctx context.Context, key string, reply chat.Reply) {
	data, err := json.Marshal(reply)
	if err != nil {
		c.logger.Warn("Failed to encode answer", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache answer", zap.String("key", key), zap.Error(err))
	}
}
