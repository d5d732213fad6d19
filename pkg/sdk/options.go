package faqbot

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	corpusPath string
	records    []FAQ

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	minDF                  int
	threshold              float64
	maxCollectionQuestions int
	maxServices            int
	maxQueryBytes          int
	pricingKeywords        []string
	fallbackTokens         []string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCorpusFile loads FAQs from a .json, .yaml or .yml file.
func WithCorpusFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusPath = path
	})
}

// WithRecords uses in-memory FAQs instead of a file.
func WithRecords(records []FAQ) Option {
	return optionFunc(func(c *clientConfig) {
		c.records = records
	})
}

// WithValkey caches replies in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithRedis caches replies in a Redis instance.
func WithRedis(addr, password string) Option {
	return WithValkey(addr, password)
}

// WithCacheTTL sets the expiry of cached replies. Default: 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithMinDF sets the minimum document frequency for vocabulary terms. Default: 2.
func WithMinDF(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minDF = n
	})
}

// WithThreshold sets the similarity a generic match must strictly exceed. Default: 0.4.
func WithThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = t
	})
}

// WithMaxCollectionQuestions caps the questions listed by the collection handler. Default: 3.
func WithMaxCollectionQuestions(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxCollectionQuestions = n
	})
}

// WithMaxServices caps the services listed under a generic answer. Default: 2.
func WithMaxServices(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxServices = n
	})
}

// WithMaxQueryBytes rejects longer queries with ErrInvalidQuery. Default: unlimited.
func WithMaxQueryBytes(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxQueryBytes = n
	})
}

// WithPricingKeywords replaces the substrings that trigger the pricing handler.
func WithPricingKeywords(keywords ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.pricingKeywords = keywords
	})
}

// WithFallbackTokens replaces the tokens substituted for texts that normalize to nothing.
func WithFallbackTokens(tokens ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallbackTokens = tokens
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
