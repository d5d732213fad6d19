package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqmatch/internal/config"
	"github.com/kailas-cloud/faqmatch/internal/db"
	dbRedis "github.com/kailas-cloud/faqmatch/internal/db/redis"
	"github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	logpkg "github.com/kailas-cloud/faqmatch/internal/logger"
	"github.com/kailas-cloud/faqmatch/internal/metrics"
	"github.com/kailas-cloud/faqmatch/internal/repository/answercache"
	corpusrepo "github.com/kailas-cloud/faqmatch/internal/repository/corpus"
	"github.com/kailas-cloud/faqmatch/internal/text"
	"github.com/kailas-cloud/faqmatch/internal/tfidf"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
	"github.com/kailas-cloud/faqmatch/internal/version"
)

// app is the composition root shared by serve, ask, chat and faqs.
type app struct {
	env      string
	cfg      config.Config
	logger   *zap.Logger
	corpus   *corpus.Corpus
	model    *tfidf.Model
	router   *chat.Service
	answerer chat.Answerer
	store    db.Store // nil when the answer cache is disabled
}

type bootstrapOptions struct {
	// withCache connects the answer cache when enabled in config.
	withCache bool
	// defaultLevel applies when neither --log-level nor logging.level is set.
	defaultLevel string
}

func bootstrap(ctx context.Context, opts bootstrapOptions) (*app, error) {
	env := envFlag
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if faqsFlag != "" {
		cfg.Corpus.Path = faqsFlag
	}

	level := cfg.Logging.Level
	if opts.defaultLevel != "" {
		level = opts.defaultLevel
	}
	if logLevel != "" {
		level = logLevel
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting faqbot",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("corpus", cfg.Corpus.Path),
	)

	// Register query metrics explicitly (no init())
	metrics.RegisterQueryMetrics()

	c, err := corpusrepo.New(cfg.Corpus.Path, logger).Load()
	if err != nil {
		// Degrade to an empty corpus; the index build below decides whether that is fatal.
		logger.Error("Failed to load FAQ corpus", zap.String("path", cfg.Corpus.Path), zap.Error(err))
		c = corpus.New(nil, "")
	}

	normalizer := text.NewEnglish(text.WithFallback(cfg.Matching.FallbackTokens))
	texts := c.SearchTexts()
	docs := make([][]string, len(texts))
	for i, t := range texts {
		docs[i] = normalizer.Tokenize(t)
	}

	model, err := tfidf.Build(docs, tfidf.WithMinDF(cfg.Matching.MinDF))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("build index over %d records from %s: %w", c.Len(), cfg.Corpus.Path, err)
	}
	metrics.CorpusRecords.Set(float64(c.Len()))
	metrics.VocabularyTerms.Set(float64(model.VocabularySize()))
	logger.Info("Index built",
		zap.Int("records", c.Len()),
		zap.Int("vocabulary", model.VocabularySize()),
		zap.Int("min_df", model.MinDF()),
		zap.Strings("collections", c.Collections()),
	)

	chatOpts := chat.Options{
		Threshold:              cfg.Matching.Threshold,
		MaxCollectionQuestions: cfg.Matching.MaxCollectionQuestions,
		MaxServices:            cfg.Matching.MaxServices,
		PricingKeywords:        cfg.Matching.PricingKeywords,
		MaxQueryBytes:          cfg.Chat.MaxQueryBytes,
	}
	router := chat.New(c, normalizer, model, chatOpts)

	a := &app{
		env:    env,
		cfg:    cfg,
		logger: logger,
		corpus: c,
		model:  model,
		router: router,
	}

	// Answerer chain: Service -> Cached -> Instrumented
	var answerer chat.Answerer = router
	if opts.withCache && cfg.Cache.Enabled {
		store, err := connectCache(ctx, cfg.Cache, logger)
		if err != nil {
			// The cache is optional; queries are answered without it.
			logger.Warn("Answer cache unavailable", zap.Error(err))
		} else {
			a.store = store
			configHash := answercache.ConfigHash(chatOpts, model.MinDF(), normalizer.Fallback())
			answerer = answercache.New(answerer, store, c.Fingerprint(), configHash,
				time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.AnswerCacheTotal, logger)
		}
	}
	a.answerer = chat.NewInstrumentedAnswerer(answerer, logger)

	return a, nil
}

func connectCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	logger.Info("Connected to answer cache", zap.Strings("addrs", cfg.Addrs))
	return store, nil
}

// close releases the cache connection and flushes logs.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}

// answer runs one query through the chain, rendering failures and panics as a user-visible message.
func (a *app) answer(ctx context.Context, query string) (reply chat.Reply, ok bool) {
	defer func() {
		if rvr := recover(); rvr != nil {
			a.logger.Error("panic recovered", zap.Any("panic", rvr), zap.Stack("stacktrace"))
			reply, ok = chat.Reply{Text: "Error generating response: internal error"}, false
		}
	}()

	r, err := a.answerer.Answer(ctx, query)
	if err != nil {
		return chat.Reply{Text: "Error generating response: " + err.Error()}, false
	}
	return r, true
}
