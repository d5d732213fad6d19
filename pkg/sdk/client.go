package faqbot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/faqmatch/internal/db"
	dbRedis "github.com/kailas-cloud/faqmatch/internal/db/redis"
	"github.com/kailas-cloud/faqmatch/internal/domain"
	domcorpus "github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
	"github.com/kailas-cloud/faqmatch/internal/repository/answercache"
	corpusrepo "github.com/kailas-cloud/faqmatch/internal/repository/corpus"
	"github.com/kailas-cloud/faqmatch/internal/text"
	"github.com/kailas-cloud/faqmatch/internal/tfidf"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/faqmatch/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = time.Hour
)

// Client is the faqbot SDK entry point. It is safe for concurrent use.
type Client struct {
	corpus    *domcorpus.Corpus
	model     *tfidf.Model
	answerer  chat.Answerer
	store     db.Store // nil without WithValkey/WithRedis
	healthSvc healthUseCase
	obs       *observer
}

// New loads the corpus, fits the matching model and, when configured,
// connects the reply cache. The provided context bounds the cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		minDF:                  tfidf.DefaultMinDF,
		threshold:              chat.DefaultThreshold,
		maxCollectionQuestions: chat.DefaultMaxCollectionQuestions,
		maxServices:            chat.DefaultMaxServices,
		pricingKeywords:        chat.DefaultPricingKeywords,
		fallbackTokens:         text.DefaultFallback,
		cacheTTL:               defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	c, err := loadCorpus(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	normalizer := text.NewEnglish(text.WithFallback(cfg.fallbackTokens))
	texts := c.SearchTexts()
	docs := make([][]string, len(texts))
	for i, t := range texts {
		docs[i] = normalizer.Tokenize(t)
	}
	model, err := tfidf.Build(docs, tfidf.WithMinDF(cfg.minDF))
	if err != nil {
		return nil, fmt.Errorf("faqbot: build index: %w", err)
	}

	chatOpts := chat.Options{
		Threshold:              cfg.threshold,
		MaxCollectionQuestions: cfg.maxCollectionQuestions,
		MaxServices:            cfg.maxServices,
		PricingKeywords:        cfg.pricingKeywords,
		MaxQueryBytes:          cfg.maxQueryBytes,
	}
	var answerer chat.Answerer = chat.New(c, normalizer, model, chatOpts)

	client := &Client{corpus: c, model: model, obs: obs}

	if len(cfg.cacheAddrs) > 0 {
		store, err := connectStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client.store = store
		configHash := answercache.ConfigHash(chatOpts, model.MinDF(), normalizer.Fallback())
		answerer = answercache.New(answerer, store, c.Fingerprint(), configHash, cfg.cacheTTL, nil, nil)
	}
	client.answerer = answerer
	client.healthSvc = healthuc.New(c, client.store)
	return client, nil
}

func loadCorpus(cfg *clientConfig) (*domcorpus.Corpus, error) {
	switch {
	case cfg.corpusPath != "" && cfg.records != nil:
		return nil, errors.New("faqbot: WithCorpusFile and WithRecords are mutually exclusive")
	case cfg.corpusPath != "":
		c, err := corpusrepo.New(cfg.corpusPath, nil).Load()
		if err != nil {
			return nil, fmt.Errorf("faqbot: %w", err)
		}
		return c, nil
	case cfg.records != nil:
		return corpusFromRecords(cfg.records)
	default:
		return nil, errors.New("faqbot: corpus required (use WithCorpusFile or WithRecords)")
	}
}

// corpusFromRecords validates in-memory FAQs. The fingerprint is the SHA-256
// of their JSON encoding, so equal record sets share cached replies.
func corpusFromRecords(in []FAQ) (*domcorpus.Corpus, error) {
	records := make([]faq.Record, 0, len(in))
	for i := range in {
		rec, err := faq.New(faqToFields(&in[i]))
		if err != nil {
			return nil, fmt.Errorf("faqbot: %w: %w", domain.ErrCorpusLoad, err)
		}
		records = append(records, rec)
	}

	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("faqbot: fingerprint records: %w", err)
	}
	sum := sha256.Sum256(data)
	return domcorpus.New(records, hex.EncodeToString(sum[:])), nil
}

func connectStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.cacheAddrs,
		Password: cfg.cachePassword,
	})
	if err != nil {
		return nil, fmt.Errorf("faqbot: create cache store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("faqbot: cache not ready: %w", err)
	}
	return store, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ask answers one query. Errors wrap ErrInvalidQuery for rejected input.
func (c *Client) Ask(ctx context.Context, query string) (reply Reply, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err) }()

	r, err := c.answerer.Answer(ctx, query)
	if err != nil {
		return Reply{}, fmt.Errorf("ask: %w", err)
	}
	reply = replyFromChat(r)
	c.obs.reply(reply)
	return reply, nil
}

// FAQ returns the record with the given ID or ErrFAQNotFound.
func (c *Client) FAQ(id int) (out FAQ, err error) {
	start := time.Now()
	defer func() { c.obs.observe("faq", start, err) }()

	rec, ok := c.corpus.ByID(id)
	if !ok {
		return FAQ{}, fmt.Errorf("faq %d: %w", id, ErrFAQNotFound)
	}
	return faqFromRecord(&rec), nil
}

// Collections lists the collection names in order of first appearance.
func (c *Client) Collections() []CollectionInfo {
	names := c.corpus.Collections()
	out := make([]CollectionInfo, len(names))
	for i, n := range names {
		out[i] = CollectionInfo{Name: n, Records: len(c.corpus.InCollection(n))}
	}
	return out
}

// Index describes the fitted model.
func (c *Client) Index() IndexInfo {
	return IndexInfo{
		Records:        c.corpus.Len(),
		VocabularySize: c.model.VocabularySize(),
		MinDF:          c.model.MinDF(),
		Fingerprint:    c.corpus.Fingerprint(),
	}
}

func replyFromChat(r chat.Reply) Reply {
	return Reply{
		Text:    r.Text,
		Intent:  Intent(r.Intent),
		FAQID:   r.FAQID,
		Score:   r.Score,
		Matched: r.Matched,
	}
}

func faqToFields(f *FAQ) faq.Fields {
	services := make([]faq.Service, len(f.Services))
	for i, s := range f.Services {
		services[i] = faq.Service{Name: s.Name, Description: s.Description, Surcharge: s.Surcharge}
	}
	return faq.Fields{
		ID:          f.ID,
		Question:    f.Question,
		Answer:      f.Answer,
		Tags:        f.Tags,
		Collection:  f.Collection,
		Category:    f.Category,
		PriceRange:  f.PriceRange,
		Services:    services,
		LastUpdated: f.LastUpdated,
	}
}

func faqFromRecord(r *faq.Record) FAQ {
	in := r.Services()
	services := make([]Service, len(in))
	for i, s := range in {
		services[i] = Service{Name: s.Name, Description: s.Description, Surcharge: s.Surcharge}
	}
	return FAQ{
		ID:          r.ID(),
		Question:    r.Question(),
		Answer:      r.Answer(),
		Tags:        r.Tags(),
		Collection:  r.Collection(),
		Category:    r.Category(),
		PriceRange:  r.PriceRange(),
		Services:    services,
		LastUpdated: r.LastUpdated(),
	}
}
