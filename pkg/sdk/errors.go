package faqbot

import (
	"github.com/kailas-cloud/faqmatch/internal/domain"
	"github.com/kailas-cloud/faqmatch/internal/tfidf"
)

// Sentinel errors re-exported from the internal layers.
// Use errors.Is() to check.
var (
	ErrCorpusLoad      = domain.ErrCorpusLoad
	ErrFAQNotFound     = domain.ErrFAQNotFound
	ErrInvalidQuery    = domain.ErrInvalidQuery
	ErrEmptyCorpus     = tfidf.ErrEmptyCorpus
	ErrEmptyVocabulary = tfidf.ErrEmptyVocabulary
)
