package domain

import "errors"

var (
	// ErrCorpusLoad signals that the FAQ source could not be read or parsed.
	ErrCorpusLoad = errors.New("corpus load failed")
	// ErrFAQNotFound signals a missing FAQ record.
	ErrFAQNotFound = errors.New("faq not found")
	// ErrInvalidQuery signals a query rejected before matching (e.g. too long).
	ErrInvalidQuery = errors.New("invalid query")
)
