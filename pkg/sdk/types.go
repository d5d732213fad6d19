package faqbot

import "time"

// Intent is the handler a query was routed to.
type Intent string

// Intent constants in routing priority order.
const (
	IntentPricing    Intent = "pricing"
	IntentCollection Intent = "collection"
	IntentGeneric    Intent = "generic"
)

// Reply is the formatted answer plus routing details.
type Reply struct {
	Text    string
	Intent  Intent
	FAQID   int     // set when the generic handler matched a record
	Score   float64 // best cosine similarity on the generic path
	Matched bool
}

// Service is an optional paid service attached to a FAQ.
type Service struct {
	Name        string
	Description string
	Surcharge   string
}

// FAQ is a question/answer record. Question and Answer are required.
type FAQ struct {
	ID          int
	Question    string
	Answer      string
	Tags        []string
	Collection  string
	Category    string
	PriceRange  string
	Services    []Service
	LastUpdated time.Time
}

// CollectionInfo is a collection name with its record count.
type CollectionInfo struct {
	Name    string
	Records int
}

// IndexInfo describes the fitted matching model.
type IndexInfo struct {
	Records        int
	VocabularySize int
	MinDF          int
	Fingerprint    string
}
