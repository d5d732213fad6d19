package faq

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of the last_updated field.
const DateLayout = "2006-01-02"

// Service is an optional paid service attached to a FAQ record.
type Service struct {
	Name        string
	Description string
	Surcharge   string
}

// Record is a single question/answer unit (immutable value object).
type Record struct {
	id          int
	question    string
	answer      string
	tags        []string
	collection  string
	category    string
	priceRange  string
	services    []Service
	lastUpdated time.Time
}

// Fields carries the raw values used to build a Record.
// Zero values mean "absent" for every optional field.
type Fields struct {
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

// New validates and creates a Record. Question and answer are required.
func New(f Fields) (Record, error) {
	if strings.TrimSpace(f.Question) == "" {
		return Record{}, fmt.Errorf("faq %d: question is required", f.ID)
	}
	if strings.TrimSpace(f.Answer) == "" {
		return Record{}, fmt.Errorf("faq %d: answer is required", f.ID)
	}
	return Reconstruct(f), nil
}

// Reconstruct creates a Record without validation.
func Reconstruct(f Fields) Record {
	return Record{
		id:          f.ID,
		question:    f.Question,
		answer:      f.Answer,
		tags:        cloneStrings(f.Tags),
		collection:  f.Collection,
		category:    f.Category,
		priceRange:  f.PriceRange,
		services:    cloneServices(f.Services),
		lastUpdated: f.LastUpdated,
	}
}

// ID returns the record identifier.
func (r *Record) ID() int { return r.id }

// Question returns the FAQ question.
func (r *Record) Question() string { return r.question }

// Answer returns the FAQ answer body.
func (r *Record) Answer() string { return r.answer }

// Tags returns a copy of the tags.
func (r *Record) Tags() []string { return cloneStrings(r.tags) }

// Collection returns the collection name, or "" when absent.
func (r *Record) Collection() string { return r.collection }

// Category returns the category, or "" when absent.
func (r *Record) Category() string { return r.category }

// PriceRange returns the price range, or "" when absent.
func (r *Record) PriceRange() string { return r.priceRange }

// HasPriceRange reports whether a price range is set.
func (r *Record) HasPriceRange() bool { return r.priceRange != "" }

// Services returns a copy of the attached services.
func (r *Record) Services() []Service { return cloneServices(r.services) }

// LastUpdated returns the last update date; zero when absent.
func (r *Record) LastUpdated() time.Time { return r.lastUpdated }

// SearchText concatenates the fields that feed the search document:
// question, answer, tags, collection, price range and one SERVICE_<name> marker per service.
func (r *Record) SearchText() string {
	markers := make([]string, len(r.services))
	for i, s := range r.services {
		markers[i] = "SERVICE_" + strings.ReplaceAll(s.Name, " ", "_")
	}
	return strings.Join([]string{
		r.question,
		r.answer,
		strings.Join(r.tags, " "),
		r.collection,
		r.priceRange,
		strings.Join(markers, " "),
	}, " ")
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

func cloneServices(s []Service) []Service {
	if s == nil {
		return nil
	}
	c := make([]Service, len(s))
	copy(c, s)
	return c
}
