package corpus

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
)

// fileRow is the top-level shape of the FAQ source file.
type fileRow struct {
	FAQs []faqRow `json:"faqs" yaml:"faqs"`
}

// faqRow is the serialized representation of a FAQ record.
// Services are [name, description, surcharge] triples.
type faqRow struct {
	ID          int        `json:"id" yaml:"id"`
	Question    string     `json:"question" yaml:"question"`
	Answer      string     `json:"answer" yaml:"answer"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Collection  string     `json:"collection" yaml:"collection"`
	Category    string     `json:"category" yaml:"category"`
	PriceRange  string     `json:"price_range" yaml:"price_range"`
	Services    [][]string `json:"services" yaml:"services"`
	LastUpdated string     `json:"last_updated" yaml:"last_updated"`
}

// servicesFromRow converts service triples, rejecting entries that are not 3 elements long.
func servicesFromRow(rows [][]string) ([]faq.Service, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]faq.Service, len(rows))
	for i, s := range rows {
		if len(s) != 3 {
			return nil, fmt.Errorf("service %d: expected [name, description, surcharge], got %d elements", i, len(s))
		}
		out[i] = faq.Service{Name: s[0], Description: s[1], Surcharge: s[2]}
	}
	return out, nil
}

// fieldsFromRow maps a row to domain fields. An unparsable date is treated as absent.
func fieldsFromRow(r faqRow) (faq.Fields, error) {
	services, err := servicesFromRow(r.Services)
	if err != nil {
		return faq.Fields{}, fmt.Errorf("faq %d: %w", r.ID, err)
	}
	var updated time.Time
	if r.LastUpdated != "" {
		if t, perr := time.Parse(faq.DateLayout, r.LastUpdated); perr == nil {
			updated = t
		}
	}
	return faq.Fields{
		ID:          r.ID,
		Question:    r.Question,
		Answer:      r.Answer,
		Tags:        r.Tags,
		Collection:  r.Collection,
		Category:    r.Category,
		PriceRange:  r.PriceRange,
		Services:    services,
		LastUpdated: updated,
	}, nil
}
