package chi

import (
	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
	"github.com/kailas-cloud/faqmatch/internal/domain/intent"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeFAQNotFound      ErrorCode = "faq_not_found"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse carries the markdown reply, its HTML rendering and routing details.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	HTML    string   `json:"html"`
	Intent  string   `json:"intent"`
	FAQID   *int     `json:"faq_id,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Matched bool     `json:"matched"`
}

// ServiceResponse is an optional paid service of a FAQ.
type ServiceResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Surcharge   string `json:"surcharge"`
}

// FAQResponse is a single FAQ record.
type FAQResponse struct {
	ID          int               `json:"id"`
	Question    string            `json:"question"`
	Answer      string            `json:"answer"`
	Tags        []string          `json:"tags,omitempty"`
	Collection  string            `json:"collection,omitempty"`
	Category    string            `json:"category,omitempty"`
	PriceRange  string            `json:"price_range,omitempty"`
	Services    []ServiceResponse `json:"services,omitempty"`
	LastUpdated string            `json:"last_updated,omitempty"`
}

// CollectionResponse is a collection name with its record count.
type CollectionResponse struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// CollectionListResponse wraps the collection list.
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
}

// IndexResponse describes the fitted matching model.
type IndexResponse struct {
	Records        int    `json:"records"`
	VocabularySize int    `json:"vocabulary_size"`
	MinDF          int    `json:"min_df"`
	Fingerprint    string `json:"fingerprint,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func chatToResponse(reply chat.Reply, html string) ChatResponse {
	resp := ChatResponse{
		Answer:  reply.Text,
		HTML:    html,
		Intent:  string(reply.Intent),
		Matched: reply.Matched,
	}
	// 0 is a valid FAQ id; presence follows the generic match, not the value.
	if reply.Matched && reply.Intent == intent.Generic {
		id := reply.FAQID
		resp.FAQID = &id
	}
	if reply.Score != 0 {
		score := reply.Score
		resp.Score = &score
	}
	return resp
}

func faqToResponse(r *faq.Record) FAQResponse {
	resp := FAQResponse{
		ID:         r.ID(),
		Question:   r.Question(),
		Answer:     r.Answer(),
		Tags:       r.Tags(),
		Collection: r.Collection(),
		Category:   r.Category(),
		PriceRange: r.PriceRange(),
	}
	for _, s := range r.Services() {
		resp.Services = append(resp.Services, ServiceResponse{
			Name:        s.Name,
			Description: s.Description,
			Surcharge:   s.Surcharge,
		})
	}
	if !r.LastUpdated().IsZero() {
		resp.LastUpdated = r.LastUpdated().Format(faq.DateLayout)
	}
	return resp
}
