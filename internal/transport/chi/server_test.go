package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqmatch/internal/domain"
	"github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
	"github.com/kailas-cloud/faqmatch/internal/domain/intent"
	"github.com/kailas-cloud/faqmatch/internal/transport/render"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/faqmatch/internal/usecase/health"
)

// --- Mocks ---

type mockAnswerer struct {
	reply chat.Reply
	err   error
	query string
}

func (m *mockAnswerer) Answer(_ context.Context, query string) (chat.Reply, error) {
	m.query = query
	return m.reply, m.err
}

type panicAnswerer struct{}

func (panicAnswerer) Answer(context.Context, string) (chat.Reply, error) { panic("boom") }

type mockIndex struct{}

func (mockIndex) VocabularySize() int { return 42 }
func (mockIndex) MinDF() int          { return 2 }

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func testCorpus() *corpus.Corpus {
	return corpus.New([]faq.Record{
		faq.Reconstruct(faq.Fields{
			ID: 1, Question: "How do I wash linen?", Answer: "Cold wash.",
			Collection: "Casual Collection", PriceRange: "$45-$65",
			Services: []faq.Service{{Name: "Eco-Clean", Description: "Dry cleaning", Surcharge: "+$20"}},
		}),
		faq.Reconstruct(faq.Fields{ID: 2, Question: "Premium?", Answer: "Yes.", Collection: "Premium Designer"}),
		faq.Reconstruct(faq.Fields{ID: 3, Question: "Twill?", Answer: "Yes.", Collection: "Premium Designer"}),
	}, "cafe")
}

func newTestServer(a chat.Answerer) *Server {
	return NewServer(a, testCorpus(), mockIndex{}, render.NewMarkdown(),
		&mockHealth{report: healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{"corpus": healthuc.CheckOK}}},
		zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestChat_Success(t *testing.T) {
	a := &mockAnswerer{reply: chat.Reply{
		Text: "💰 **Price Range:** $45-$65\nCold wash.", Intent: intent.Generic,
		FAQID: 1, Score: 0.71, Matched: true,
	}}
	h := newTestServer(a).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", `{"query":"how do I wash linen"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if a.query != "how do I wash linen" {
		t.Errorf("query not forwarded: %q", a.query)
	}

	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Intent != "generic" || !resp.Matched {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.FAQID == nil || *resp.FAQID != 1 {
		t.Errorf("expected faq_id 1, got %v", resp.FAQID)
	}
	if resp.Score == nil || *resp.Score != 0.71 {
		t.Errorf("expected score 0.71, got %v", resp.Score)
	}
	if !strings.Contains(resp.HTML, "<strong>Price Range:</strong>") {
		t.Errorf("expected rendered html, got %q", resp.HTML)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestChat_MatchOnZeroID(t *testing.T) {
	a := &mockAnswerer{reply: chat.Reply{Text: "Cold wash.", Intent: intent.Generic, FAQID: 0, Score: 0.9, Matched: true}}
	h := newTestServer(a).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", `{"query":"wash"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FAQID == nil || *resp.FAQID != 0 {
		t.Errorf("expected faq_id 0, got %v", resp.FAQID)
	}
}

func TestChat_EmptyBodyIsEmptyQuery(t *testing.T) {
	a := &mockAnswerer{reply: chat.Reply{Text: chat.FallbackResponse(), Intent: intent.Generic}}
	h := newTestServer(a).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var resp ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FAQID != nil || resp.Score != nil || resp.Matched {
		t.Errorf("fallback must not carry match details: %+v", resp)
	}
}

func TestChat_MalformedBody(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", `{"query":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code != CodeBadRequest {
		t.Errorf("got code %q", errResp.Code)
	}
}

func TestChat_InvalidQuery(t *testing.T) {
	inner := fmt.Errorf("%w: query exceeds 2000 bytes", domain.ErrInvalidQuery)
	a := &mockAnswerer{err: fmt.Errorf("answer: %w", inner)}
	h := newTestServer(a).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", `{"query":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "Error generating response: invalid query: query exceeds 2000 bytes"
	if errResp.Message != want {
		t.Errorf("got message %q, want %q", errResp.Message, want)
	}
	if errResp.Code != CodeValidationFailed {
		t.Errorf("got code %q", errResp.Code)
	}
}

func TestChat_InternalErrorHidesDetails(t *testing.T) {
	a := &mockAnswerer{err: errors.New("score: got 3 scores for 4 documents")}
	h := newTestServer(a).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", `{"query":"x"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "scores") {
		t.Errorf("internal details leaked: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), ErrorPrefix) {
		t.Errorf("expected error prefix in %s", rr.Body.String())
	}
}

func TestChat_PanicRecovered(t *testing.T) {
	h := newTestServer(panicAnswerer{}).Router(Options{})

	rr := do(t, h, "POST", "/v1/chat", `{"query":"x"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json error, got %q", ct)
	}
}

func TestGetFAQ(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	rr := do(t, h, "GET", "/v1/faqs/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var resp FAQResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 1 || resp.PriceRange != "$45-$65" || len(resp.Services) != 1 {
		t.Errorf("unexpected faq %+v", resp)
	}
	if resp.Services[0].Surcharge != "+$20" {
		t.Errorf("unexpected service %+v", resp.Services[0])
	}
}

func TestGetFAQ_NotFound(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	rr := do(t, h, "GET", "/v1/faqs/99", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code != CodeFAQNotFound {
		t.Errorf("got code %q", errResp.Code)
	}
}

func TestGetFAQ_BadID(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	if rr := do(t, h, "GET", "/v1/faqs/abc", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestListCollections(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	rr := do(t, h, "GET", "/v1/collections", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var resp CollectionListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []CollectionResponse{{Name: "Casual Collection", Records: 1}, {Name: "Premium Designer", Records: 2}}
	if len(resp.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(resp.Items), len(want))
	}
	for i := range want {
		if resp.Items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, resp.Items[i], want[i])
		}
	}
}

func TestGetIndex(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	rr := do(t, h, "GET", "/v1/index", "")
	var resp IndexResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Records != 3 || resp.VocabularySize != 42 || resp.MinDF != 2 || resp.Fingerprint != "cafe" {
		t.Errorf("unexpected index %+v", resp)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		status healthuc.Status
		want   int
	}{
		{"healthy", healthuc.Healthy, http.StatusOK},
		{"degraded", healthuc.Degraded, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewServer(&mockAnswerer{}, testCorpus(), nil, render.NewMarkdown(),
				&mockHealth{report: healthuc.Report{Status: tc.status, Checks: map[string]healthuc.CheckResult{}}}, nil)
			rr := do(t, s.Router(Options{APIKeys: []string{"secret"}}), "GET", "/health", "")
			if rr.Code != tc.want {
				t.Errorf("got %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestRouter_AuthEnforced(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{APIKeys: []string{"secret"}})

	if rr := do(t, h, "GET", "/v1/collections", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rr.Code)
	}
	if rr := do(t, h, "GET", "/metrics", ""); rr.Code != http.StatusOK {
		t.Errorf("metrics must be exempt, got %d", rr.Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{AllowedOrigins: []string{"https://shop.example.com"}})

	req := httptest.NewRequest("OPTIONS", "/v1/chat", http.NoBody)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Errorf("got allow-origin %q", got)
	}
}

func TestRouter_NotFound(t *testing.T) {
	h := newTestServer(&mockAnswerer{}).Router(Options{})

	if rr := do(t, h, "GET", "/nope", ""); rr.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rr.Code)
	}
}
