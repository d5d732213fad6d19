package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/faqmatch/internal/domain"
)

const sampleJSON = `{
  "faqs": [
    {
      "id": 1,
      "category": "🎨 Casual Collection",
      "tags": ["linen", "Slim Fit", "Casual"],
      "question": "Can I get linen shirts in Slim Fit?",
      "answer": "Yes, linen is available in every fit.",
      "price_range": "$45-$65",
      "collection": "🎨 Casual Collection",
      "services": [
        ["VIP Fitting", "Champagne service with our master tailor", "+$50"],
        ["Eco-Clean", "Sustainable dry cleaning package", "+$20"]
      ],
      "last_updated": "2025-01-31"
    },
    {
      "id": 2,
      "question": "Do you ship abroad?",
      "answer": "We ship worldwide."
    },
    {
      "id": 3,
      "question": "Missing answer"
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	c, err := New(writeFile(t, "faqs.json", sampleJSON), nil).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 records (invalid one skipped), got %d", c.Len())
	}

	first := c.At(0)
	if first.PriceRange() != "$45-$65" {
		t.Errorf("unexpected price range %q", first.PriceRange())
	}
	svcs := first.Services()
	if len(svcs) != 2 || svcs[0].Name != "VIP Fitting" || svcs[0].Surcharge != "+$50" {
		t.Errorf("unexpected services: %+v", svcs)
	}
	if first.LastUpdated().Format("2006-01-02") != "2025-01-31" {
		t.Errorf("unexpected last_updated: %v", first.LastUpdated())
	}

	second := c.At(1)
	if second.HasPriceRange() || second.Tags() != nil || second.Services() != nil {
		t.Error("optional fields must default to empty")
	}
	if c.Fingerprint() == "" {
		t.Error("expected fingerprint")
	}
	if got := c.Collections(); len(got) != 1 || got[0] != "🎨 Casual Collection" {
		t.Errorf("unexpected collections: %v", got)
	}
}

func TestLoad_YAML(t *testing.T) {
	content := `faqs:
  - id: 10
    question: How should I care for silk?
    answer: Dry clean only.
    collection: Premium Designer
    services:
      - [Monogramming, Initial embroidery, "+$35"]
`
	c, err := New(writeFile(t, "faqs.yaml", content), nil).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("unexpected corpus: %d records", c.Len())
	}
	rec := c.At(0)
	if rec.ID() != 10 {
		t.Fatalf("unexpected corpus: %d records", c.Len())
	}
	if s := rec.Services(); len(s) != 1 || s[0].Surcharge != "+$35" {
		t.Errorf("unexpected services: %+v", s)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.json"), nil).Load()
	if !errors.Is(err, domain.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := New(writeFile(t, "bad.json", `{"faqs": [`), nil).Load()
	if !errors.Is(err, domain.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
}

func TestLoad_BadServiceTriple(t *testing.T) {
	content := `{"faqs":[{"id":1,"question":"q","answer":"a","services":[["only-name"]]}]}`
	_, err := New(writeFile(t, "bad.json", content), nil).Load()
	if !errors.Is(err, domain.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
}

func TestParse_NoFAQsKey(t *testing.T) {
	records, err := Parse([]byte(`{}`), FormatJSON, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty list, got %d", len(records))
	}
}

func TestParse_BadDateIsAbsent(t *testing.T) {
	records, err := Parse([]byte(`{"faqs":[{"id":1,"question":"q","answer":"a","last_updated":"yesterday"}]}`),
		FormatJSON, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !records[0].LastUpdated().IsZero() {
		t.Error("expected zero date")
	}
}
