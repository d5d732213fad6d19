package corpus

import (
	"testing"

	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
)

func rec(id int, collection string) faq.Record {
	return faq.Reconstruct(faq.Fields{ID: id, Question: "q", Answer: "a", Collection: collection})
}

func TestNew_CollectionsFirstAppearanceOrder(t *testing.T) {
	c := New([]faq.Record{
		rec(1, "Luxury"),
		rec(2, "Casual"),
		rec(3, ""),
		rec(4, "Luxury"),
		rec(5, "Premium"),
	}, "fp")

	got := c.Collections()
	want := []string{"Luxury", "Casual", "Premium"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collections[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCorpus_ByID(t *testing.T) {
	c := New([]faq.Record{rec(1, "A"), rec(2, "B"), rec(2, "C")}, "")

	r, ok := c.ByID(2)
	if !ok {
		t.Fatal("expected record 2")
	}
	if r.Collection() != "B" {
		t.Errorf("expected first record on duplicate id, got %q", r.Collection())
	}
	if _, ok := c.ByID(99); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestCorpus_InCollection(t *testing.T) {
	c := New([]faq.Record{rec(1, "A"), rec(2, "B"), rec(3, "A")}, "")
	got := c.InCollection("A")
	if len(got) != 2 || got[0].ID() != 1 || got[1].ID() != 3 {
		t.Errorf("unexpected records: %+v", got)
	}
	if len(c.InCollection("missing")) != 0 {
		t.Error("expected no records")
	}
}

func TestCorpus_Empty(t *testing.T) {
	c := New(nil, "")
	if c.Len() != 0 {
		t.Errorf("expected empty corpus, got %d", c.Len())
	}
	if len(c.Collections()) != 0 {
		t.Error("expected no collections")
	}
	if len(c.SearchTexts()) != 0 {
		t.Error("expected no search texts")
	}
}
