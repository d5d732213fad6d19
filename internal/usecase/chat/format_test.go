package chat

import (
	"testing"

	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
)

func TestFormatRecord_Full(t *testing.T) {
	r := faq.Reconstruct(faq.Fields{
		ID: 1, Question: "q", Answer: "Body",
		PriceRange: "$45-$65", Services: fixtureServices,
	})
	got := FormatRecord(&r, 2)
	want := "💰 **Price Range:** $45-$65\nBody\n\n**Services Available:**\n- VIP Fitting (+$50)\n- Eco-Clean (+$20)"
	if got != want {
		t.Errorf("FormatRecord() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatRecord_AnswerOnly(t *testing.T) {
	r := faq.Reconstruct(faq.Fields{ID: 1, Question: "q", Answer: "Body"})
	if got := FormatRecord(&r, 2); got != "Body" {
		t.Errorf("FormatRecord() = %q, want %q", got, "Body")
	}
}

func TestFormatRecord_ServiceCap(t *testing.T) {
	r := faq.Reconstruct(faq.Fields{ID: 1, Question: "q", Answer: "Body", Services: fixtureServices})
	got := FormatRecord(&r, 3)
	want := "Body\n\n**Services Available:**\n- VIP Fitting (+$50)\n- Eco-Clean (+$20)\n- Monogramming (+$35)"
	if got != want {
		t.Errorf("FormatRecord() = %q, want %q", got, want)
	}
}

func TestFallbackResponse(t *testing.T) {
	want := "Here are some suggestions:\n" +
		"- Ask about our Casual, Premium, or Luxury collections\n" +
		"- Need price ranges? Try: 'What's the cost of premium shirts?'\n" +
		"- Ask about services like alterations or monogramming"
	if got := FallbackResponse(); got != want {
		t.Errorf("FallbackResponse() = %q", got)
	}
}

func TestFormatCollectionNotFound(t *testing.T) {
	if got := formatCollectionNotFound("Luxury"); got != "Sorry, we couldn't find details about Luxury" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestFormatPricingBlock_DefaultCollectionName(t *testing.T) {
	r := faq.Reconstruct(faq.Fields{ID: 1, Question: "q", Answer: "a", PriceRange: "$150+"})
	want := "**Collection**\nPrice Range: $150+\nInclusions: a"
	if got := formatPricingBlock(&r); got != want {
		t.Errorf("formatPricingBlock() = %q, want %q", got, want)
	}
}
