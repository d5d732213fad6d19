package chat

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/faqmatch/internal/domain/faq"
)

// Suggestions are shown when no FAQ matches a generic query.
var Suggestions = []string{
	"Ask about our Casual, Premium, or Luxury collections",
	"Need price ranges? Try: 'What's the cost of premium shirts?'",
	"Ask about services like alterations or monogramming",
}

// FallbackPricing is returned when a pricing query names no known price range.
const FallbackPricing = "Our collections are priced at:\n" +
	"- 🎨 Casual: $45-$65\n" +
	"- 🌟 Premium: $85-$120\n" +
	"- 🎁 Luxury: $150+"

// FormatRecord renders a matched record: price range, answer body, then up
// to maxServices services as "name (surcharge)".
func FormatRecord(r *faq.Record, maxServices int) string {
	lines := make([]string, 0, 4)
	if r.HasPriceRange() {
		lines = append(lines, "💰 **Price Range:** "+r.PriceRange())
	}
	lines = append(lines, r.Answer())

	services := r.Services()
	if len(services) > 0 {
		lines = append(lines, "\n**Services Available:**")
		if maxServices >= 0 && len(services) > maxServices {
			services = services[:maxServices]
		}
		for _, s := range services {
			lines = append(lines, fmt.Sprintf("- %s (%s)", s.Name, s.Surcharge))
		}
	}
	return strings.Join(lines, "\n")
}

// FallbackResponse renders the generic no-match reply.
func FallbackResponse() string {
	var b strings.Builder
	b.WriteString("Here are some suggestions:")
	for _, s := range Suggestions {
		b.WriteString("\n- ")
		b.WriteString(s)
	}
	return b.String()
}

func formatPricingBlock(r *faq.Record) string {
	name := r.Collection()
	if name == "" {
		name = "Collection"
	}
	return fmt.Sprintf("**%s**\nPrice Range: %s\nInclusions: %s", name, r.PriceRange(), r.Answer())
}

func formatCollection(name string, questions []string) string {
	lines := make([]string, 0, len(questions)+2)
	lines = append(lines, fmt.Sprintf("✨ **%s** ✨", name), "Featured in this collection:")
	for _, q := range questions {
		lines = append(lines, "- "+q)
	}
	return strings.Join(lines, "\n")
}

func formatCollectionNotFound(name string) string {
	return fmt.Sprintf("Sorry, we couldn't find details about %s", name)
}
