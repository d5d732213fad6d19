package intent

// Intent is the handler path a query was routed to.
type Intent string

// Intents in routing priority order.
const (
	Pricing    Intent = "pricing"
	Collection Intent = "collection"
	Generic    Intent = "generic"
)

// IsValid checks if the intent is one of the supported values.
func (i Intent) IsValid() bool {
	return i == Pricing || i == Collection || i == Generic
}

// All returns every intent in routing priority order.
func All() []Intent {
	return []Intent{Pricing, Collection, Generic}
}
