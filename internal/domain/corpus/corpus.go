package corpus

import "github.com/kailas-cloud/faqmatch/internal/domain/faq"

// Corpus is the ordered, read-only set of FAQ records loaded at startup.
type Corpus struct {
	records     []faq.Record
	byID        map[int]int
	collections []string
	fingerprint string
}

// New creates a Corpus. Distinct non-empty collection names are derived once,
// in order of first appearance.
func New(records []faq.Record, fingerprint string) *Corpus {
	c := &Corpus{
		records:     make([]faq.Record, len(records)),
		byID:        make(map[int]int, len(records)),
		fingerprint: fingerprint,
	}
	copy(c.records, records)

	seen := make(map[string]struct{})
	for i := range c.records {
		r := &c.records[i]
		if _, dup := c.byID[r.ID()]; !dup {
			c.byID[r.ID()] = i
		}
		name := r.Collection()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		c.collections = append(c.collections, name)
	}
	return c
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// At returns the record at index i in corpus order.
func (c *Corpus) At(i int) faq.Record { return c.records[i] }

// Records returns a copy of all records in corpus order.
func (c *Corpus) Records() []faq.Record {
	out := make([]faq.Record, len(c.records))
	copy(out, c.records)
	return out
}

// ByID looks up a record by identifier. The first record wins on duplicate IDs.
func (c *Corpus) ByID(id int) (faq.Record, bool) {
	i, ok := c.byID[id]
	if !ok {
		return faq.Record{}, false
	}
	return c.records[i], true
}

// Collections returns the distinct collection names.
func (c *Corpus) Collections() []string {
	out := make([]string, len(c.collections))
	copy(out, c.collections)
	return out
}

// InCollection returns the records of a collection in corpus order.
func (c *Corpus) InCollection(name string) []faq.Record {
	var out []faq.Record
	for i := range c.records {
		if c.records[i].Collection() == name {
			out = append(out, c.records[i])
		}
	}
	return out
}

// SearchTexts returns the raw search text of every record, aligned with corpus order.
func (c *Corpus) SearchTexts() []string {
	out := make([]string, len(c.records))
	for i := range c.records {
		out[i] = c.records[i].SearchText()
	}
	return out
}

// Fingerprint identifies the source the corpus was loaded from (hex SHA-256).
func (c *Corpus) Fingerprint() string { return c.fingerprint }
