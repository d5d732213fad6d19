package health

import "context"

// CorpusStats reports the size of the loaded FAQ corpus.
type CorpusStats interface {
	Len() int
}

// CachePinger checks answer cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
