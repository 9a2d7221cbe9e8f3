package domain

import "context"

// SearchProvider defines the interface for a live product search source.
// Implementations may return an empty slice; errors are recovered by the
// caller and treated as zero candidates from this source.
type SearchProvider interface {
	Search(ctx context.Context, query PersonaQuery) ([]RawRecord, error)
}

// CatalogStore defines the read interface for the local fallback catalog.
// ListProducts performs no filtering; the selection pipeline normalizes and
// filters the rows itself. Implementations must support concurrent readers.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]RawRecord, error)
}

// Reranker defines the interface for the optional semantic reranking
// collaborator. Responses are untrusted: the caller validates every pick
// against its shortlist and discards the whole result on any mismatch.
type Reranker interface {
	Rerank(ctx context.Context, shortlist []Candidate, req *SelectionRequest) ([]RerankPick, error)
}
