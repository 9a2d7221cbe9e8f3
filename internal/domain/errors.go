package domain

import "errors"

var (
	// ErrInvalidRequest is returned when selection request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSearchUnavailable is returned when the live search provider fails.
	// The selection pipeline recovers from it locally; it never reaches callers.
	ErrSearchUnavailable = errors.New("live search provider unavailable")

	// ErrCatalogUnavailable is returned when the local catalog cannot be read
	ErrCatalogUnavailable = errors.New("catalog store unavailable")

	// ErrRerankRejected is returned when a reranker response fails validation
	// (unparseable, empty picks, or referencing an unknown candidate)
	ErrRerankRejected = errors.New("rerank response rejected")

	// ErrRerankUnavailable is returned when the reranking provider fails or times out
	ErrRerankUnavailable = errors.New("reranking provider unavailable")
)
