package retrieve

import (
	"context"

	"github.com/coastwise/strata-advisor/internal/domain"
)

// Searcher is the pool-side contract for similarity search.
type Searcher interface {
	Search(queryVec []float32, topK int, reportID string) []domain.ScoredDocument
}

// Embedder vectorizes query text into a unit-length embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
