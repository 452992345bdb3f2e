package ingest

import (
	"context"

	"github.com/coastwise/strata-advisor/internal/domain"
)

// Appender is the pool-side contract for storing report chunks.
type Appender interface {
	Add(doc domain.Document, vec []float32)
}

// BatchEmbedder vectorizes all chunks of a report in one API call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
