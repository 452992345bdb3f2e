package answer

import (
	"context"

	"github.com/coastwise/strata-advisor/internal/domain"
)

// Retriever produces the merged grounding context for a question.
type Retriever interface {
	Retrieve(ctx context.Context, query, reportID string) ([]domain.ScoredDocument, error)
}

// Completer generates the answer from the assembled message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (domain.CompletionResult, error)
}
