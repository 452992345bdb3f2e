// Package answer orchestrates retrieval, prompt assembly, and generation into
// the question-answering operation.
package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coastwise/strata-advisor/internal/domain"
	"github.com/coastwise/strata-advisor/internal/logger"
	"github.com/coastwise/strata-advisor/internal/prompt"
)

// Service answers questions grounded in retrieved context.
type Service struct {
	retriever Retriever
	completer Completer
}

// New creates an answer service.
func New(retriever Retriever, completer Completer) *Service {
	return &Service{retriever: retriever, completer: completer}
}

// Answer retrieves context for the question, assembles the prompt (with the
// caller's history spliced in verbatim), and runs one completion. The returned
// source strings align index-for-index with the context blocks the model saw.
// No retrieval results is not an error; the model is invoked with a
// placeholder context and may state it lacks grounding.
func (s *Service) Answer(
	ctx context.Context, question string, history []domain.ChatMessage, reportID string,
) (string, []string, error) {
	merged, err := s.retriever.Retrieve(ctx, question, reportID)
	if err != nil {
		return "", nil, fmt.Errorf("retrieve context: %w", err)
	}

	messages := prompt.Assemble(question, prompt.Context(merged), history, reportID != "")

	res, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}

	logger.FromContext(ctx).Info("question answered",
		zap.String("report_id", reportID),
		zap.Int("context_docs", len(merged)),
		zap.Int("history_len", len(history)),
		zap.Int("completion_tokens", res.CompletionTokens),
	)

	return res.Content, sourceDescriptions(merged), nil
}

// sourceDescriptions renders one human-readable provenance string per merged
// result, in retrieval order.
func sourceDescriptions(merged []domain.ScoredDocument) []string {
	sources := make([]string, len(merged))
	for i, r := range merged {
		if r.FromReport() {
			sources[i] = fmt.Sprintf("%s (report_id=%s)", r.Filename, r.ReportID)
		} else {
			sources[i] = fmt.Sprintf("%s (id=%s)", r.Title, r.ID)
		}
	}
	return sources
}
