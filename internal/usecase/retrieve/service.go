// Package retrieve merges similarity search results from the report and base
// knowledge pools for one query.
package retrieve

import (
	"context"
	"fmt"

	"github.com/coastwise/strata-advisor/internal/domain"
)

// Per-query retrieval caps. Report chunks get the larger share: a scoped
// question is mostly about the uploaded report, with a little generic
// knowledge mixed in.
const (
	reportTopK = 4
	baseTopK   = 2
)

// Service embeds the query once and fans it out over the two pools.
type Service struct {
	base    Searcher
	reports Searcher
	embed   Embedder
}

// New creates a retrieval service over the base and report pools.
func New(base, reports Searcher, embed Embedder) *Service {
	return &Service{base: base, reports: reports, embed: embed}
}

// Retrieve returns the merged context documents for a query. When reportID is
// non-empty the report pool is searched first, filtered to that report; the
// base pool is always searched, unfiltered. Report results precede base
// results regardless of score; the two pools are never re-ranked against
// each other.
func (s *Service) Retrieve(ctx context.Context, query, reportID string) ([]domain.ScoredDocument, error) {
	res, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	queryVec := res.Embedding

	var merged []domain.ScoredDocument
	if reportID != "" {
		merged = s.reports.Search(queryVec, reportTopK, reportID)
	}
	merged = append(merged, s.base.Search(queryVec, baseTopK, "")...)
	return merged, nil
}
