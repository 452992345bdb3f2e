// Package ingest turns uploaded report text into scoped, searchable chunks in
// the report pool.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coastwise/strata-advisor/internal/domain"
	"github.com/coastwise/strata-advisor/internal/domain/chunk"
	"github.com/coastwise/strata-advisor/internal/logger"
)

// Service chunks, embeds, and stores report text.
type Service struct {
	reports  Appender
	embed    BatchEmbedder
	maxChars int
	overlap  int
}

// New creates an ingestion service writing into the report pool.
func New(reports Appender, embed BatchEmbedder) *Service {
	return &Service{
		reports:  reports,
		embed:    embed,
		maxChars: chunk.DefaultMaxChars,
		overlap:  chunk.DefaultOverlap,
	}
}

// WithChunking overrides the chunk window size and overlap.
func (s *Service) WithChunking(maxChars, overlap int) *Service {
	if maxChars > 0 {
		s.maxChars = maxChars
	}
	if overlap >= 0 {
		s.overlap = overlap
	}
	return s
}

// IngestReport chunks the extracted report text, embeds all chunks in one
// batch call, and appends each chunk to the report pool tagged with a fresh
// report ID. Text that chunks to nothing yields a valid, inert report ID with
// nothing stored; an empty report is legal, not an error.
func (s *Service) IngestReport(ctx context.Context, filename, text string) (string, error) {
	reportID := uuid.NewString()

	chunks := chunk.Split(text, s.maxChars, s.overlap)
	if len(chunks) == 0 {
		logger.FromContext(ctx).Info("report ingested empty",
			zap.String("report_id", reportID),
			zap.String("filename", filename),
		)
		return reportID, nil
	}

	res, err := s.embed.BatchEmbed(ctx, chunks)
	if err != nil {
		return "", fmt.Errorf("embed report chunks: %w", err)
	}
	if len(res.Embeddings) != len(chunks) {
		return "", fmt.Errorf(
			"got %d embeddings for %d chunks: %w",
			len(res.Embeddings), len(chunks), domain.ErrEmbeddingProviderError,
		)
	}

	for i, c := range chunks {
		s.reports.Add(domain.Document{
			ID:       uuid.NewString(),
			Title:    "Report: " + filename,
			Text:     c,
			ReportID: reportID,
			Filename: filename,
		}, res.Embeddings[i])
	}

	logger.FromContext(ctx).Info("report ingested",
		zap.String("report_id", reportID),
		zap.String("filename", filename),
		zap.Int("chunks", len(chunks)),
		zap.Int("embedding_tokens", res.TotalTokens),
	)
	return reportID, nil
}
