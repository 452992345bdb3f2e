// Package pool implements an in-memory document pool: parallel arrays of
// documents and unit-length embedding vectors, searchable by dot-product
// similarity. Pools are append-only; nothing is ever mutated or evicted.
package pool

import (
	"sort"
	"sync"

	"github.com/coastwise/strata-advisor/internal/domain"
)

// Pool holds documents and their embeddings at matching indices. A single
// RWMutex serializes appends against reads, making the single-writer
// assumption of the engine explicit rather than accidental.
type Pool struct {
	mu         sync.RWMutex
	docs       []domain.Document
	embeddings [][]float32
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{}
}

// Add appends a document and its embedding vector. The vector must already be
// unit length; Add does not normalize. No deduplication, no capacity limit.
func (p *Pool) Add(doc domain.Document, vec []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = append(p.docs, doc)
	p.embeddings = append(p.embeddings, vec)
}

// Len returns the number of stored documents.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.docs)
}

// Search scans the whole pool and returns at most topK documents ordered by
// descending dot-product score against queryVec. When reportID is non-empty,
// only documents with that exact report ID are considered; documents without
// a report ID never match a filter. Equal scores keep insertion order.
//
// The scan is linear on purpose: pools hold tens to low thousands of chunks,
// and an index structure would cost more than it saves at that size.
func (p *Pool) Search(queryVec []float32, topK int, reportID string) []domain.ScoredDocument {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if topK <= 0 {
		return nil
	}

	scored := make([]domain.ScoredDocument, 0, len(p.docs))
	for i, doc := range p.docs {
		if reportID != "" && doc.ReportID != reportID {
			continue
		}
		scored = append(scored, domain.ScoredDocument{
			Document: doc,
			Score:    domain.Dot(p.embeddings[i], queryVec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
