package domain

// Document is one retrievable unit of knowledge. Base catalog documents carry
// no ReportID or Filename; report chunks carry both. Documents are immutable
// once created.
type Document struct {
	ID       string
	Title    string
	Text     string
	ReportID string
	Filename string
}

// FromReport reports whether the document originated from an uploaded report.
func (d Document) FromReport() bool {
	return d.ReportID != ""
}

// SourceLabel returns the provenance label used in grounding context blocks.
func (d Document) SourceLabel() string {
	switch {
	case d.Filename != "":
		return d.Filename
	case d.Title != "":
		return d.Title
	default:
		return "Unknown source"
	}
}

// ScoredDocument pairs a document with its similarity score for one query.
// Scores live only for the duration of a retrieval; they are never stored.
type ScoredDocument struct {
	Document
	Score float32
}
