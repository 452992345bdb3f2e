// Package pdftext extracts plain text from uploaded PDF reports. The rest of
// the system treats extraction as a black box producing raw text.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/coastwise/strata-advisor/internal/domain"
)

// Extract returns the text of every page, pages joined with a newline.
// A page that yields no text contributes only its separator; a document that
// cannot be parsed at all is an invalid upload.
func Extract(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %v: %w", err, domain.ErrInvalidUpload)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable page, same as a page with no extractable text.
			text = ""
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
