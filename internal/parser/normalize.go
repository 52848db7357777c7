package parser

import (
	"strings"

	"invoicescan/internal/domain"
)

// Normalize trims surrounding whitespace from the raw completion text and wraps it.
// The table itself is passed through untouched.
func Normalize(raw string) *domain.ExtractionResult {
	return &domain.ExtractionResult{InvoiceTSV: strings.TrimSpace(raw)}
}
