package port

import (
	"context"

	"invoicescan/internal/domain"
)

// ExtractInput carries one uploaded invoice image to an extractor.
type ExtractInput struct {
	FileBytes []byte
	FileName  string
}

// InvoiceExtractor turns an invoice image into TSV text.
// Implementations return *parser.UpstreamError for upstream failures.
type InvoiceExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.ExtractionResult, error)
	// Mode reports "live" or "simulated".
	Mode() string
}
