package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"invoicescan/internal/domain"
	"invoicescan/internal/metrics"
	"invoicescan/internal/parser"
	"invoicescan/internal/port"
)

// ProcessInput is the DTO for an uploaded invoice image.
type ProcessInput struct {
	FileBytes []byte
	FileName  string
}

// InvoiceService defines the invoice processing contract.
type InvoiceService interface {
	Process(ctx context.Context, input ProcessInput) (*domain.ExtractionResult, error)
	Mode() string
}

type invoiceService struct {
	extractor port.InvoiceExtractor
	log       *zap.SugaredLogger
}

// NewInvoiceService creates a new InvoiceService backed by the given extractor.
func NewInvoiceService(extractor port.InvoiceExtractor, log *zap.SugaredLogger) InvoiceService {
	return &invoiceService{extractor: extractor, log: log}
}

func (s *invoiceService) Mode() string {
	return s.extractor.Mode()
}

// Process runs one extraction. The upstream call is detached from the caller's
// cancellation, so a client disconnect does not abort it; only the extractor's
// own client timeout bounds it.
func (s *invoiceService) Process(ctx context.Context, input ProcessInput) (*domain.ExtractionResult, error) {
	mode := s.extractor.Mode()
	metrics.UploadBytes.Observe(float64(len(input.FileBytes)))

	s.log.Infow("invoiceService.Process: extracting invoice",
		"filename", input.FileName, "bytes", len(input.FileBytes), "mode", mode)

	start := time.Now()
	result, err := s.extractor.Extract(context.WithoutCancel(ctx), port.ExtractInput{
		FileBytes: input.FileBytes,
		FileName:  input.FileName,
	})
	metrics.ExtractionDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := string(parser.KindUnexpected)
		var upErr *parser.UpstreamError
		if errors.As(err, &upErr) {
			outcome = string(upErr.Kind)
		} else {
			err = parser.NewUpstreamError(parser.KindUnexpected, 0, err)
		}
		metrics.Extractions.WithLabelValues(mode, outcome).Inc()
		s.log.Errorw("invoiceService.Process: extraction failed",
			"filename", input.FileName, "kind", outcome, "error", err)
		return nil, err
	}

	metrics.Extractions.WithLabelValues(mode, "ok").Inc()
	s.log.Infow("invoiceService.Process: extraction succeeded",
		"filename", input.FileName, "tsv_bytes", len(result.InvoiceTSV), "duration", time.Since(start))
	return result, nil
}
