package domain

import "errors"

// Intake errors. These are answered by the HTTP layer and never reach an extractor.
var (
	ErrNoInvoiceImage    = errors.New("no invoice image provided")
	ErrNoSelectedFile    = errors.New("no selected file")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
