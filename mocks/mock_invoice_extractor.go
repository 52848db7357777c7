package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicescan/internal/domain"
	"invoicescan/internal/port"
)

// MockInvoiceExtractor is a mock implementation of port.InvoiceExtractor.
type MockInvoiceExtractor struct {
	mock.Mock
}

func (m *MockInvoiceExtractor) Extract(ctx context.Context, input port.ExtractInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockInvoiceExtractor) Mode() string {
	args := m.Called()
	return args.String(0)
}
