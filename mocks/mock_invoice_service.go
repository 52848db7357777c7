package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicescan/internal/domain"
	"invoicescan/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Process(ctx context.Context, input service.ProcessInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockInvoiceService) Mode() string {
	args := m.Called()
	return args.String(0)
}
