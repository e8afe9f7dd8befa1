// Package mocks provides testify mocks for the ports interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quote-generator-api/internal/domain"
)

// MockQuoteRepository is a mock implementation of ports.QuoteRepository.
type MockQuoteRepository struct {
	mock.Mock
}

// NewMockQuoteRepository creates a mock and asserts its expectations on cleanup.
func NewMockQuoteRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteRepository {
	m := &MockQuoteRepository{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockQuoteRepositoryExpecter provides typed helpers for setting expectations.
type MockQuoteRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter for m.
func (m *MockQuoteRepository) EXPECT() *MockQuoteRepositoryExpecter {
	return &MockQuoteRepositoryExpecter{mock: &m.Mock}
}

// Random provides a mock function.
func (m *MockQuoteRepository) Random(ctx context.Context) (*domain.Quote, error) {
	ret := m.Called(ctx)

	var q *domain.Quote
	if v, ok := ret.Get(0).(*domain.Quote); ok {
		q = v
	}

	return q, ret.Error(1)
}

// Random sets an expectation for Random.
func (e *MockQuoteRepositoryExpecter) Random(ctx any) *mock.Call {
	return e.mock.On("Random", ctx)
}

// GetByID provides a mock function.
func (m *MockQuoteRepository) GetByID(ctx context.Context, id int) (*domain.Quote, error) {
	ret := m.Called(ctx, id)

	var q *domain.Quote
	if v, ok := ret.Get(0).(*domain.Quote); ok {
		q = v
	}

	return q, ret.Error(1)
}

// GetByID sets an expectation for GetByID.
func (e *MockQuoteRepositoryExpecter) GetByID(ctx, id any) *mock.Call {
	return e.mock.On("GetByID", ctx, id)
}

// List provides a mock function.
func (m *MockQuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	ret := m.Called(ctx)

	var quotes []domain.Quote
	if v, ok := ret.Get(0).([]domain.Quote); ok {
		quotes = v
	}

	return quotes, ret.Error(1)
}

// List sets an expectation for List.
func (e *MockQuoteRepositoryExpecter) List(ctx any) *mock.Call {
	return e.mock.On("List", ctx)
}

// MockMetricsRecorder is a mock implementation of ports.MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

// NewMockMetricsRecorder creates a mock and asserts its expectations on cleanup.
func NewMockMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMetricsRecorder {
	m := &MockMetricsRecorder{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// ObserveRequest provides a mock function.
func (m *MockMetricsRecorder) ObserveRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	m.Called(ctx, method, route, status, duration)
}

// MockMetricsRecorderExpecter provides typed expectation helpers.
type MockMetricsRecorderExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter for m.
func (m *MockMetricsRecorder) EXPECT() *MockMetricsRecorderExpecter {
	return &MockMetricsRecorderExpecter{mock: &m.Mock}
}

// ObserveRequest sets an expectation for ObserveRequest.
func (e *MockMetricsRecorderExpecter) ObserveRequest(ctx, method, route, status, duration any) *mock.Call {
	return e.mock.On("ObserveRequest", ctx, method, route, status, duration)
}
