// Package quotestore provides the in-memory quote collection.
// A Store is immutable after construction and safe for concurrent reads.
package quotestore

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/jsamuelsen/quote-generator-api/internal/domain"
)

// checkerName identifies the store in health results.
const checkerName = "quote-store"

// Store is a fixed, ordered collection of quotes.
// It implements ports.QuoteRepository and ports.HealthChecker.
type Store struct {
	quotes []domain.Quote
	byID   map[int]int
	intN   func(n int) int
}

// Option configures a Store.
type Option func(*Store)

// WithIntN replaces the random index source used by Random.
// intN must return a value in [0, n).
func WithIntN(intN func(n int) int) Option {
	return func(s *Store) {
		s.intN = intN
	}
}

// New creates a Store over a copy of quotes.
// The collection must be non-empty with unique positive ids.
func New(quotes []domain.Quote, opts ...Option) (*Store, error) {
	if err := validateQuotes(quotes); err != nil {
		return nil, err
	}

	s := &Store{
		quotes: slices.Clone(quotes),
		byID:   make(map[int]int, len(quotes)),
		intN:   rand.IntN,
	}
	for i, q := range s.quotes {
		s.byID[q.ID] = i
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewDefault creates a Store over the embedded reference collection.
func NewDefault(opts ...Option) (*Store, error) {
	quotes, err := DefaultQuotes()
	if err != nil {
		return nil, err
	}

	return New(quotes, opts...)
}

// Random returns a uniformly selected quote.
func (s *Store) Random(_ context.Context) (*domain.Quote, error) {
	if len(s.quotes) == 0 {
		return nil, domain.NewUnavailableError(checkerName, "no quotes loaded")
	}

	q := s.quotes[s.intN(len(s.quotes))]

	return &q, nil
}

// GetByID returns the quote with the given id.
func (s *Store) GetByID(_ context.Context, id int) (*domain.Quote, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityQuote, strconv.Itoa(id))
	}

	q := s.quotes[i]

	return &q, nil
}

// List returns a copy of every quote in load order.
func (s *Store) List(_ context.Context) ([]domain.Quote, error) {
	return slices.Clone(s.quotes), nil
}

// Len returns the number of quotes in the store.
func (s *Store) Len() int {
	return len(s.quotes)
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return checkerName
}

// Check implements ports.HealthChecker.
func (s *Store) Check(_ context.Context) error {
	if len(s.quotes) == 0 {
		return domain.NewUnavailableError(checkerName, "no quotes loaded")
	}

	return nil
}
