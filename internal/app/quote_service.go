// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen/quote-generator-api/internal/domain"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// QuoteService orchestrates quote-related use cases.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	repo   ports.QuoteRepository
	logger *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// It panics if no repository is supplied.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("app: QuoteService requires a Repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		repo:   cfg.Repository,
		logger: logger.With(slog.String("component", "app.QuoteService")),
	}
}

// loggerFor prefers the request-scoped logger so lines carry the request id.
func (s *QuoteService) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

// GetRandomQuote returns one quote selected uniformly at random.
func (s *QuoteService) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	quote, err := s.repo.Random(ctx)
	if err != nil {
		s.loggerFor(ctx).ErrorContext(ctx, "failed to select random quote",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("selecting random quote: %w", err)
	}

	s.loggerFor(ctx).DebugContext(ctx, "selected random quote",
		slog.Int("quote_id", quote.ID),
	)

	return quote, nil
}

// GetQuoteByID looks up a quote by the raw id taken from a request path.
// Input that is not a base-10 integer can never match a quote, so it is
// reported as not found rather than as a bad request.
func (s *QuoteService) GetQuoteByID(ctx context.Context, rawID string) (*domain.Quote, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		s.loggerFor(ctx).DebugContext(ctx, "malformed quote id",
			slog.String("quote_id", rawID),
		)
		return nil, domain.NewNotFoundError(domain.EntityQuote, rawID)
	}

	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.loggerFor(ctx).ErrorContext(ctx, "failed to fetch quote",
				slog.Int("quote_id", id),
				slog.Any("error", err),
			)
		}
		return nil, err
	}

	s.loggerFor(ctx).DebugContext(ctx, "fetched quote",
		slog.Int("quote_id", quote.ID),
	)

	return quote, nil
}

// ListQuotes returns every quote in load order.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.repo.List(ctx)
	if err != nil {
		s.loggerFor(ctx).ErrorContext(ctx, "failed to list quotes",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}
