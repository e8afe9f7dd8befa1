package dto

import "github.com/jsamuelsen/quote-generator-api/internal/domain"

// QuoteResponse is returned by GET /quotes/:id.
type QuoteResponse struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	RequestID string `json:"requestId"`
}

// RandomQuoteResponse is returned by GET /quote.
type RandomQuoteResponse struct {
	Quote     string `json:"quote"`
	Author    string `json:"author"`
	RequestID string `json:"requestId"`
}

// QuoteItem is one entry of QuoteListResponse.
type QuoteItem struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// QuoteListResponse is returned by GET /quotes.
type QuoteListResponse struct {
	Count     int         `json:"count"`
	Quotes    []QuoteItem `json:"quotes"`
	RequestID string      `json:"requestId"`
}

// NewQuoteResponse spreads q and adds the request id.
func NewQuoteResponse(q *domain.Quote, requestID string) *QuoteResponse {
	return &QuoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		RequestID: requestID,
	}
}

// NewRandomQuoteResponse builds the GET /quote body.
func NewRandomQuoteResponse(q *domain.Quote, requestID string) *RandomQuoteResponse {
	return &RandomQuoteResponse{
		Quote:     q.Text,
		Author:    q.Author,
		RequestID: requestID,
	}
}

// NewQuoteListResponse builds the GET /quotes body in load order.
func NewQuoteListResponse(quotes []domain.Quote, requestID string) *QuoteListResponse {
	items := make([]QuoteItem, len(quotes))
	for i, q := range quotes {
		items[i] = QuoteItem{ID: q.ID, Text: q.Text, Author: q.Author}
	}

	return &QuoteListResponse{
		Count:     len(items),
		Quotes:    items,
		RequestID: requestID,
	}
}
