// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/app"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// GetRandomQuote handles GET /quote.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.RandomQuoteResponse
// @Router /quote [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.GetRandomQuote(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRandomQuoteResponse(quote, middleware.GetRequestID(c)))
}

// ListQuotes handles GET /quotes.
//
// @Summary List every quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteListResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes, middleware.GetRequestID(c)))
}

// GetQuoteByID handles GET /quotes/:id. An id that is not an integer is
// reported as not found, like any unknown id.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	quote, err := h.service.GetQuoteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, middleware.GetRequestID(c)))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg gin.IRoutes) {
	rg.GET("/quote", h.GetRandomQuote)
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/:id", h.GetQuoteByID)
}
