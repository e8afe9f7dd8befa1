// Package domain contains core business entities and rules.
package domain

// Quote represents a quotation with its author.
// Quotes are loaded once at startup and never modified afterwards.
type Quote struct {
	// ID is the unique, positive identifier for this quote.
	ID int `yaml:"id" validate:"gt=0"`

	// Text is the body of the quote.
	Text string `yaml:"text" validate:"required"`

	// Author is who said or wrote the quote.
	Author string `yaml:"author" validate:"required"`
}
