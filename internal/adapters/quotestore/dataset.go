package quotestore

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/quote-generator-api/internal/domain"
)

//go:embed quotes.yaml
var defaultDataset []byte

// validate checks decoded datasets before a Store accepts them.
var validate = validator.New(validator.WithRequiredStructEnabled())

// dataset is the on-disk shape of a quote collection.
type dataset struct {
	Quotes []domain.Quote `yaml:"quotes" validate:"required,min=1,unique=ID,dive"`
}

// Decode reads a YAML quote collection. Unknown fields are rejected.
func Decode(r io.Reader) ([]domain.Quote, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("quotes", "dataset is empty")
		}

		return nil, fmt.Errorf("decoding quotes: %w", err)
	}

	if err := validateQuotes(ds.Quotes); err != nil {
		return nil, err
	}

	return ds.Quotes, nil
}

// DefaultQuotes returns the embedded reference collection.
func DefaultQuotes() ([]domain.Quote, error) {
	return Decode(bytes.NewReader(defaultDataset))
}

// LoadFile reads a quote collection from a YAML file.
func LoadFile(path string) ([]domain.Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening quotes file: %w", err)
	}
	defer f.Close()

	quotes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return quotes, nil
}

// validateQuotes enforces the collection invariants: at least one quote,
// unique positive ids, non-empty text and author.
func validateQuotes(quotes []domain.Quote) error {
	err := validate.Struct(dataset{Quotes: quotes})
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fe := validationErrors[0]
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "dataset."))

	switch fe.Tag() {
	case "required", "min":
		if fe.Field() == "Quotes" {
			return domain.NewValidationError("quotes", "dataset is empty")
		}

		return domain.NewValidationError(field, "is required")
	case "unique":
		return domain.NewValidationError(field, "ids must be unique")
	case "gt":
		return domain.NewValidationErrorWithValue(field, "must be a positive integer", fe.Value())
	default:
		return domain.NewValidationError(field, "failed validation: "+fe.Tag())
	}
}
