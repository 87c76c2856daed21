package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quote-widget/internal/domain"
)

// MaxResponseBytes caps how much of a response body is read.
const MaxResponseBytes = 1 << 20

var (
	errNoResponse   = errors.New("no response received")
	errBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", MaxResponseBytes)

	// validate checks external DTOs before translation.
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// ReadBody reads at most MaxResponseBytes from body. A longer body is a
// domain.ParseError; a failed read is a domain.TransportError.
func ReadBody(body io.Reader, serviceName string) ([]byte, error) {
	if body == nil {
		return nil, domain.NewParseError("empty response body", nil)
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxResponseBytes+1))
	if err != nil {
		return nil, domain.NewTransportError(serviceName, fmt.Errorf("reading response body: %w", err))
	}

	if len(data) > MaxResponseBytes {
		return nil, domain.NewParseError("response body too large", errBodyTooLarge)
	}

	return data, nil
}

// DecodeResponse unmarshals data into T and validates its struct tags.
// All failures are domain.ParseError values.
func DecodeResponse[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, domain.NewParseError("malformed JSON", err)
	}

	if err := validate.Struct(&result); err != nil {
		return nil, domain.NewParseError(describeValidation(err), err)
	}

	return &result, nil
}

// Translate decodes data and converts the validated DTO with translate.
func Translate[E any, D any](data []byte, translate func(ext *E) *D) (*D, error) {
	ext, err := DecodeResponse[E](data)
	if err != nil {
		return nil, err
	}

	return translate(ext), nil
}

// describeValidation names the offending JSON fields.
func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "invalid response"
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, strings.ToLower(e.Field()))
	}

	return "missing or invalid field: " + strings.Join(fields, ", ")
}
