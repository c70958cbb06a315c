package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-paginator/internal/types"
)

// DecodeDocument validates raw document JSON against the embedded schema and
// the model's field rules, then decodes it. Rule violations are reported as a
// *ValidationError with JSON field paths.
func DecodeDocument(data []byte) (*types.Document, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if err := doc.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		verr := &ValidationError{Errors: make([]FieldError, 0, len(fieldErrs))}
		for _, fe := range fieldErrs {
			verr.Errors = append(verr.Errors, FieldError{
				Field:   strings.TrimPrefix(fe.Namespace(), "Document."),
				Message: ruleMessage(fe),
			})
		}
		return nil, verr
	}
	return &doc, nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed the '%s' rule", fe.Tag())
	}
}
