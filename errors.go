package tealgen

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one invalid Config field.
type ValidationError struct {
	// Field is the namespaced field name, e.g. "Config.ModuleName".
	Field string

	// Rule is the validation tag that failed, e.g. "required".
	Rule string

	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is returned by Config.Validate.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "tealident":
		return fmt.Sprintf("%q is not a valid Teal identifier", fe.Value())
	case "declpath":
		return fmt.Sprintf("%q must be a clean relative path ending in %s", fe.Value(), DeclExtension)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
