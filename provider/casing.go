package provider

import (
	"strings"
	"unicode"
)

// MemberCase selects how Go member names are rewritten for Teal.
type MemberCase string

const (
	// CasePreserve keeps Go names as they are.
	CasePreserve MemberCase = "preserve"
	// CaseSnake converts names to snake_case ("DisplayName" -> "display_name").
	CaseSnake MemberCase = "snake"
	// CaseCamel converts names to camelCase ("DisplayName" -> "displayName").
	CaseCamel MemberCase = "camel"
)

// Apply rewrites name according to c. The zero value preserves names.
func (c MemberCase) Apply(name string) string {
	switch c {
	case CaseSnake:
		return toSnakeCase(name)
	case CaseCamel:
		return toCamelCase(name)
	default:
		return name
	}
}

// toSnakeCase converts PascalCase or camelCase to snake_case, keeping
// acronyms together ("HTTPServer" -> "http_server").
func toSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// toCamelCase lowercases the leading run of capitals ("ID" -> "id",
// "HTTPServer" -> "httpServer", "Name" -> "name").
func toCamelCase(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		// Keep the capital that starts the next word.
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
