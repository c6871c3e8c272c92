package provider

import (
	"unicode"
	"unicode/utf8"
)

// Teal reserved words. Lua keywords plus the words Teal adds for its own
// declarations.
var reservedWords = map[string]bool{
	"and":        true,
	"break":      true,
	"do":         true,
	"else":       true,
	"elseif":     true,
	"end":        true,
	"false":      true,
	"for":        true,
	"function":   true,
	"goto":       true,
	"if":         true,
	"in":         true,
	"local":      true,
	"nil":        true,
	"not":        true,
	"or":         true,
	"repeat":     true,
	"return":     true,
	"then":       true,
	"true":       true,
	"until":      true,
	"while":      true,
	"global":     true,
	"record":     true,
	"enum":       true,
	"type":       true,
	"userdata":   true,
	"metamethod": true,
}

// IsReserved reports whether name is a Teal keyword.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// IsIdentifier reports whether name can be used as a bare Teal name: a
// letter or underscore followed by letters, digits or underscores, and not a
// keyword.
func IsIdentifier(name string) bool {
	if name == "" || !utf8.ValidString(name) || reservedWords[name] {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
