package teal

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInvalidEncoding is matched by every EncodingError.
var ErrInvalidEncoding = errors.New("name is not valid UTF-8")

// ErrConsumed is returned when a generator or walker is rendered a second
// time.
var ErrConsumed = errors.New("generator already consumed")

// EncodingError reports a name whose raw bytes are not valid UTF-8.
type EncodingError struct {
	// Context names the declaration being rendered (e.g. "record Example").
	Context string

	// Name is the offending name as raw bytes.
	Name []byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: name %q is not valid UTF-8", e.Context, e.Name)
}

// Is reports whether target is ErrInvalidEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

// SerializationError reports a failure to encode or decode the model.
type SerializationError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s teal model: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}
