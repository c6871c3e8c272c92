// Package testdata contains types read by the source provider tests.
package testdata

// Vec is a 2D vector.
// Components are float64.
type Vec struct {
	// X is the horizontal component.
	X float64

	Y float64 // Y is the vertical component.

	label string
}

// Len returns the length of the vector.
func (v Vec) Len() float64 { return 0 }

// Scale multiplies both components in place.
func (v *Vec) Scale(f float64) {
	v.X *= f
	v.Y *= f
}

// Mode selects a rendering mode.
type Mode string

const (
	// ModeFast renders quickly.
	ModeFast Mode = "fast"
	ModeSlow Mode = "slow"
	// ModeAuto is declared last but sorts first.
	ModeAuto Mode = "auto"
)

// Level is not a string type, so it is not an enum.
type Level int

const (
	LevelLow Level = iota
	LevelHigh
)

type (
	// Box holds one value.
	Box[T any] struct {
		// Value is the boxed value.
		Value T
	}

	// Pair is grouped with Box.
	Pair struct{}
)

// Get returns the boxed value.
func (b *Box[T]) Get() T { return b.Value }

type hidden struct{}

// Visible is documented even though hidden is not exported.
func (hidden) Visible() {}
