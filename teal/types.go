// Package teal defines the in-memory model of a Teal declaration module and
// renders it to `.d.tl` text. Types are sequences of literal symbols and type
// references; record and enum generators accumulate registrations from a
// binding layer, and a TypeWalker wraps them into a module.
package teal

import "strings"

// Kind classifies a TealType.
type Kind int

const (
	KindBuiltin  Kind = iota // Never needs qualification (integer, string, ...)
	KindExternal             // Declared by this module; may need a module prefix
	KindGeneric              // Placeholder declared in a signature's <...> list
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "Builtin"
	case KindExternal:
		return "External"
	case KindGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// PartKind identifies the variant of a NamePart.
type PartKind int

const (
	PartSymbol PartKind = iota
	PartType
)

// NamePart is one element of a Signature: either a literal Symbol or a
// *TealType reference.
type NamePart interface {
	// PartKind returns the variant for type switching.
	PartKind() PartKind

	// String renders the part as Teal syntax.
	String() string

	// Ensure only types in this package can implement NamePart.
	sealed()
}

// Symbol is a literal syntax fragment such as "function(" or ",".
type Symbol string

// PartKind returns PartSymbol.
func (Symbol) PartKind() PartKind { return PartSymbol }

func (s Symbol) String() string { return string(s) }

func (Symbol) sealed() {}

// TealType is a reference to a named Teal type.
type TealType struct {
	// Name is the type name as written in Teal.
	Name string

	// Kind controls qualification and generic parameter inference.
	Kind Kind

	// Generics are the type arguments, nil when the type takes none.
	Generics []TealType
}

// PartKind returns PartType.
func (*TealType) PartKind() PartKind { return PartType }

// String renders the type name followed by its type arguments, if any.
func (t *TealType) String() string {
	if len(t.Generics) == 0 {
		return t.Name
	}
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('<')
	for i := range t.Generics {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.Generics[i].String())
	}
	b.WriteByte('>')
	return b.String()
}

func (*TealType) sealed() {}

// TypeParts returns the type as a one-part signature.
func (t TealType) TypeParts() Signature {
	c := t.clone()
	return Signature{&c}
}

// Equal reports whether t and o have the same name, kind and generics.
func (t TealType) Equal(o TealType) bool {
	if t.Name != o.Name || t.Kind != o.Kind || len(t.Generics) != len(o.Generics) {
		return false
	}
	for i := range t.Generics {
		if !t.Generics[i].Equal(o.Generics[i]) {
			return false
		}
	}
	return true
}

func (t TealType) clone() TealType {
	if t.Generics == nil {
		return t
	}
	gs := make([]TealType, len(t.Generics))
	for i := range t.Generics {
		gs[i] = t.Generics[i].clone()
	}
	t.Generics = gs
	return t
}

// Descriptor is implemented by anything that can describe a Teal type as a
// sequence of name parts.
type Descriptor interface {
	TypeParts() Signature
}

// Signature is an ordered run of name parts. Concatenating the rendered parts
// yields valid Teal syntax.
type Signature []NamePart

// TypeParts returns the signature itself.
func (s Signature) TypeParts() Signature { return s }

// String concatenates the rendered parts.
func (s Signature) String() string {
	var b strings.Builder
	for _, p := range s {
		b.WriteString(p.String())
	}
	return b.String()
}

// Generics returns every Generic-kind type referenced by the signature,
// including those nested in type arguments, deduplicated in first-encounter
// order.
func (s Signature) Generics() []TealType {
	var found []TealType
	for _, p := range s {
		if t, ok := p.(*TealType); ok {
			found = collectGenerics(found, *t)
		}
	}
	return found
}

func collectGenerics(found []TealType, t TealType) []TealType {
	if t.Kind == KindGeneric && !containsType(found, t) {
		found = append(found, t.clone())
	}
	for _, g := range t.Generics {
		found = collectGenerics(found, g)
	}
	return found
}

func containsType(list []TealType, t TealType) bool {
	for _, x := range list {
		if x.Equal(t) {
			return true
		}
	}
	return false
}

// Single returns the only type referenced by the signature, if the signature
// consists of exactly one type part.
func (s Signature) Single() (TealType, bool) {
	if len(s) != 1 {
		return TealType{}, false
	}
	t, ok := s[0].(*TealType)
	if !ok {
		return TealType{}, false
	}
	return *t, true
}

// Collapse reduces the signature to one TealType: the single referenced type
// when there is one, otherwise a Builtin named by the rendered text.
func (s Signature) Collapse() TealType {
	if t, ok := s.Single(); ok {
		return t.clone()
	}
	return TealType{Name: s.String(), Kind: KindBuiltin}
}

func (s Signature) clone() Signature {
	if s == nil {
		return nil
	}
	out := make(Signature, len(s))
	for i, p := range s {
		if t, ok := p.(*TealType); ok {
			c := t.clone()
			out[i] = &c
			continue
		}
		out[i] = p
	}
	return out
}

// Field is a named value slot of a record.
type Field struct {
	Name      string
	Signature Signature
	Type      TealType
}

// NewField creates a Field for the given descriptor.
func NewField(name string, typ Descriptor) Field {
	sig := typ.TypeParts().clone()
	return Field{Name: name, Signature: sig, Type: sig.Collapse()}
}
