package teal

import "strings"

// GeneratorKind identifies the variant of a TypeGenerator.
type GeneratorKind int

const (
	GeneratorRecord GeneratorKind = iota
	GeneratorEnum
)

// String returns the string representation of the generator kind.
func (k GeneratorKind) String() string {
	switch k {
	case GeneratorRecord:
		return "Record"
	case GeneratorEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// TypeGenerator is a fully populated type body: *RecordGenerator or
// *EnumGenerator.
type TypeGenerator interface {
	// Kind returns the generator kind for type switching.
	Kind() GeneratorKind

	// Name returns the declared type name.
	Name() Signature

	// Generate renders the type body. It consumes the generator.
	Generate() (string, error)

	// Ensure only types in this package can implement TypeGenerator.
	sealed()
}

// EnumGenerator accumulates the variants of a string enum.
type EnumGenerator struct {
	TypeName Signature

	// Variants are kept in registration order; duplicates are kept.
	Variants []string

	Docs Documentation

	consumed bool
}

// NewEnumGenerator creates an enum named by name.
func NewEnumGenerator(name Descriptor, variants ...string) *EnumGenerator {
	return &EnumGenerator{TypeName: name.TypeParts().clone(), Variants: variants}
}

// Kind returns GeneratorEnum.
func (g *EnumGenerator) Kind() GeneratorKind { return GeneratorEnum }

// Name returns the enum's type name.
func (g *EnumGenerator) Name() Signature { return g.TypeName }

func (*EnumGenerator) sealed() {}

// AddVariant appends a variant.
func (g *EnumGenerator) AddVariant(name string) {
	g.Variants = append(g.Variants, name)
}

// DocumentType appends to the enum's type-level documentation.
func (g *EnumGenerator) DocumentType(text string) {
	g.Docs.DocumentType(text)
}

// Generate renders the enum. It consumes the generator.
func (g *EnumGenerator) Generate() (string, error) {
	if g.consumed {
		return "", ErrConsumed
	}
	g.consumed = true

	name := g.TypeName.String()
	context := "enum " + name
	if err := checkSignature(context, g.TypeName); err != nil {
		return "", err
	}

	var b strings.Builder
	writeComment(&b, "\t", g.Docs.TypeDoc())
	b.WriteString("\tenum ")
	b.WriteString(name)
	b.WriteString("\n")
	for _, v := range g.Variants {
		if err := checkName(context, v); err != nil {
			return "", err
		}
		b.WriteString("\t\t")
		b.WriteString(quoteString(v))
		b.WriteString("\n")
	}
	b.WriteString("\tend")
	return b.String(), nil
}

// quoteString renders s as a double-quoted Teal string literal.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
