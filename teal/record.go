package teal

import (
	"strings"
	"unicode/utf8"
)

// RecordGenerator accumulates the members of one record type.
type RecordGenerator struct {
	// ShouldBeInlined renders only the body, for merging into the module
	// record instead of declaring a nested record.
	ShouldBeInlined bool

	// IsUserData annotates the record with the userdata keyword.
	IsUserData bool

	// TypeName is the record name used in the header and as the self-type
	// of methods.
	TypeName Signature

	Fields       []Field
	StaticFields []Field

	Methods      []ExportedFunction
	MutMethods   []ExportedFunction
	Functions    []ExportedFunction
	MutFunctions []ExportedFunction

	MetaMethods      []ExportedFunction
	MetaMethodsMut   []ExportedFunction
	MetaFunctions    []ExportedFunction
	MetaFunctionsMut []ExportedFunction

	// Docs holds pending, per-member and type-level documentation.
	Docs Documentation

	// ShouldGenerateHelpMethod is set by GenerateHelp.
	ShouldGenerateHelpMethod bool

	consumed bool
}

// NewRecordGenerator creates an empty record named by typeName.
func NewRecordGenerator(typeName Descriptor) *RecordGenerator {
	return &RecordGenerator{TypeName: typeName.TypeParts().clone()}
}

// Kind returns GeneratorRecord.
func (g *RecordGenerator) Kind() GeneratorKind { return GeneratorRecord }

// Name returns the record's type name.
func (g *RecordGenerator) Name() Signature { return g.TypeName }

func (*RecordGenerator) sealed() {}

// Document appends to the documentation attached to the next registration.
func (g *RecordGenerator) Document(text string) {
	g.Docs.Document(text)
}

// DocumentType appends to the record's type-level documentation.
func (g *RecordGenerator) DocumentType(text string) {
	g.Docs.DocumentType(text)
}

// AddField registers an instance field. Registering the same name again (a
// setter after a getter) merges documentation; the field is rendered once.
func (g *RecordGenerator) AddField(name string, typ Descriptor) {
	g.Docs.Commit(name)
	g.Fields = append(g.Fields, NewField(name, typ))
}

// AddStaticField registers a field on the record table itself.
func (g *RecordGenerator) AddStaticField(name string, typ Descriptor) {
	g.Docs.Commit(name)
	g.StaticFields = append(g.StaticFields, NewField(name, typ))
}

// AddMethod registers a method that does not mutate its receiver.
func (g *RecordGenerator) AddMethod(name string, params, returns []Descriptor) {
	g.Methods = g.addFunction(g.Methods, name, false, g.TypeName, params, returns)
}

// AddMethodMut registers a method that mutates its receiver.
func (g *RecordGenerator) AddMethodMut(name string, params, returns []Descriptor) {
	g.MutMethods = g.addFunction(g.MutMethods, name, false, g.TypeName, params, returns)
}

// AddFunction registers a function without an implicit self parameter.
func (g *RecordGenerator) AddFunction(name string, params, returns []Descriptor) {
	g.Functions = g.addFunction(g.Functions, name, false, nil, params, returns)
}

// AddFunctionMut registers a mutating function without an implicit self
// parameter.
func (g *RecordGenerator) AddFunctionMut(name string, params, returns []Descriptor) {
	g.MutFunctions = g.addFunction(g.MutFunctions, name, false, nil, params, returns)
}

// AddMetaMethod registers an operator overload taking the record as self.
func (g *RecordGenerator) AddMetaMethod(m MetaMethod, params, returns []Descriptor) {
	g.MetaMethods = g.addFunction(g.MetaMethods, m.Name(), true, g.TypeName, params, returns)
}

// AddMetaMethodMut registers a mutating operator overload.
func (g *RecordGenerator) AddMetaMethodMut(m MetaMethod, params, returns []Descriptor) {
	g.MetaMethodsMut = g.addFunction(g.MetaMethodsMut, m.Name(), true, g.TypeName, params, returns)
}

// AddMetaFunction registers an operator overload without a self parameter.
func (g *RecordGenerator) AddMetaFunction(m MetaMethod, params, returns []Descriptor) {
	g.MetaFunctions = g.addFunction(g.MetaFunctions, m.Name(), true, nil, params, returns)
}

// AddMetaFunctionMut registers a mutating operator overload without a self
// parameter.
func (g *RecordGenerator) AddMetaFunctionMut(m MetaMethod, params, returns []Descriptor) {
	g.MetaFunctionsMut = g.addFunction(g.MetaFunctionsMut, m.Name(), true, nil, params, returns)
}

func (g *RecordGenerator) addFunction(bucket []ExportedFunction, name string, meta bool, self Signature, params, returns []Descriptor) []ExportedFunction {
	g.Docs.Commit(name)
	return append(bucket, BuildSignature(name, meta, self, params, returns))
}

// GenerateHelp adds a help function listing the record's documentation.
// The function is answered at runtime by Documentation.Help. Documentation
// pending before the call stays pending for the next registration.
func (g *RecordGenerator) GenerateHelp() {
	g.ShouldGenerateHelpMethod = true
	text, pending := g.Docs.takePending()
	g.Document("Returns the documentation of this type.")
	g.Document("Call without arguments to list the documented members, or pass a member name to get its documentation.")
	g.AddFunction("help", nil, Descriptors(String()))
	g.Docs.pending, g.Docs.hasPending = text, pending
}

// Help answers a runtime help query for this record.
func (g *RecordGenerator) Help(key string) string {
	return g.Docs.Help(key)
}

// Section titles, in render order.
const (
	SectionFields           = "Fields"
	SectionStaticFields     = "Static fields"
	SectionMethods          = "Pure methods"
	SectionMutMethods       = "Mutating methods"
	SectionFunctions        = "Pure functions"
	SectionMutFunctions     = "Mutating functions"
	SectionMetaMethods      = "Meta methods"
	SectionMetaMethodsMut   = "Mutating meta methods"
	SectionMetaFunctions    = "Meta functions"
	SectionMetaFunctionsMut = "Mutating meta functions"
)

// Generate renders the record. It consumes the generator: a second call
// returns ErrConsumed.
func (g *RecordGenerator) Generate() (string, error) {
	if g.consumed {
		return "", ErrConsumed
	}
	g.consumed = true

	name := g.TypeName.String()
	context := "record " + name
	if err := checkSignature(context, g.TypeName); err != nil {
		return "", err
	}

	indent := "\t\t"
	if g.ShouldBeInlined {
		indent = "\t"
	}

	var body strings.Builder
	if err := g.writeFields(&body, indent, context, SectionFields, g.Fields); err != nil {
		return "", err
	}
	if err := g.writeFields(&body, indent, context, SectionStaticFields, g.StaticFields); err != nil {
		return "", err
	}
	buckets := []struct {
		title string
		fns   []ExportedFunction
	}{
		{SectionMethods, g.Methods},
		{SectionMutMethods, g.MutMethods},
		{SectionFunctions, g.Functions},
		{SectionMutFunctions, g.MutFunctions},
		{SectionMetaMethods, g.MetaMethods},
		{SectionMetaMethodsMut, g.MetaMethodsMut},
		{SectionMetaFunctions, g.MetaFunctions},
		{SectionMetaFunctionsMut, g.MetaFunctionsMut},
	}
	for _, bucket := range buckets {
		if err := g.writeFunctions(&body, indent, context, bucket.title, bucket.fns); err != nil {
			return "", err
		}
	}

	if g.ShouldBeInlined {
		return strings.TrimSuffix(body.String(), "\n"), nil
	}

	var b strings.Builder
	writeComment(&b, "\t", g.Docs.TypeDoc())
	b.WriteString("\trecord ")
	b.WriteString(name)
	b.WriteString("\n")
	if g.IsUserData {
		b.WriteString("\t\tuserdata\n")
	}
	b.WriteString(body.String())
	b.WriteString("\tend")
	return b.String(), nil
}

func (g *RecordGenerator) writeFields(b *strings.Builder, indent, context, title string, fields []Field) error {
	if len(fields) == 0 {
		return nil
	}
	writeSection(b, indent, title)
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		if err := checkName(context, f.Name); err != nil {
			return err
		}
		if err := checkSignature(context, f.Signature); err != nil {
			return err
		}
		g.writeMemberDoc(b, indent, f.Name)
		b.WriteString(indent)
		b.WriteString(f.Name)
		b.WriteString(" : ")
		b.WriteString(f.Signature.String())
		b.WriteString("\n")
	}
	return nil
}

func (g *RecordGenerator) writeFunctions(b *strings.Builder, indent, context, title string, fns []ExportedFunction) error {
	if len(fns) == 0 {
		return nil
	}
	writeSection(b, indent, title)
	for _, fn := range fns {
		if err := checkName(context, fn.Name); err != nil {
			return err
		}
		if err := checkSignature(context, fn.Signature); err != nil {
			return err
		}
		g.writeMemberDoc(b, indent, fn.Name)
		b.WriteString(indent)
		if fn.IsMetaMethod {
			b.WriteString("metamethod ")
		}
		b.WriteString(fn.Name)
		b.WriteString(": ")
		b.WriteString(fn.Signature.String())
		b.WriteString("\n")
	}
	return nil
}

func (g *RecordGenerator) writeMemberDoc(b *strings.Builder, indent, name string) {
	if doc, ok := g.Docs.Lookup(name); ok {
		writeComment(b, indent, doc)
	}
}

func writeSection(b *strings.Builder, indent, title string) {
	b.WriteString(indent)
	b.WriteString("-- ")
	b.WriteString(title)
	b.WriteString("\n")
}

func checkName(context, name string) error {
	if !utf8.ValidString(name) {
		return &EncodingError{Context: context, Name: []byte(name)}
	}
	return nil
}

func checkSignature(context string, sig Signature) error {
	for _, p := range sig {
		if err := checkName(context, p.String()); err != nil {
			return err
		}
	}
	return nil
}
