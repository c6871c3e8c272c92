package teal

import "github.com/cockroachdb/errors"

// RegistrationKind identifies what a binding layer just installed.
type RegistrationKind int

const (
	RegisterFieldGet RegistrationKind = iota
	RegisterFieldSet
	RegisterStaticFieldGet
	RegisterStaticFieldSet
	RegisterMethod
	RegisterMethodMut
	RegisterFunction
	RegisterFunctionMut
	RegisterMetaMethod
	RegisterMetaMethodMut
	RegisterMetaFunction
	RegisterMetaFunctionMut
	RegisterTypeDoc // Doc is appended to the type-level documentation
)

// String returns the string representation of the registration kind.
func (k RegistrationKind) String() string {
	switch k {
	case RegisterFieldGet:
		return "FieldGet"
	case RegisterFieldSet:
		return "FieldSet"
	case RegisterStaticFieldGet:
		return "StaticFieldGet"
	case RegisterStaticFieldSet:
		return "StaticFieldSet"
	case RegisterMethod:
		return "Method"
	case RegisterMethodMut:
		return "MethodMut"
	case RegisterFunction:
		return "Function"
	case RegisterFunctionMut:
		return "FunctionMut"
	case RegisterMetaMethod:
		return "MetaMethod"
	case RegisterMetaMethodMut:
		return "MetaMethodMut"
	case RegisterMetaFunction:
		return "MetaFunction"
	case RegisterMetaFunctionMut:
		return "MetaFunctionMut"
	case RegisterTypeDoc:
		return "TypeDoc"
	default:
		return "Unknown"
	}
}

// Registration is one event emitted by a binding layer.
type Registration struct {
	Kind RegistrationKind

	// Name is the member name. Ignored for meta kinds, which use Meta.
	Name string

	// Meta is the operator slot for the meta kinds.
	Meta MetaMethod

	// Doc, when non-empty, is documented before the member is registered.
	Doc string

	// Type is the field type for the field kinds.
	Type Descriptor

	// Params and Returns describe callable kinds.
	Params  []Descriptor
	Returns []Descriptor
}

// Apply records one registration event.
func (g *RecordGenerator) Apply(r Registration) error {
	if r.Kind == RegisterTypeDoc {
		g.DocumentType(r.Doc)
		return nil
	}
	if r.Doc != "" {
		g.Document(r.Doc)
	}
	switch r.Kind {
	case RegisterFieldGet, RegisterFieldSet:
		if r.Type == nil {
			return errors.Newf("field %q registered without a type", r.Name)
		}
		g.AddField(r.Name, r.Type)
	case RegisterStaticFieldGet, RegisterStaticFieldSet:
		if r.Type == nil {
			return errors.Newf("static field %q registered without a type", r.Name)
		}
		g.AddStaticField(r.Name, r.Type)
	case RegisterMethod:
		g.AddMethod(r.Name, r.Params, r.Returns)
	case RegisterMethodMut:
		g.AddMethodMut(r.Name, r.Params, r.Returns)
	case RegisterFunction:
		g.AddFunction(r.Name, r.Params, r.Returns)
	case RegisterFunctionMut:
		g.AddFunctionMut(r.Name, r.Params, r.Returns)
	case RegisterMetaMethod:
		g.AddMetaMethod(r.Meta, r.Params, r.Returns)
	case RegisterMetaMethodMut:
		g.AddMetaMethodMut(r.Meta, r.Params, r.Returns)
	case RegisterMetaFunction:
		g.AddMetaFunction(r.Meta, r.Params, r.Returns)
	case RegisterMetaFunctionMut:
		g.AddMetaFunctionMut(r.Meta, r.Params, r.Returns)
	default:
		return errors.Newf("unsupported registration kind: %s", r.Kind)
	}
	return nil
}

// Replay applies registrations in order, stopping at the first error.
func (g *RecordGenerator) Replay(events []Registration) error {
	for i, r := range events {
		if err := g.Apply(r); err != nil {
			return errors.Wrapf(err, "registration %d", i)
		}
	}
	return nil
}
