// Package provider binds Go types to the teal declaration model. Providers
// walk Go types by reflection, or read their doc comments from source, and
// replay what they find as registrations on teal generators.
package provider

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/broady/tealgen/teal"
	"github.com/cockroachdb/errors"
)

// Describer is implemented by Go types that register extra members by hand:
// functions, meta-methods or documentation that reflection cannot see.
// DescribeTeal runs after every reflected member has been registered.
type Describer interface {
	DescribeTeal(g *teal.RecordGenerator) error
}

// Enum is implemented by Go types that are exposed as a Teal string enum.
type Enum interface {
	TealVariants() []string
}

// Warning represents a non-fatal issue found while binding a type.
type Warning struct {
	// Code is a machine-readable warning code (e.g., "RESERVED_NAME", "UNSUPPORTED_TYPE").
	Code string

	// Message is a human-readable description.
	Message string

	// TypeName is the Teal type the warning applies to.
	TypeName string
}

// ReflectionProvider exposes Go types by runtime reflection.
type ReflectionProvider struct {
	// Docs supplies doc comments read from source. When nil, only
	// documentation added by Describer implementations is emitted.
	Docs *DocSet

	// MemberCase rewrites field and method names. Defaults to CasePreserve.
	MemberCase MemberCase

	// Warnings accumulates non-fatal issues across calls to Expose.
	Warnings []Warning
}

// Exposer adapts v for use with teal.TypeWalker.ProcessType.
func (p *ReflectionProvider) Exposer(v any) teal.Exposer {
	return teal.ExposerFunc(func() (teal.TypeGenerator, error) {
		return p.Expose(v)
	})
}

// Expose builds the generator for the type of v. Struct types become records
// and types implementing Enum become enums. v may be a value, a pointer, or
// a reflect.Type.
func (p *ReflectionProvider) Expose(v any) (teal.TypeGenerator, error) {
	if v == nil {
		return nil, errors.New("expose: nil value")
	}
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return nil, errors.Newf("expose: type %s is not a named type", t)
	}

	if variants, ok := enumVariants(t); ok {
		return p.exposeEnum(t, variants), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Newf("expose %s: expected struct or Enum, got %s", t, t.Kind())
	}
	return p.exposeRecord(t)
}

// enumVariants returns the variants of t when t implements Enum.
func enumVariants(t reflect.Type) ([]string, bool) {
	if t.Implements(enumType) {
		return reflect.Zero(t).Interface().(Enum).TealVariants(), true
	}
	if reflect.PointerTo(t).Implements(enumType) {
		return reflect.New(t).Interface().(Enum).TealVariants(), true
	}
	return nil, false
}

func (p *ReflectionProvider) exposeEnum(t reflect.Type, variants []string) *teal.EnumGenerator {
	name := typeName(t)
	g := teal.NewEnumGenerator(teal.External(name), variants...)
	if p.Docs != nil {
		if doc := p.Docs.TypeDoc(name); doc != "" {
			g.DocumentType(doc)
		}
	}
	return g
}

func (p *ReflectionProvider) exposeRecord(t reflect.Type) (*teal.RecordGenerator, error) {
	name := typeName(t)
	m := newTypeMapper(func(code, message string) {
		p.addWarning(code, message, name)
	})
	if isInstantiated(t) {
		m.warnf("GENERIC_INSTANTIATION", "type arguments of %s dropped; exposed as %s", t.String(), name)
	}

	g := teal.NewRecordGenerator(teal.External(name))
	g.IsUserData = true

	var events []teal.Registration
	if p.Docs != nil {
		if doc := p.Docs.TypeDoc(name); doc != "" {
			events = append(events, teal.Registration{Kind: teal.RegisterTypeDoc, Doc: doc})
		}
	}

	events = append(events, p.fieldEvents(t, name, m)...)
	events = append(events, p.methodEvents(t, name, m)...)

	if err := g.Replay(events); err != nil {
		return nil, errors.Wrapf(err, "expose %s", name)
	}

	if d, ok := describer(t); ok {
		if err := d.DescribeTeal(g); err != nil {
			return nil, errors.Wrapf(err, "describe %s", name)
		}
	}
	return g, nil
}

// describer returns the Describer implementation of t, checking the pointer
// method set as well.
func describer(t reflect.Type) (Describer, bool) {
	if d, ok := reflect.Zero(t).Interface().(Describer); ok {
		return d, true
	}
	if d, ok := reflect.New(t).Interface().(Describer); ok {
		return d, true
	}
	return nil, false
}

// fieldEvents registers a getter and, unless the field is read-only, a
// setter for every exported field. Embedded structs contribute their fields
// as if declared inline.
func (p *ReflectionProvider) fieldEvents(t reflect.Type, typeName string, m typeMapper) []teal.Registration {
	var events []teal.Registration
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		name, readonly, skip := parseTealTag(field.Tag.Get("teal"))
		if skip {
			continue
		}
		if name == "" {
			name = p.MemberCase.Apply(field.Name)
		}
		p.checkName(typeName, name)

		typ := m.typeOf(field.Type)
		doc := ""
		if p.Docs != nil {
			doc = p.Docs.MemberDoc(typeName, field.Name)
		}
		events = append(events, teal.Registration{Kind: teal.RegisterFieldGet, Name: name, Type: typ, Doc: doc})
		if !readonly {
			events = append(events, teal.Registration{Kind: teal.RegisterFieldSet, Name: name, Type: typ})
		}
	}
	return events
}

// methodEvents registers value-receiver methods as pure and pointer-only
// methods as mutating. A String() string method becomes __tostring.
func (p *ReflectionProvider) methodEvents(t reflect.Type, typeName string, m typeMapper) []teal.Registration {
	var events []teal.Registration
	ptr := reflect.PointerTo(t)
	for i := 0; i < ptr.NumMethod(); i++ {
		method := ptr.Method(i)
		if isBindingMethod(method.Name) {
			continue
		}
		_, pure := t.MethodByName(method.Name)

		doc := ""
		if p.Docs != nil {
			doc = p.Docs.MemberDoc(typeName, method.Name)
		}

		if method.Name == "String" && isStringer(method.Type) {
			kind := teal.RegisterMetaMethod
			if !pure {
				kind = teal.RegisterMetaMethodMut
			}
			events = append(events, teal.Registration{
				Kind:    kind,
				Meta:    teal.MetaToString,
				Doc:     doc,
				Returns: teal.Descriptors(teal.String()),
			})
			continue
		}

		name := p.MemberCase.Apply(method.Name)
		p.checkName(typeName, name)

		kind := teal.RegisterMethod
		if !pure {
			kind = teal.RegisterMethodMut
		}
		params, returns := m.funcParts(method.Type, 1)
		events = append(events, teal.Registration{
			Kind:    kind,
			Name:    name,
			Doc:     doc,
			Params:  params,
			Returns: returns,
		})
	}
	return events
}

// isBindingMethod reports whether name belongs to the Describer or Enum
// interfaces rather than the exposed API.
func isBindingMethod(name string) bool {
	return name == "DescribeTeal" || name == "TealVariants"
}

func isStringer(ft reflect.Type) bool {
	return ft.NumIn() == 1 && ft.NumOut() == 1 && ft.Out(0).Kind() == reflect.String
}

func (p *ReflectionProvider) checkName(typeName, name string) {
	if IsReserved(name) {
		p.addWarning("RESERVED_NAME", fmt.Sprintf("member %q of %s is a Teal keyword", name, typeName), typeName)
	}
}

func (p *ReflectionProvider) addWarning(code, message, typeName string) {
	p.Warnings = append(p.Warnings, Warning{Code: code, Message: message, TypeName: typeName})
}

// parseTealTag parses a `teal:"name,readonly"` struct tag.
func parseTealTag(tag string) (name string, readonly, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "readonly" {
			readonly = true
		}
	}
	return name, readonly, false
}
