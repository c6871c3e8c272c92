package provider

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/broady/tealgen/teal"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	enumType    = reflect.TypeOf((*Enum)(nil)).Elem()
)

// TypeOf converts a Go type to its Teal signature. Types with no Teal
// counterpart (channels, complex numbers, unsafe pointers) map to any.
func TypeOf(t reflect.Type) teal.Signature {
	return newTypeMapper(nil).typeOf(t)
}

// typeMapper converts Go types and reports lossy conversions.
type typeMapper struct {
	warn func(code, message string)

	// processing holds the named composite types currently being
	// converted. A type seen again while in this set refers to itself.
	processing map[reflect.Type]bool
}

func newTypeMapper(warn func(code, message string)) typeMapper {
	return typeMapper{warn: warn, processing: make(map[reflect.Type]bool)}
}

func (m typeMapper) warnf(code, format string, args ...any) {
	if m.warn != nil {
		m.warn(code, fmt.Sprintf(format, args...))
	}
}

func (m typeMapper) typeOf(t reflect.Type) teal.Signature {
	for seen := map[reflect.Type]bool{}; t.Kind() == reflect.Pointer; t = t.Elem() {
		if seen[t] {
			m.warnf("CYCLE_DETECTED", "recursive pointer type %s mapped to 'any'", t.String())
			return teal.Any().TypeParts()
		}
		seen[t] = true
	}

	if name, ok := genericName(t); ok {
		return teal.Generic(name).TypeParts()
	}
	if t.Name() != "" && t.PkgPath() != "" && (t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType)) {
		return teal.External(typeName(t)).TypeParts()
	}

	// Only named composites can refer to themselves.
	if k := t.Kind(); t.Name() != "" && (k == reflect.Slice || k == reflect.Array || k == reflect.Map || k == reflect.Func) {
		if m.processing[t] {
			m.warnf("CYCLE_DETECTED", "recursive type %s mapped to 'any'", t.String())
			return teal.Any().TypeParts()
		}
		m.processing[t] = true
		defer delete(m.processing, t)
	}

	switch t.Kind() {
	case reflect.Bool:
		return teal.Boolean().TypeParts()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return teal.Integer().TypeParts()
	case reflect.Float32, reflect.Float64:
		return teal.Number().TypeParts()
	case reflect.String:
		return teal.String().TypeParts()
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return teal.String().TypeParts()
		}
		return teal.Array(m.typeOf(t.Elem()))
	case reflect.Map:
		return teal.Map(m.typeOf(t.Key()), m.typeOf(t.Elem()))
	case reflect.Func:
		params, returns := m.funcParts(t, 0)
		return teal.Func(params, returns)
	case reflect.Interface:
		return teal.Any().TypeParts()
	case reflect.Struct:
		if t.Name() == "" {
			m.warnf("ANONYMOUS_STRUCT", "anonymous struct %s mapped to 'any'", t.String())
			return teal.Any().TypeParts()
		}
		if isInstantiated(t) {
			m.warnf("GENERIC_INSTANTIATION", "type arguments of %s dropped; all instantiations share the name %s", t.String(), typeName(t))
		}
		return teal.External(typeName(t)).TypeParts()
	default:
		m.warnf("UNSUPPORTED_TYPE", "type %s (kind %s) mapped to 'any'", t.String(), t.Kind())
		return teal.Any().TypeParts()
	}
}

// funcParts converts the parameters and results of a func type, skipping the
// first skip inputs (receivers). A leading context.Context and a trailing
// error are dropped; they have no script-visible counterpart.
func (m typeMapper) funcParts(t reflect.Type, skip int) (params, returns []teal.Descriptor) {
	in := t.NumIn()
	start := skip
	if start < in && t.In(start) == contextType {
		start++
	}
	for i := start; i < in; i++ {
		pt := t.In(i)
		if t.IsVariadic() && i == in-1 {
			params = append(params, teal.Variadic(m.typeOf(pt.Elem())))
			continue
		}
		params = append(params, m.typeOf(pt))
	}

	out := t.NumOut()
	if out > 0 && t.Out(out-1) == errorType {
		out--
	}
	for i := 0; i < out; i++ {
		returns = append(returns, m.typeOf(t.Out(i)))
	}
	return params, returns
}

// typeName returns the Teal name of a named Go type. Instantiated generic
// types drop their type arguments ("Box[int]" -> "Box").
func typeName(t reflect.Type) string {
	name := t.Name()
	if idx := strings.Index(name, "["); idx >= 0 {
		name = name[:idx]
	}
	return name
}

// isInstantiated reports whether t is an instantiation of a generic type.
func isInstantiated(t reflect.Type) bool {
	return strings.Contains(t.Name(), "[")
}
