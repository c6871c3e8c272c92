package teal

// Builtin returns a TealType for a builtin Teal type name.
func Builtin(name string) *TealType {
	return &TealType{Name: name, Kind: KindBuiltin}
}

// External returns a TealType for a type declared by the module.
func External(name string, generics ...TealType) *TealType {
	return &TealType{Name: name, Kind: KindExternal, Generics: generics}
}

// Generic returns a TealType for a type parameter placeholder.
func Generic(name string) *TealType {
	return &TealType{Name: name, Kind: KindGeneric}
}

// Convenience constructors for the builtin types every host type collapses to.

// Integer returns the Teal integer type. All host integer widths map here.
func Integer() *TealType { return Builtin("integer") }

// Number returns the Teal number type. All host float widths map here.
func Number() *TealType { return Builtin("number") }

// String returns the Teal string type.
func String() *TealType { return Builtin("string") }

// Boolean returns the Teal boolean type.
func Boolean() *TealType { return Builtin("boolean") }

// Any returns the Teal any type.
func Any() *TealType { return Builtin("any") }

// Nil returns the Teal nil type.
func Nil() *TealType { return Builtin("nil") }

// Array returns the array type {elem}.
func Array(elem Descriptor) Signature {
	sig := Signature{Symbol("{")}
	sig = append(sig, elem.TypeParts().clone()...)
	return append(sig, Symbol("}"))
}

// Map returns the map type {key:value}.
func Map(key, value Descriptor) Signature {
	sig := Signature{Symbol("{")}
	sig = append(sig, key.TypeParts().clone()...)
	sig = append(sig, Symbol(":"))
	sig = append(sig, value.TypeParts().clone()...)
	return append(sig, Symbol("}"))
}

// Func returns the function type function(params):(returns). Generic
// placeholders used inside are not declared here; they surface in the
// enclosing signature's generic list.
func Func(params, returns []Descriptor) Signature {
	sig := Signature{Symbol("function(")}
	sig = appendJoined(sig, params)
	sig = append(sig, Symbol("):("))
	sig = appendJoined(sig, returns)
	return append(sig, Symbol(")"))
}

// Union returns the union type a | b | ...
func Union(types ...Descriptor) Signature {
	var sig Signature
	for i, t := range types {
		if i > 0 {
			sig = append(sig, Symbol(" | "))
		}
		sig = append(sig, t.TypeParts().clone()...)
	}
	return sig
}

// Variadic marks a trailing parameter or return as repeating: T...
func Variadic(elem Descriptor) Signature {
	sig := elem.TypeParts().clone()
	return append(sig, Symbol("..."))
}

// Descriptors is shorthand for building a parameter or return list.
func Descriptors(ds ...Descriptor) []Descriptor {
	return ds
}

func appendJoined(sig Signature, ds []Descriptor) Signature {
	for i, d := range ds {
		if i > 0 {
			sig = append(sig, Symbol(","))
		}
		sig = append(sig, d.TypeParts().clone()...)
	}
	return sig
}
