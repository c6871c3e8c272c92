package teal

// ExportedFunction is a callable member of a record: a method, a function or
// a meta-method.
type ExportedFunction struct {
	// Name is the member name. For meta-methods this is the reserved token
	// (e.g. "__add").
	Name string

	// Signature is the complete function type, including the generic
	// parameter list and the leading self-type for methods.
	Signature Signature

	// IsMetaMethod marks entries rendered with the metamethod keyword.
	IsMetaMethod bool
}

// BuildSignature composes a function signature from parameter and return
// descriptors. When self is non-nil it becomes the leading parameter.
//
// Generic-kind types found in params and then returns (including nested type
// arguments) are declared once each, in first-encounter order, as the
// signature's generic parameter list.
func BuildSignature(name string, isMetaMethod bool, self Signature, params, returns []Descriptor) ExportedFunction {
	paramSigs := make([]Signature, len(params))
	for i, p := range params {
		paramSigs[i] = p.TypeParts().clone()
	}
	returnSigs := make([]Signature, len(returns))
	for i, r := range returns {
		returnSigs[i] = r.TypeParts().clone()
	}

	var generics []TealType
	for _, sig := range paramSigs {
		generics = appendGenerics(generics, sig)
	}
	for _, sig := range returnSigs {
		generics = appendGenerics(generics, sig)
	}

	var out Signature
	if len(generics) > 0 {
		out = append(out, Symbol("function<"))
		for i := range generics {
			if i > 0 {
				out = append(out, Symbol(","))
			}
			g := generics[i]
			out = append(out, &g)
		}
		out = append(out, Symbol(">("))
	} else {
		out = append(out, Symbol("function("))
	}

	if self != nil {
		out = append(out, self.clone()...)
		if len(paramSigs) > 0 {
			out = append(out, Symbol(","))
		}
	}
	out = appendSignatures(out, paramSigs)
	out = append(out, Symbol("):("))
	out = appendSignatures(out, returnSigs)
	out = append(out, Symbol(")"))

	return ExportedFunction{
		Name:         name,
		Signature:    out,
		IsMetaMethod: isMetaMethod,
	}
}

func appendGenerics(found []TealType, sig Signature) []TealType {
	for _, g := range sig.Generics() {
		if !containsType(found, g) {
			found = append(found, g)
		}
	}
	return found
}

func appendSignatures(out Signature, sigs []Signature) Signature {
	for i, sig := range sigs {
		if i > 0 {
			out = append(out, Symbol(","))
		}
		out = append(out, sig...)
	}
	return out
}
