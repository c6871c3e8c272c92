package provider

import "reflect"

// Placeholder types that stand in for Teal generic parameters in bound Go
// signatures. A method declared as
//
//	func (l *List) Map(fn func(A) B) []B
//
// renders as map: function<A,B>(List,function(A):(B)):({B}).
type (
	A struct{}
	B struct{}
	C struct{}
	D struct{}
	E struct{}
	F struct{}
	G struct{}
	H struct{}
	I struct{}
	J struct{}
	K struct{}
	L struct{}
	M struct{}
	N struct{}
	O struct{}
	P struct{}
	Q struct{}
	R struct{}
	S struct{}
	T struct{}
	U struct{}
	V struct{}
)

var genericTypes = map[reflect.Type]string{}

func init() {
	for _, v := range []any{A{}, B{}, C{}, D{}, E{}, F{}, G{}, H{}, I{}, J{}, K{}, L{}, M{}, N{}, O{}, P{}, Q{}, R{}, S{}, T{}, U{}, V{}} {
		t := reflect.TypeOf(v)
		genericTypes[t] = t.Name()
	}
}

// genericName returns the Teal parameter name for a placeholder type.
func genericName(t reflect.Type) (string, bool) {
	name, ok := genericTypes[t]
	return name, ok
}
