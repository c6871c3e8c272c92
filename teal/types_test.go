package teal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBuiltin, "Builtin"},
		{KindExternal, "External"},
		{KindGeneric, "Generic"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestTealType_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b TealType
		want bool
	}{
		{"same builtin", *Integer(), *Integer(), true},
		{"different name", *Integer(), *Number(), false},
		{"same name different kind", *Builtin("T"), *Generic("T"), false},
		{"nested generics equal", *External("Box", *Generic("T")), *External("Box", *Generic("T")), true},
		{"nested generics differ", *External("Box", *Generic("T")), *External("Box", *Generic("U")), false},
		{"generic count differs", *External("Box", *Generic("T")), *External("Box"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestTealType_String(t *testing.T) {
	assert.Equal(t, "integer", Integer().String())
	assert.Equal(t, "Box<T>", External("Box", *Generic("T")).String())
	assert.Equal(t, "Pair<K,Box<V>>", External("Pair", *Generic("K"), *External("Box", *Generic("V"))).String())
}

func TestCompositeTypes(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{"array", Array(Integer()), "{integer}"},
		{"map", Map(String(), Number()), "{string:number}"},
		{"nested array", Array(Array(Boolean())), "{{boolean}}"},
		{"function", Func(Descriptors(Integer(), String()), Descriptors(Boolean())), "function(integer,string):(boolean)"},
		{"empty function", Func(nil, nil), "function():()"},
		{"function returning function", Func(nil, Descriptors(Func(Descriptors(Integer()), nil))), "function():(function(integer):())"},
		{"union", Union(String(), Nil()), "string | nil"},
		{"variadic", Variadic(Any()), "any..."},
		{"map of external", Map(String(), External("User")), "{string:User}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.String())
		})
	}
}

func TestSignature_Generics(t *testing.T) {
	sig := Map(Generic("K"), Array(External("Box", *Generic("V"), *Generic("K"))))
	got := sig.Generics()
	assert.Equal(t, []TealType{*Generic("K"), *Generic("V")}, got)
}

func TestSignature_Collapse(t *testing.T) {
	single := External("User").TypeParts()
	assert.Equal(t, *External("User"), single.Collapse())

	composite := Array(Integer())
	assert.Equal(t, TealType{Name: "{integer}", Kind: KindBuiltin}, composite.Collapse())
}

func TestNewField(t *testing.T) {
	f := NewField("tags", Array(String()))
	assert.Equal(t, "tags", f.Name)
	assert.Equal(t, "{string}", f.Signature.String())
	assert.Equal(t, "{string}", f.Type.Name)
}

func TestSignature_CloneIsolation(t *testing.T) {
	orig := External("Box", *Generic("T"))
	sig := Array(orig)
	orig.Generics[0].Name = "U"
	assert.Equal(t, "{Box<T>}", sig.String())
}
