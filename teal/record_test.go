package teal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGenerator_Generate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(g *RecordGenerator)
		want    []string
		notWant []string
	}{
		{
			name: "empty record",
			build: func(g *RecordGenerator) {},
			want:  []string{"\trecord Vec\n\tend"},
		},
		{
			name: "userdata annotation",
			build: func(g *RecordGenerator) {
				g.IsUserData = true
			},
			want: []string{"\trecord Vec\n\t\tuserdata\n\tend"},
		},
		{
			name: "method has self, function does not",
			build: func(g *RecordGenerator) {
				g.AddMethod("m", nil, nil)
				g.AddFunction("f", nil, nil)
			},
			want: []string{
				"\t\t-- Pure methods\n\t\tm: function(Vec):()\n",
				"\t\t-- Pure functions\n\t\tf: function():()\n",
			},
		},
		{
			name: "mutating buckets",
			build: func(g *RecordGenerator) {
				g.AddMethodMut("scale", Descriptors(Number()), nil)
				g.AddFunctionMut("reset", nil, nil)
			},
			want: []string{
				"\t\t-- Mutating methods\n\t\tscale: function(Vec,number):()\n",
				"\t\t-- Mutating functions\n\t\treset: function():()\n",
			},
			notWant: []string{"Pure methods", "Pure functions"},
		},
		{
			name: "meta methods use reserved names",
			build: func(g *RecordGenerator) {
				g.AddMetaMethod(MetaAdd, Descriptors(External("Vec")), Descriptors(External("Vec")))
				g.AddMetaMethodMut(MetaNewIndex, Descriptors(String(), Any()), nil)
				g.AddMetaFunction(MetaCall, Descriptors(Integer()), Descriptors(External("Vec")))
				g.AddMetaFunctionMut(CustomMetaMethod("__gc"), nil, nil)
			},
			want: []string{
				"\t\t-- Meta methods\n\t\tmetamethod __add: function(Vec,Vec):(Vec)\n",
				"\t\t-- Mutating meta methods\n\t\tmetamethod __newindex: function(Vec,string,any):()\n",
				"\t\t-- Meta functions\n\t\tmetamethod __call: function(integer):(Vec)\n",
				"\t\t-- Mutating meta functions\n\t\tmetamethod __gc: function():()\n",
			},
		},
		{
			name: "static fields",
			build: func(g *RecordGenerator) {
				g.AddStaticField("zero", External("Vec"))
			},
			want: []string{"\t\t-- Static fields\n\t\tzero : Vec\n"},
		},
		{
			name: "member documentation",
			build: func(g *RecordGenerator) {
				g.Document("Adds two vectors.\nReturns a new one.")
				g.AddMethod("plus", Descriptors(External("Vec")), Descriptors(External("Vec")))
			},
			want: []string{"\t\t--Adds two vectors.\n\t\t--Returns a new one.\n\t\tplus: function(Vec,Vec):(Vec)\n"},
		},
		{
			name: "type documentation precedes record",
			build: func(g *RecordGenerator) {
				g.DocumentType("A vector.")
			},
			want: []string{"\t--A vector.\n\trecord Vec\n"},
		},
		{
			name: "generic method",
			build: func(g *RecordGenerator) {
				g.AddMethod("map", Descriptors(Func(Descriptors(Number()), Descriptors(Generic("T")))), Descriptors(Array(Generic("T"))))
			},
			want: []string{"\t\tmap: function<T>(Vec,function(number):(T)):({T})\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewRecordGenerator(External("Vec"))
			tt.build(g)
			got, err := g.Generate()
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, got, nw)
			}
		})
	}
}

func TestRecordGenerator_SectionOrder(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	// Register in reverse of render order.
	g.AddMetaFunctionMut(MetaClose, nil, nil)
	g.AddMetaFunction(MetaCall, nil, nil)
	g.AddMetaMethodMut(MetaNewIndex, nil, nil)
	g.AddMetaMethod(MetaLen, nil, nil)
	g.AddFunctionMut("fm", nil, nil)
	g.AddFunction("f", nil, nil)
	g.AddMethodMut("mm", nil, nil)
	g.AddMethod("m", nil, nil)
	g.AddStaticField("s", Integer())
	g.AddField("x", Integer())

	got, err := g.Generate()
	require.NoError(t, err)

	sections := []string{
		SectionFields, SectionStaticFields, SectionMethods, SectionMutMethods,
		SectionFunctions, SectionMutFunctions, SectionMetaMethods, SectionMetaMethodsMut,
		SectionMetaFunctions, SectionMetaFunctionsMut,
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(got, "-- "+s+"\n")
		require.NotEqual(t, -1, idx, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestRecordGenerator_FieldGetterSetterMerge(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	g.Document("a")
	g.AddField("x", Integer())
	g.Document("b")
	g.AddField("x", Integer())

	require.Len(t, g.Fields, 2)

	got, err := g.Generate()
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(got, "x : integer"))
	assert.Contains(t, got, "\t\t--a\n\t\t--b\n\t\tx : integer\n")
}

func TestRecordGenerator_NoDedupAcrossBuckets(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	g.AddFunction("__call", nil, nil)
	g.AddMetaFunction(MetaCall, nil, nil)

	got, err := g.Generate()
	require.NoError(t, err)
	assert.Contains(t, got, "\t\t__call: function():()\n")
	assert.Contains(t, got, "\t\tmetamethod __call: function():()\n")
}

func TestRecordGenerator_Inlined(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	g.IsUserData = true
	g.ShouldBeInlined = true
	g.AddMethod("m", nil, nil)

	got, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "\t-- Pure methods\n\tm: function(R):()", got)
	assert.NotContains(t, got, "record")
	assert.NotContains(t, got, "userdata")
}

func TestRecordGenerator_GenerateHelp(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	g.DocumentType("R does things.")
	g.Document("Does x.")
	g.AddMethod("x", nil, nil)
	g.GenerateHelp()

	assert.True(t, g.ShouldGenerateHelpMethod)
	require.Len(t, g.Functions, 1)
	assert.Equal(t, "help", g.Functions[0].Name)
	assert.Equal(t, "function():(string)", g.Functions[0].Signature.String())

	assert.Equal(t, "Does x.", g.Help("x"))
	assert.Equal(t, NoDocumentation, g.Help("y"))
	assert.Contains(t, g.Help(""), "R does things.")
	assert.Contains(t, g.Help(""), "\nx\nhelp")

	got, err := g.Generate()
	require.NoError(t, err)
	assert.Contains(t, got, "\t\thelp: function():(string)\n")
}

func TestRecordGenerator_GenerateHelpKeepsPendingDoc(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	g.Document("Docs for later.")
	g.GenerateHelp()

	help, ok := g.Docs.Lookup("help")
	require.True(t, ok)
	assert.NotContains(t, help, "Docs for later.")

	pending, ok := g.Docs.Pending()
	require.True(t, ok)
	assert.Equal(t, "Docs for later.", pending)

	g.AddMethod("later", nil, nil)
	later, _ := g.Docs.Lookup("later")
	assert.Equal(t, "Docs for later.", later)
}

func TestRecordGenerator_ConsumedOnce(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	_, err := g.Generate()
	require.NoError(t, err)

	_, err = g.Generate()
	assert.ErrorIs(t, err, ErrConsumed)
}

func TestRecordGenerator_InvalidEncoding(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *RecordGenerator)
	}{
		{"field name", func(g *RecordGenerator) { g.AddField("bad\xff", Integer()) }},
		{"method name", func(g *RecordGenerator) { g.AddMethod("\xc3\x28", nil, nil) }},
		{"type in signature", func(g *RecordGenerator) { g.AddFunction("f", Descriptors(External("T\xfe")), nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewRecordGenerator(External("R"))
			tt.build(g)
			_, err := g.Generate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEncoding)

			var encErr *EncodingError
			require.ErrorAs(t, err, &encErr)
			assert.Equal(t, "record R", encErr.Context)
		})
	}
}

func TestRecordGenerator_Replay(t *testing.T) {
	g := NewRecordGenerator(External("Example"))
	err := g.Replay([]Registration{
		{Kind: RegisterTypeDoc, Doc: "An example."},
		{Kind: RegisterFieldGet, Name: "example", Type: Integer(), Doc: "getter"},
		{Kind: RegisterFieldSet, Name: "example", Type: Integer(), Doc: "setter"},
		{Kind: RegisterMethod, Name: "add", Params: Descriptors(Integer()), Returns: Descriptors(Integer())},
		{Kind: RegisterMetaMethod, Meta: MetaToString, Returns: Descriptors(String())},
	})
	require.NoError(t, err)

	assert.Equal(t, "An example.", g.Docs.TypeDoc())
	doc, _ := g.Docs.Lookup("example")
	assert.Equal(t, "getter\nsetter", doc)
	require.Len(t, g.Methods, 1)
	require.Len(t, g.MetaMethods, 1)
	assert.Equal(t, "__tostring", g.MetaMethods[0].Name)
}

func TestRecordGenerator_ReplayErrors(t *testing.T) {
	g := NewRecordGenerator(External("R"))
	err := g.Replay([]Registration{
		{Kind: RegisterMethod, Name: "ok"},
		{Kind: RegisterFieldGet, Name: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration 1")

	err = g.Apply(Registration{Kind: RegistrationKind(42)})
	assert.Error(t, err)
}

func TestEnumGenerator_Generate(t *testing.T) {
	g := NewEnumGenerator(External("Color"), "red", "green")
	g.AddVariant("red")
	g.AddVariant(`say "hi"\now`)
	g.DocumentType("Colors.")

	got, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "\t--Colors.\n\tenum Color\n\t\t\"red\"\n\t\t\"green\"\n\t\t\"red\"\n\t\t\"say \\\"hi\\\"\\\\now\"\n\tend", got)

	_, err = g.Generate()
	assert.ErrorIs(t, err, ErrConsumed)
}

func TestEnumGenerator_InvalidEncoding(t *testing.T) {
	g := NewEnumGenerator(External("Color"), "ok", "bad\xff")
	_, err := g.Generate()
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
