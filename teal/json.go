package teal

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// JSON serialization support for the model.
// Tagged unions (name parts, type generators) carry a "kind" field.

// MarshalText implements encoding.TextMarshaler for Kind.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindBuiltin, KindExternal, KindGeneric:
		return []byte(k.String()), nil
	default:
		return nil, errors.Newf("unknown type kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for Kind.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Builtin":
		*k = KindBuiltin
	case "External":
		*k = KindExternal
	case "Generic":
		*k = KindGeneric
	default:
		return errors.Newf("unknown type kind %q", text)
	}
	return nil
}

type tealTypeJSON struct {
	Name     string     `json:"name"`
	Kind     Kind       `json:"kind"`
	Generics []TealType `json:"generics,omitempty"`
}

// MarshalJSON implements json.Marshaler for TealType.
func (t TealType) MarshalJSON() ([]byte, error) {
	return json.Marshal(tealTypeJSON{Name: t.Name, Kind: t.Kind, Generics: t.Generics})
}

// UnmarshalJSON implements json.Unmarshaler for TealType.
func (t *TealType) UnmarshalJSON(data []byte) error {
	var v tealTypeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = TealType{Name: v.Name, Kind: v.Kind, Generics: v.Generics}
	return nil
}

type namePartJSON struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Name     string     `json:"name,omitempty"`
	TypeKind *Kind      `json:"typeKind,omitempty"`
	Generics []TealType `json:"generics,omitempty"`
}

// MarshalJSON implements json.Marshaler for Signature.
func (s Signature) MarshalJSON() ([]byte, error) {
	parts := make([]namePartJSON, len(s))
	for i, p := range s {
		switch v := p.(type) {
		case Symbol:
			parts[i] = namePartJSON{Kind: "symbol", Text: string(v)}
		case *TealType:
			kind := v.Kind
			parts[i] = namePartJSON{Kind: "type", Name: v.Name, TypeKind: &kind, Generics: v.Generics}
		default:
			return nil, errors.Newf("unsupported name part %T", p)
		}
	}
	return json.Marshal(parts)
}

// UnmarshalJSON implements json.Unmarshaler for Signature.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var parts []namePartJSON
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if parts == nil {
		*s = nil
		return nil
	}
	out := make(Signature, len(parts))
	for i, p := range parts {
		switch p.Kind {
		case "symbol":
			out[i] = Symbol(p.Text)
		case "type":
			if p.TypeKind == nil {
				return errors.Newf("name part %d: type part without typeKind", i)
			}
			out[i] = &TealType{Name: p.Name, Kind: *p.TypeKind, Generics: p.Generics}
		default:
			return errors.Newf("name part %d: unknown kind %q", i, p.Kind)
		}
	}
	*s = out
	return nil
}

type fieldJSON struct {
	Name      string    `json:"name"`
	Signature Signature `json:"signature"`
	Type      TealType  `json:"type"`
}

// MarshalJSON implements json.Marshaler for Field.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldJSON(f))
}

// UnmarshalJSON implements json.Unmarshaler for Field.
func (f *Field) UnmarshalJSON(data []byte) error {
	var v fieldJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Field(v)
	return nil
}

type exportedFunctionJSON struct {
	Name         string    `json:"name"`
	Signature    Signature `json:"signature"`
	IsMetaMethod bool      `json:"isMetaMethod,omitempty"`
}

// MarshalJSON implements json.Marshaler for ExportedFunction.
func (f ExportedFunction) MarshalJSON() ([]byte, error) {
	return json.Marshal(exportedFunctionJSON(f))
}

// UnmarshalJSON implements json.Unmarshaler for ExportedFunction.
func (f *ExportedFunction) UnmarshalJSON(data []byte) error {
	var v exportedFunctionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = ExportedFunction(v)
	return nil
}

type docEntryJSON struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type documentationJSON struct {
	Pending *string        `json:"pending,omitempty"`
	Entries []docEntryJSON `json:"entries,omitempty"`
	TypeDoc string         `json:"typeDoc,omitempty"`
}

// MarshalJSON implements json.Marshaler for Documentation. Entries are
// emitted in commit order.
func (d Documentation) MarshalJSON() ([]byte, error) {
	v := documentationJSON{TypeDoc: d.typeDoc}
	if d.hasPending {
		pending := d.pending
		v.Pending = &pending
	}
	for _, name := range d.order {
		v.Entries = append(v.Entries, docEntryJSON{Name: name, Text: d.entries[name]})
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler for Documentation.
func (d *Documentation) UnmarshalJSON(data []byte) error {
	var v documentationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Documentation{typeDoc: v.TypeDoc}
	if v.Pending != nil {
		d.pending = *v.Pending
		d.hasPending = true
	}
	for _, e := range v.Entries {
		if d.entries == nil {
			d.entries = make(map[string]string, len(v.Entries))
		}
		if _, dup := d.entries[e.Name]; dup {
			return errors.Newf("duplicate documentation entry %q", e.Name)
		}
		d.entries[e.Name] = e.Text
		d.order = append(d.order, e.Name)
	}
	return nil
}

type recordJSON struct {
	Kind                     string             `json:"kind"`
	ShouldBeInlined          bool               `json:"shouldBeInlined,omitempty"`
	IsUserData               bool               `json:"isUserData,omitempty"`
	TypeName                 Signature          `json:"typeName"`
	Fields                   []Field            `json:"fields,omitempty"`
	StaticFields             []Field            `json:"staticFields,omitempty"`
	Methods                  []ExportedFunction `json:"methods,omitempty"`
	MutMethods               []ExportedFunction `json:"mutMethods,omitempty"`
	Functions                []ExportedFunction `json:"functions,omitempty"`
	MutFunctions             []ExportedFunction `json:"mutFunctions,omitempty"`
	MetaMethods              []ExportedFunction `json:"metaMethods,omitempty"`
	MetaMethodsMut           []ExportedFunction `json:"metaMethodsMut,omitempty"`
	MetaFunctions            []ExportedFunction `json:"metaFunctions,omitempty"`
	MetaFunctionsMut         []ExportedFunction `json:"metaFunctionsMut,omitempty"`
	Docs                     Documentation      `json:"documentation"`
	ShouldGenerateHelpMethod bool               `json:"shouldGenerateHelpMethod,omitempty"`
}

// MarshalJSON implements json.Marshaler for RecordGenerator.
func (g *RecordGenerator) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Kind:                     "record",
		ShouldBeInlined:          g.ShouldBeInlined,
		IsUserData:               g.IsUserData,
		TypeName:                 g.TypeName,
		Fields:                   g.Fields,
		StaticFields:             g.StaticFields,
		Methods:                  g.Methods,
		MutMethods:               g.MutMethods,
		Functions:                g.Functions,
		MutFunctions:             g.MutFunctions,
		MetaMethods:              g.MetaMethods,
		MetaMethodsMut:           g.MetaMethodsMut,
		MetaFunctions:            g.MetaFunctions,
		MetaFunctionsMut:         g.MetaFunctionsMut,
		Docs:                     g.Docs,
		ShouldGenerateHelpMethod: g.ShouldGenerateHelpMethod,
	})
}

// UnmarshalJSON implements json.Unmarshaler for RecordGenerator.
func (g *RecordGenerator) UnmarshalJSON(data []byte) error {
	var v recordJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Kind != "record" {
		return errors.Newf("expected kind \"record\", got %q", v.Kind)
	}
	*g = RecordGenerator{
		ShouldBeInlined:          v.ShouldBeInlined,
		IsUserData:               v.IsUserData,
		TypeName:                 v.TypeName,
		Fields:                   v.Fields,
		StaticFields:             v.StaticFields,
		Methods:                  v.Methods,
		MutMethods:               v.MutMethods,
		Functions:                v.Functions,
		MutFunctions:             v.MutFunctions,
		MetaMethods:              v.MetaMethods,
		MetaMethodsMut:           v.MetaMethodsMut,
		MetaFunctions:            v.MetaFunctions,
		MetaFunctionsMut:         v.MetaFunctionsMut,
		Docs:                     v.Docs,
		ShouldGenerateHelpMethod: v.ShouldGenerateHelpMethod,
	}
	return nil
}

type enumJSON struct {
	Kind     string        `json:"kind"`
	TypeName Signature     `json:"typeName"`
	Variants []string      `json:"variants"`
	Docs     Documentation `json:"documentation"`
}

// MarshalJSON implements json.Marshaler for EnumGenerator.
func (g *EnumGenerator) MarshalJSON() ([]byte, error) {
	variants := g.Variants
	if variants == nil {
		variants = []string{}
	}
	return json.Marshal(enumJSON{Kind: "enum", TypeName: g.TypeName, Variants: variants, Docs: g.Docs})
}

// UnmarshalJSON implements json.Unmarshaler for EnumGenerator.
func (g *EnumGenerator) UnmarshalJSON(data []byte) error {
	var v enumJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Kind != "enum" {
		return errors.Newf("expected kind \"enum\", got %q", v.Kind)
	}
	*g = EnumGenerator{TypeName: v.TypeName, Variants: v.Variants, Docs: v.Docs}
	return nil
}

// decodeTypeGenerator decodes a "kind"-tagged type generator.
func decodeTypeGenerator(data json.RawMessage) (TypeGenerator, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "record":
		g := &RecordGenerator{}
		if err := json.Unmarshal(data, g); err != nil {
			return nil, err
		}
		return g, nil
	case "enum":
		g := &EnumGenerator{}
		if err := json.Unmarshal(data, g); err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, errors.Newf("unknown type generator kind %q", head.Kind)
	}
}

type globalInstanceJSON struct {
	Name       string    `json:"name"`
	TealType   Signature `json:"tealType"`
	IsExternal bool      `json:"isExternal,omitempty"`
	Doc        string    `json:"doc,omitempty"`
}

// MarshalJSON implements json.Marshaler for GlobalInstance.
func (g GlobalInstance) MarshalJSON() ([]byte, error) {
	return json.Marshal(globalInstanceJSON(g))
}

// UnmarshalJSON implements json.Unmarshaler for GlobalInstance.
func (g *GlobalInstance) UnmarshalJSON(data []byte) error {
	var v globalInstanceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = GlobalInstance(v)
	return nil
}

type typeWalkerJSON struct {
	GivenTypes      []json.RawMessage `json:"givenTypes"`
	GlobalInstances []GlobalInstance  `json:"globalInstances"`
}

// MarshalJSON implements json.Marshaler for TypeWalker.
func (w *TypeWalker) MarshalJSON() ([]byte, error) {
	v := typeWalkerJSON{
		GivenTypes:      make([]json.RawMessage, 0, len(w.GivenTypes)),
		GlobalInstances: w.GlobalInstances,
	}
	if v.GlobalInstances == nil {
		v.GlobalInstances = []GlobalInstance{}
	}
	for i, gen := range w.GivenTypes {
		raw, err := json.Marshal(gen)
		if err != nil {
			return nil, errors.Wrapf(err, "type %d", i)
		}
		v.GivenTypes = append(v.GivenTypes, raw)
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler for TypeWalker.
func (w *TypeWalker) UnmarshalJSON(data []byte) error {
	var v typeWalkerJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	out := TypeWalker{GlobalInstances: v.GlobalInstances}
	for i, raw := range v.GivenTypes {
		gen, err := decodeTypeGenerator(raw)
		if err != nil {
			return errors.Wrapf(err, "type %d", i)
		}
		out.GivenTypes = append(out.GivenTypes, gen)
	}
	*w = out
	return nil
}

// Encode serializes the walker as indented JSON. Text that is not valid
// UTF-8 is rejected; JSON would otherwise replace it with U+FFFD.
func Encode(w *TypeWalker) ([]byte, error) {
	if err := checkWalkerText(w); err != nil {
		return nil, &SerializationError{Op: "encode", Err: err}
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, &SerializationError{Op: "encode", Err: err}
	}
	return data, nil
}

// Decode parses a walker previously produced by Encode.
func Decode(data []byte) (*TypeWalker, error) {
	if !utf8.Valid(data) {
		return nil, &SerializationError{Op: "decode", Err: &EncodingError{Context: "snapshot", Name: firstInvalid(data)}}
	}
	w := &TypeWalker{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, &SerializationError{Op: "decode", Err: err}
	}
	return w, nil
}

// firstInvalid returns the first byte sequence of data that does not decode
// as UTF-8.
func firstInvalid(data []byte) []byte {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return data[i : i+1]
		}
		i += size
	}
	return nil
}

func checkWalkerText(w *TypeWalker) error {
	for _, gen := range w.GivenTypes {
		var err error
		switch g := gen.(type) {
		case *RecordGenerator:
			err = checkRecordText(g)
		case *EnumGenerator:
			err = checkEnumText(g)
		}
		if err != nil {
			return err
		}
	}
	for _, inst := range w.GlobalInstances {
		context := "global " + inst.Name
		if err := checkName(context, inst.Name); err != nil {
			return err
		}
		if err := checkSignature(context, inst.TealType); err != nil {
			return err
		}
		if err := checkName(context+" documentation", inst.Doc); err != nil {
			return err
		}
	}
	return nil
}

func checkRecordText(g *RecordGenerator) error {
	context := "record " + g.TypeName.String()
	if err := checkSignature(context, g.TypeName); err != nil {
		return err
	}
	for _, fields := range [][]Field{g.Fields, g.StaticFields} {
		for _, f := range fields {
			if err := checkName(context, f.Name); err != nil {
				return err
			}
			if err := checkSignature(context, f.Signature); err != nil {
				return err
			}
			if err := checkSignature(context, Signature{&f.Type}); err != nil {
				return err
			}
		}
	}
	for _, fns := range [][]ExportedFunction{
		g.Methods, g.MutMethods, g.Functions, g.MutFunctions,
		g.MetaMethods, g.MetaMethodsMut, g.MetaFunctions, g.MetaFunctionsMut,
	} {
		for _, fn := range fns {
			if err := checkName(context, fn.Name); err != nil {
				return err
			}
			if err := checkSignature(context, fn.Signature); err != nil {
				return err
			}
		}
	}
	return checkDocsText(context+" documentation", &g.Docs)
}

func checkEnumText(g *EnumGenerator) error {
	context := "enum " + g.TypeName.String()
	if err := checkSignature(context, g.TypeName); err != nil {
		return err
	}
	for _, v := range g.Variants {
		if err := checkName(context, v); err != nil {
			return err
		}
	}
	return checkDocsText(context+" documentation", &g.Docs)
}

func checkDocsText(context string, d *Documentation) error {
	if err := checkName(context, d.typeDoc); err != nil {
		return err
	}
	if err := checkName(context, d.pending); err != nil {
		return err
	}
	for _, key := range d.order {
		if err := checkName(context, key); err != nil {
			return err
		}
		if err := checkName(context, d.entries[key]); err != nil {
			return err
		}
	}
	return nil
}
