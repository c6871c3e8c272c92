package teal

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Exposer produces the fully populated TypeGenerator of one host type by
// replaying that type's registrations.
type Exposer interface {
	Expose() (TypeGenerator, error)
}

// ExposerFunc adapts a function to the Exposer interface.
type ExposerFunc func() (TypeGenerator, error)

// Expose calls f.
func (f ExposerFunc) Expose() (TypeGenerator, error) { return f() }

// RecordOf returns an Exposer that builds a record named name by calling fn
// with a fresh generator.
func RecordOf(name string, fn func(g *RecordGenerator) error) Exposer {
	return ExposerFunc(func() (TypeGenerator, error) {
		g := NewRecordGenerator(External(name))
		if fn != nil {
			if err := fn(g); err != nil {
				return nil, err
			}
		}
		return g, nil
	})
}

// EnumOf returns an Exposer for a string enum with the given variants.
func EnumOf(name string, variants ...string) Exposer {
	return ExposerFunc(func() (TypeGenerator, error) {
		return NewEnumGenerator(External(name), variants...), nil
	})
}

// GlobalInstance is a named top-level value exposed by the module.
type GlobalInstance struct {
	Name     string
	TealType Signature

	// IsExternal qualifies the type with the module name when rendered.
	IsExternal bool

	Doc string
}

// InstanceCollector receives the global instances an InstanceExporter wants
// to expose.
type InstanceCollector struct {
	instances []GlobalInstance
	pending   string
}

// Document appends to the documentation of the next added instance.
func (c *InstanceCollector) Document(text string) {
	if c.pending != "" {
		c.pending += ParagraphSeparator + text
		return
	}
	c.pending = text
}

// Add exposes a global named name of type typ. The type is qualified with
// the module name when it is a single External type.
func (c *InstanceCollector) Add(name string, typ Descriptor) {
	sig := typ.TypeParts().clone()
	t, ok := sig.Single()
	c.instances = append(c.instances, GlobalInstance{
		Name:       name,
		TealType:   sig,
		IsExternal: ok && t.Kind == KindExternal,
		Doc:        c.pending,
	})
	c.pending = ""
}

// Instances returns the collected instances.
func (c *InstanceCollector) Instances() []GlobalInstance {
	return c.instances
}

// InstanceExporter is implemented by values that expose global instances.
type InstanceExporter interface {
	ExportInstances(c *InstanceCollector) error
}

// InstanceExporterFunc adapts a function to the InstanceExporter interface.
type InstanceExporterFunc func(c *InstanceCollector) error

// ExportInstances calls f.
func (f InstanceExporterFunc) ExportInstances(c *InstanceCollector) error { return f(c) }

// TypeWalker collects type bodies and global instances into one module.
type TypeWalker struct {
	GivenTypes      []TypeGenerator
	GlobalInstances []GlobalInstance

	consumed bool
}

// NewTypeWalker creates an empty walker.
func NewTypeWalker() *TypeWalker {
	return &TypeWalker{}
}

// ProcessType appends the TypeGenerator produced by e.
func (w *TypeWalker) ProcessType(e Exposer) error {
	gen, err := e.Expose()
	if err != nil {
		return errors.Wrap(err, "expose type")
	}
	if gen == nil {
		return errors.New("expose type: exposer returned no generator")
	}
	w.GivenTypes = append(w.GivenTypes, gen)
	return nil
}

// ProcessTypeInline is like ProcessType but merges a record's body directly
// into the module record. Enums are appended unchanged.
func (w *TypeWalker) ProcessTypeInline(e Exposer) error {
	gen, err := e.Expose()
	if err != nil {
		return errors.Wrap(err, "expose inline type")
	}
	if gen == nil {
		return errors.New("expose inline type: exposer returned no generator")
	}
	if rec, ok := gen.(*RecordGenerator); ok {
		rec.ShouldBeInlined = true
	}
	w.GivenTypes = append(w.GivenTypes, gen)
	return nil
}

// DocumentGlobalInstances appends every instance e exposes.
func (w *TypeWalker) DocumentGlobalInstances(e InstanceExporter) error {
	c := &InstanceCollector{}
	if err := e.ExportInstances(c); err != nil {
		return errors.Wrap(err, "export global instances")
	}
	w.GlobalInstances = append(w.GlobalInstances, c.instances...)
	return nil
}

// Generate renders the module. It consumes the walker and every generator
// it holds.
func (w *TypeWalker) Generate(moduleName string, isGlobal bool) (string, error) {
	if w.consumed {
		return "", ErrConsumed
	}
	w.consumed = true

	if err := checkName("module", moduleName); err != nil {
		return "", err
	}

	bodies := make([]string, 0, len(w.GivenTypes))
	for _, gen := range w.GivenTypes {
		body, err := gen.Generate()
		if err != nil {
			return "", errors.Wrapf(err, "generate %s", gen.Name())
		}
		bodies = append(bodies, body)
	}

	var b strings.Builder
	if isGlobal {
		b.WriteString("global record ")
	} else {
		b.WriteString("local record ")
	}
	b.WriteString(moduleName)
	b.WriteString("\n")
	for i, body := range bodies {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("end\n")

	for _, inst := range w.GlobalInstances {
		context := "global " + inst.Name
		if err := checkName(context, inst.Name); err != nil {
			return "", err
		}
		if err := checkSignature(context, inst.TealType); err != nil {
			return "", err
		}
		writeComment(&b, "", inst.Doc)
		b.WriteString("global ")
		b.WriteString(inst.Name)
		b.WriteString(": ")
		if inst.IsExternal {
			b.WriteString(moduleName)
			b.WriteString(".")
		}
		b.WriteString(inst.TealType.String())
		b.WriteString("\n")
	}

	b.WriteString("return ")
	b.WriteString(moduleName)
	b.WriteString("\n")
	return b.String(), nil
}
