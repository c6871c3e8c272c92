// Package tealgen renders Teal declaration files (.d.tl) for Go types
// exposed to Lua.
//
// Example:
//
//	tealgen.FromValues(Vec{}, Color("")).
//	    Module("shapes").
//	    WithDocsFrom("example.com/game/shapes").
//	    ToFile("./teal")
package tealgen

import (
	"context"
	"log/slog"

	"github.com/broady/tealgen/provider"
	"github.com/broady/tealgen/sink"
	"github.com/broady/tealgen/teal"
	"github.com/cockroachdb/errors"
)

// Generator provides a fluent API for building a declaration file.
// Create with FromValues or New and configure with method chaining.
// A Generator may be rendered more than once; each terminal call rebuilds
// the declaration model.
type Generator struct {
	cfg       Config
	values    []any
	inline    []any
	exposers  []teal.Exposer
	enums     []string
	exporters []teal.InstanceExporter
	logger    *slog.Logger
}

// New returns an empty Generator configured by cfg.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// FromValues returns a Generator exposing the types of vs as nested
// records or enums. Pass zero values or pointers.
func FromValues(vs ...any) *Generator {
	return &Generator{values: vs}
}

// Values exposes more types as nested records or enums.
func (g *Generator) Values(vs ...any) *Generator {
	g.values = append(g.values, vs...)
	return g
}

// Inline exposes types whose members are merged into the module record.
func (g *Generator) Inline(vs ...any) *Generator {
	g.inline = append(g.inline, vs...)
	return g
}

// Types adds hand-built exposers, such as teal.RecordOf results.
func (g *Generator) Types(es ...teal.Exposer) *Generator {
	g.exposers = append(g.exposers, es...)
	return g
}

// Enums exposes string enums found in the packages given to WithDocsFrom.
func (g *Generator) Enums(typeNames ...string) *Generator {
	g.enums = append(g.enums, typeNames...)
	return g
}

// Instances adds global instances declared after the module record.
func (g *Generator) Instances(e teal.InstanceExporter) *Generator {
	g.exporters = append(g.exporters, e)
	return g
}

// WithDocsFrom reads doc comments from the Go packages matching patterns.
func (g *Generator) WithDocsFrom(patterns ...string) *Generator {
	g.cfg.Packages = append(g.cfg.Packages, patterns...)
	return g
}

// Module sets the module name.
func (g *Generator) Module(name string) *Generator {
	g.cfg.ModuleName = name
	return g
}

// Local declares the module record as local instead of global.
func (g *Generator) Local() *Generator {
	g.cfg.Local = true
	return g
}

// WithHelp adds a help function to every exposed record.
func (g *Generator) WithHelp() *Generator {
	g.cfg.Help = true
	return g
}

// MemberCase sets the case conversion for Go member names.
func (g *Generator) MemberCase(mc provider.MemberCase) *Generator {
	g.cfg.MemberCase = string(mc)
	return g
}

// OutFile sets the output path used by ToSink and ToFile.
func (g *Generator) OutFile(path string) *Generator {
	g.cfg.OutFile = path
	return g
}

// Logger sets the logger for progress and provider warnings.
// Default: slog.Default()
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// Config returns the configuration with defaults applied.
func (g *Generator) Config() Config {
	return applyConfigDefaults(g.cfg)
}

// Walker builds the declaration model without rendering it.
func (g *Generator) Walker(ctx context.Context) (*teal.TypeWalker, error) {
	cfg, err := g.validConfig()
	if err != nil {
		return nil, err
	}
	return g.buildWalker(ctx, cfg)
}

// Render returns the declaration file contents.
func (g *Generator) Render(ctx context.Context) (string, error) {
	cfg, err := g.validConfig()
	if err != nil {
		return "", err
	}
	w, err := g.buildWalker(ctx, cfg)
	if err != nil {
		return "", err
	}
	return g.render(ctx, w, cfg)
}

// Snapshot returns the declaration model encoded as JSON. The snapshot can
// be rendered later with RenderSnapshot or the tealgen command.
func (g *Generator) Snapshot(ctx context.Context) ([]byte, error) {
	w, err := g.Walker(ctx)
	if err != nil {
		return nil, err
	}
	return teal.Encode(w)
}

// ToSink renders the declaration file and writes it to s at the configured
// output path.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) error {
	cfg, err := g.validConfig()
	if err != nil {
		return err
	}
	w, err := g.buildWalker(ctx, cfg)
	if err != nil {
		return err
	}
	out, err := g.render(ctx, w, cfg)
	if err != nil {
		return err
	}
	if err := s.WriteFile(ctx, cfg.OutFile, []byte(out)); err != nil {
		return errors.Wrapf(err, "write %s", cfg.OutFile)
	}
	g.log().InfoContext(ctx, "wrote declaration file", slog.String("path", cfg.OutFile))
	return nil
}

// ToFile renders the declaration file into dir.
func (g *Generator) ToFile(ctx context.Context, dir string) error {
	return g.ToSink(ctx, sink.NewFilesystemSink(dir))
}

// RenderSnapshot renders a snapshot produced by Generator.Snapshot using
// the module settings in cfg.
func RenderSnapshot(data []byte, cfg Config) (string, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	w, err := teal.Decode(data)
	if err != nil {
		return "", err
	}
	return w.Generate(cfg.ModuleName, !cfg.Local)
}

func (g *Generator) log() *slog.Logger {
	if g.logger == nil {
		return slog.Default()
	}
	return g.logger
}

func (g *Generator) validConfig() (Config, error) {
	cfg := applyConfigDefaults(g.cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (g *Generator) buildWalker(ctx context.Context, cfg Config) (*teal.TypeWalker, error) {
	logger := g.log()

	var docs *provider.DocSet
	if len(cfg.Packages) > 0 {
		var err error
		docs, err = (&provider.SourceProvider{}).Load(ctx, cfg.Packages...)
		if err != nil {
			return nil, errors.Wrap(err, "load docs")
		}
		logger.DebugContext(ctx, "loaded package docs",
			slog.Any("packages", cfg.Packages),
			slog.Int("enums", len(docs.Enums())),
		)
	}

	rp := &provider.ReflectionProvider{Docs: docs, MemberCase: provider.MemberCase(cfg.MemberCase)}
	w := teal.NewTypeWalker()

	for _, v := range g.inline {
		if err := w.ProcessTypeInline(g.withHelp(rp.Exposer(v), cfg)); err != nil {
			return nil, err
		}
	}
	for _, v := range g.values {
		if err := w.ProcessType(g.withHelp(rp.Exposer(v), cfg)); err != nil {
			return nil, err
		}
	}
	for _, e := range g.exposers {
		if err := w.ProcessType(g.withHelp(e, cfg)); err != nil {
			return nil, err
		}
	}
	if len(g.enums) > 0 && docs == nil {
		return nil, errors.New("source enums require WithDocsFrom")
	}
	for _, name := range g.enums {
		if err := w.ProcessType(docs.EnumExposer(name)); err != nil {
			return nil, errors.Wrapf(err, "enum %s", name)
		}
	}
	for _, e := range g.exporters {
		if err := w.DocumentGlobalInstances(e); err != nil {
			return nil, err
		}
	}

	for _, warn := range rp.Warnings {
		logger.WarnContext(ctx, warn.Message,
			slog.String("code", warn.Code),
			slog.String("type", warn.TypeName),
		)
	}
	return w, nil
}

func (g *Generator) withHelp(e teal.Exposer, cfg Config) teal.Exposer {
	if !cfg.Help {
		return e
	}
	return teal.ExposerFunc(func() (teal.TypeGenerator, error) {
		gen, err := e.Expose()
		if err != nil {
			return nil, err
		}
		if rec, ok := gen.(*teal.RecordGenerator); ok {
			rec.GenerateHelp()
		}
		return gen, nil
	})
}

func (g *Generator) render(ctx context.Context, w *teal.TypeWalker, cfg Config) (string, error) {
	types := len(w.GivenTypes)
	out, err := w.Generate(cfg.ModuleName, !cfg.Local)
	if err != nil {
		g.log().ErrorContext(ctx, "render failed",
			slog.String("module", cfg.ModuleName),
			slog.Any("error", err),
		)
		return "", err
	}
	g.log().DebugContext(ctx, "rendered module",
		slog.String("module", cfg.ModuleName),
		slog.Int("types", types),
		slog.Int("bytes", len(out)),
	)
	return out, nil
}
