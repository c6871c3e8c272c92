package provider

import (
	"context"
	"go/ast"
	"go/constant"
	"go/types"
	"sort"
	"strings"

	"github.com/broady/tealgen/teal"
	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// SourceProvider reads doc comments and string enums from Go source.
type SourceProvider struct{}

// DocSet holds documentation and enum constants keyed by Go type name.
// Types with the same name in different packages share an entry; the first
// package loaded wins.
type DocSet struct {
	types   map[string]string
	members map[string]map[string]string
	enums   map[string][]string
}

// NewDocSet returns an empty DocSet.
func NewDocSet() *DocSet {
	return &DocSet{
		types:   make(map[string]string),
		members: make(map[string]map[string]string),
		enums:   make(map[string][]string),
	}
}

// TypeDoc returns the doc comment of the named type.
func (d *DocSet) TypeDoc(typeName string) string {
	return d.types[typeName]
}

// MemberDoc returns the doc comment of a field or method of the named type.
// member is the Go name, before any case conversion.
func (d *DocSet) MemberDoc(typeName, member string) string {
	return d.members[typeName][member]
}

// SetTypeDoc records documentation for a type unless it already has some.
func (d *DocSet) SetTypeDoc(typeName, doc string) {
	if _, ok := d.types[typeName]; ok || doc == "" {
		return
	}
	d.types[typeName] = doc
}

// SetMemberDoc records documentation for a member unless it already has some.
func (d *DocSet) SetMemberDoc(typeName, member, doc string) {
	if doc == "" {
		return
	}
	m := d.members[typeName]
	if m == nil {
		m = make(map[string]string)
		d.members[typeName] = m
	}
	if _, ok := m[member]; !ok {
		m[member] = doc
	}
}

// Enums returns the names of the string enums found, sorted.
func (d *DocSet) Enums() []string {
	names := make([]string, 0, len(d.enums))
	for name := range d.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enum builds an EnumGenerator from the string constants of the named type,
// in declaration order.
func (d *DocSet) Enum(typeName string) (*teal.EnumGenerator, bool) {
	variants, ok := d.enums[typeName]
	if !ok {
		return nil, false
	}
	g := teal.NewEnumGenerator(teal.External(typeName), variants...)
	if doc := d.types[typeName]; doc != "" {
		g.DocumentType(doc)
	}
	return g, true
}

// EnumExposer adapts Enum for use with teal.TypeWalker.ProcessType.
func (d *DocSet) EnumExposer(typeName string) teal.Exposer {
	return teal.ExposerFunc(func() (teal.TypeGenerator, error) {
		g, ok := d.Enum(typeName)
		if !ok {
			return nil, errors.Newf("no string constants of type %s", typeName)
		}
		return g, nil
	})
}

// Load parses the packages matching patterns and collects their docs.
func (p *SourceProvider) Load(ctx context.Context, patterns ...string) (*DocSet, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}
	if len(pkgs) == 0 {
		return nil, errors.New("no packages found")
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	docs := NewDocSet()
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			collectFileDocs(docs, file)
		}
		collectEnums(docs, pkg.Types)
	}
	return docs, nil
}

// collectFileDocs records the doc comments of type declarations, their
// struct fields, and methods declared in file.
func collectFileDocs(docs *DocSet, file *ast.File) {
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || !ts.Name.IsExported() {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(decl.Specs) == 1 {
					doc = decl.Doc
				}
				docs.SetTypeDoc(ts.Name.Name, commentText(doc))

				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				for _, field := range st.Fields.List {
					text := commentText(field.Doc)
					if text == "" {
						text = commentText(field.Comment)
					}
					for _, name := range field.Names {
						docs.SetMemberDoc(ts.Name.Name, name.Name, text)
					}
				}
			}
		case *ast.FuncDecl:
			if decl.Recv == nil || len(decl.Recv.List) == 0 || !decl.Name.IsExported() {
				continue
			}
			if recv := receiverName(decl.Recv.List[0].Type); recv != "" {
				docs.SetMemberDoc(recv, decl.Name.Name, commentText(decl.Doc))
			}
		}
	}
}

// receiverName returns the base type name of a method receiver expression:
// T, *T, T[P] and *T[P] all yield "T".
func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// collectEnums records every exported named type with a string underlying
// type that has package-level constants, in declaration order.
func collectEnums(docs *DocSet, pkg *types.Package) {
	if pkg == nil {
		return
	}
	consts := make(map[string][]*types.Const)
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Pkg() != pkg || !named.Obj().Exported() {
			continue
		}
		basic, ok := named.Underlying().(*types.Basic)
		if !ok || basic.Info()&types.IsString == 0 {
			continue
		}
		consts[named.Obj().Name()] = append(consts[named.Obj().Name()], c)
	}

	for typeName, cs := range consts {
		if _, ok := docs.enums[typeName]; ok {
			continue
		}
		sort.Slice(cs, func(i, j int) bool { return cs[i].Pos() < cs[j].Pos() })
		variants := make([]string, len(cs))
		for i, c := range cs {
			variants[i] = constant.StringVal(c.Val())
		}
		docs.enums[typeName] = variants
	}
}

// commentText returns the text of a comment group without markers or the
// trailing newline.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
