// Package generator writes transaction methods for aggregates that carry a
// history.Journal of their own type.
//
// Given
//
//	type Form struct {
//		Name    string
//		journal history.Journal[Form]
//	}
//
// the generator emits HistoryJournal, Begin, Commit, Revert, CommitAll,
// RevertAll, Clear, Changed and Len on *Form, each delegating to the
// history package so that ordering matches history.Stack.
//
// Targets that cannot carry the methods (non-struct types, generic types,
// missing or ambiguous journal fields) are rejected with a DefinitionError
// before any file is written.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/revertable/internal/logging"
)

// Options configures a Generator.
type Options struct {
	// Types lists the aggregates to generate. Empty selects every struct
	// that carries a journal.
	Types []string

	// Journal names the journal field. Empty locates it by type.
	Journal string

	// Suffix replaces ".go" in generated file names.
	Suffix string
}

// Generator produces transaction methods for Go source files.
type Generator struct {
	opts Options
	log  *logging.Logger
}

// New creates a generator. A nil logger discards output.
func New(opts Options, log *logging.Logger) *Generator {
	if opts.Suffix == "" {
		opts.Suffix = "_history.go"
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Generator{opts: opts, log: log.WithComponent("generator")}
}

// OutputPath returns the generated file path for a source file.
func (g *Generator) OutputPath(path string) string {
	return strings.TrimSuffix(path, ".go") + g.opts.Suffix
}

// IsGenerated reports whether path is a file this generator writes.
func (g *Generator) IsGenerated(path string) bool {
	return strings.HasSuffix(path, g.opts.Suffix)
}

// File generates code for the source file at path and writes it next to
// the source. The output is left untouched when it is already current.
// It returns the output path.
func (g *Generator) File(path string) (string, error) {
	if g.IsGenerated(path) {
		return "", fmt.Errorf("%s is a generated file", path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}

	code, err := g.Source(path, src)
	if err != nil {
		return "", err
	}

	out := g.OutputPath(path)
	if existing, err := os.ReadFile(out); err == nil && bytes.Equal(existing, code) {
		g.log.Debug("%s is up to date", out)
		return out, nil
	}

	if err := os.WriteFile(out, code, 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	g.log.WithField("source", path).Info("wrote %s", out)
	return out, nil
}

// Source generates code for the file named filename with contents src.
func (g *Generator) Source(filename string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	alias, ok := historyAlias(f)
	if !ok {
		return nil, fmt.Errorf("%s: %w (%s)", filename, ErrNoHistoryImport, historyPath)
	}

	typeSpecs, order := structTypes(f)
	var targets []typeData

	if len(g.opts.Types) > 0 {
		for _, name := range g.opts.Types {
			ts, ok := typeSpecs[name]
			if !ok {
				return nil, &DefinitionError{Type: name, Reason: "type not found in " + filename}
			}
			td, err := g.target(fset, ts, alias)
			if err != nil {
				return nil, err
			}
			targets = append(targets, td)
		}
	} else {
		for _, name := range order {
			ts := typeSpecs[name]
			if !hasJournal(ts, alias) {
				continue
			}
			td, err := g.target(fset, ts, alias)
			if err != nil {
				return nil, err
			}
			targets = append(targets, td)
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, ErrNoTargets)
		}
	}

	for _, td := range targets {
		if td.Recv == alias {
			return nil, &DefinitionError{Type: td.Name, Reason: "receiver name collides with import " + alias}
		}
		g.log.WithFields(map[string]any{"type": td.Name, "field": td.Field}).Debug("generating methods")
	}

	var buf bytes.Buffer
	err = fileTemplate.Execute(&buf, fileData{
		Package: f.Name.Name,
		Alias:   alias,
		Import:  historyPath,
		Types:   targets,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return code, nil
}

// target validates the type declaration and describes the methods to generate for it.
func (g *Generator) target(fset *token.FileSet, ts *ast.TypeSpec, alias string) (typeData, error) {
	name := ts.Name.Name
	fail := func(reason string) (typeData, error) {
		return typeData{}, &DefinitionError{
			Type:   name,
			Pos:    fset.Position(ts.Pos()).String(),
			Reason: reason,
		}
	}

	if ts.Assign.IsValid() {
		return fail("type aliases are not supported")
	}
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return fail("generic types are not supported")
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return fail("must be a struct type")
	}

	want := fmt.Sprintf("%s.Journal[%s]", alias, name)
	var fields []string
	for _, field := range st.Fields.List {
		arg, ok := journalArg(field.Type, alias)
		if !ok {
			continue
		}
		if len(field.Names) == 0 {
			return fail("journal must be a named field, not embedded")
		}
		if arg != name {
			if g.opts.Journal == "" || fieldNamed(field, g.opts.Journal) {
				return fail(fmt.Sprintf("field %s has type %s.Journal[%s], want %s",
					field.Names[0].Name, alias, arg, want))
			}
			continue
		}
		for _, n := range field.Names {
			fields = append(fields, n.Name)
		}
	}

	if g.opts.Journal != "" {
		for _, f := range fields {
			if f == g.opts.Journal {
				return typeData{Name: name, Recv: receiver(name), Field: f}, nil
			}
		}
		return fail(fmt.Sprintf("no field %s of type %s", g.opts.Journal, want))
	}

	switch len(fields) {
	case 0:
		return fail("no field of type " + want)
	case 1:
		return typeData{Name: name, Recv: receiver(name), Field: fields[0]}, nil
	default:
		return fail(fmt.Sprintf("multiple journal fields (%s)", strings.Join(fields, ", ")))
	}
}

// historyAlias returns the name under which f imports the history package.
func historyAlias(f *ast.File) (string, bool) {
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != historyPath {
			continue
		}
		if imp.Name == nil {
			return "history", true
		}
		switch imp.Name.Name {
		case "_", ".":
			return "", false
		default:
			return imp.Name.Name, true
		}
	}
	return "", false
}

// structTypes indexes the type declarations of f, keeping source order.
func structTypes(f *ast.File) (map[string]*ast.TypeSpec, []string) {
	typeSpecs := make(map[string]*ast.TypeSpec)
	var order []string
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			ts := s.(*ast.TypeSpec)
			typeSpecs[ts.Name.Name] = ts
			order = append(order, ts.Name.Name)
		}
	}
	return typeSpecs, order
}

func hasJournal(ts *ast.TypeSpec, alias string) bool {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return false
	}
	for _, field := range st.Fields.List {
		if _, ok := journalArg(field.Type, alias); ok {
			return true
		}
	}
	return false
}

// journalArg matches alias.Journal[X] and returns X.
func journalArg(expr ast.Expr, alias string) (string, bool) {
	ix, ok := expr.(*ast.IndexExpr)
	if !ok {
		return "", false
	}
	sel, ok := ix.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Journal" {
		return "", false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != alias {
		return "", false
	}
	if arg, ok := ix.Index.(*ast.Ident); ok {
		return arg.Name, true
	}
	return "", true
}

func fieldNamed(field *ast.Field, name string) bool {
	for _, n := range field.Names {
		if n.Name == name {
			return true
		}
	}
	return false
}

func receiver(typeName string) string {
	for _, r := range typeName {
		return string(unicode.ToLower(r))
	}
	return "x"
}

// IsDefinitionError reports whether err is a *DefinitionError.
func IsDefinitionError(err error) bool {
	var de *DefinitionError
	return errors.As(err, &de)
}
