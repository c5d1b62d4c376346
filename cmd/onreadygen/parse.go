package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const (
	tagKey        = "onready"
	pathDirective = "//onready:path "
)

// markedMember is a field or property found in source.
type markedMember struct {
	Name     string
	Path     string
	Property bool
	// Type is the member type for fields, the getter result for properties.
	Type string
	// Setter is the setter name when the property has one.
	Setter     string
	SetterType string
}

// markedType is a struct with at least one marked member.
type markedType struct {
	Name   string
	File   string
	Fields []markedMember
	Props  []markedMember
}

type scanResult struct {
	Package string
	Types   []*markedType
	Imports []GoImport
}

// scanPackage parses the non-test, non-generated Go files in dir.
func scanPackage(dir string) (*scanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	res := &scanResult{}
	byName := map[string]*markedType{}
	structs := map[string]string{} // type name -> file
	generic := map[string]bool{}
	var order []string
	var files []*ast.File

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isSourceFile(name) {
			continue
		}
		full := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, full, nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if res.Package == "" {
			res.Package = f.Name.Name
		}
		files = append(files, f)

		for _, imp := range f.Imports {
			gi := GoImport{Path: strings.Trim(imp.Path.Value, `"`)}
			if imp.Name != nil {
				gi.Name = imp.Name.Name
			}
			res.Imports = append(res.Imports, gi)
		}

		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				structs[ts.Name.Name] = name
				if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
					generic[ts.Name.Name] = true
				}
				fields, err := taggedFields(ts.Name.Name, st)
				if err != nil {
					return nil, err
				}
				if len(fields) == 0 {
					continue
				}
				if generic[ts.Name.Name] {
					return nil, &cmdError{msg: "onready tags on " + ts.Name.Name + ": generic types are not supported"}
				}
				mt := &markedType{Name: ts.Name.Name, File: name, Fields: fields}
				byName[mt.Name] = mt
				order = append(order, mt.Name)
			}
		}
	}

	// Methods may live in any file, so collect them in a second pass.
	setters := map[string]map[string]string{} // type -> setter name -> param type
	type getter struct {
		recv, name, path, typ string
		pos                   token.Pos
	}
	var getters []getter

	for _, f := range files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
				continue
			}
			recv := receiverName(fd.Recv.List[0].Type)
			if recv == "" {
				continue
			}
			params := fd.Type.Params.List
			if strings.HasPrefix(fd.Name.Name, "Set") && len(params) == 1 && len(params[0].Names) <= 1 {
				if setters[recv] == nil {
					setters[recv] = map[string]string{}
				}
				setters[recv][fd.Name.Name] = types.ExprString(params[0].Type)
			}
			path, ok := directivePath(fd.Doc)
			if !ok {
				continue
			}
			results := fd.Type.Results
			if len(params) != 0 || results == nil || len(results.List) != 1 || len(results.List[0].Names) > 1 {
				return nil, &cmdError{msg: "onready:path on " + recv + "." + fd.Name.Name + ": getter must take no arguments and return one value"}
			}
			getters = append(getters, getter{
				recv: recv,
				name: fd.Name.Name,
				path: path,
				typ:  types.ExprString(results.List[0].Type),
				pos:  fd.Pos(),
			})
		}
	}

	sort.SliceStable(getters, func(i, j int) bool { return getters[i].pos < getters[j].pos })
	for _, g := range getters {
		file, isStruct := structs[g.recv]
		if !isStruct {
			return nil, &cmdError{msg: "onready:path on " + g.recv + "." + g.name + ": receiver is not a struct in this package"}
		}
		if generic[g.recv] {
			return nil, &cmdError{msg: "onready:path on " + g.recv + "." + g.name + ": generic types are not supported"}
		}
		mt, ok := byName[g.recv]
		if !ok {
			mt = &markedType{Name: g.recv, File: file}
			byName[g.recv] = mt
			order = append(order, g.recv)
		}
		m := markedMember{Name: g.name, Path: g.path, Property: true, Type: g.typ}
		if pt, ok := setters[g.recv]["Set"+g.name]; ok {
			m.Setter = "Set" + g.name
			m.SetterType = pt
		}
		mt.Props = append(mt.Props, m)
	}

	sort.Strings(order)
	for _, n := range order {
		res.Types = append(res.Types, byName[n])
	}
	res.Imports = dedupeAndSortImports(res.Imports)
	return res, nil
}

func taggedFields(owner string, st *ast.StructType) ([]markedMember, error) {
	var out []markedMember
	for _, fld := range st.Fields.List {
		if fld.Tag == nil {
			continue
		}
		raw, err := strconv.Unquote(fld.Tag.Value)
		if err != nil {
			continue
		}
		path, ok := reflect.StructTag(raw).Lookup(tagKey)
		if !ok {
			continue
		}
		if len(fld.Names) == 0 {
			return nil, &cmdError{msg: "onready tag on embedded field " + types.ExprString(fld.Type) + " in " + owner + ": only named fields can be marked"}
		}
		for _, n := range fld.Names {
			out = append(out, markedMember{Name: n.Name, Path: path, Type: types.ExprString(fld.Type)})
		}
	}
	return out, nil
}

func directivePath(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, pathDirective) {
			p := strings.TrimSpace(strings.TrimPrefix(c.Text, pathDirective))
			return p, p != ""
		}
	}
	return "", false
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch x := expr.(type) {
	case *ast.IndexExpr:
		expr = x.X
	case *ast.IndexListExpr:
		expr = x.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func isSourceFile(name string) bool {
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	// avoid feeding generated outputs back into the scan
	return !strings.HasSuffix(name, ".gen.go") && !strings.Contains(name, ".gen.") && !strings.HasSuffix(name, "_gen.go")
}
