package main

import (
	"errors"
	"fmt"
	"go/format"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	charmlog "github.com/charmbracelet/log"
)

type cmdError struct{ msg string }

func (e *cmdError) Error() string { return e.msg }

// GoImport is one import line of the generated file.
type GoImport struct {
	Name string // optional alias
	Path string
}

// qualifier returns the identifier the import is referenced by.
func (gi GoImport) qualifier() string {
	if gi.Name != "" {
		return gi.Name
	}
	return path.Base(gi.Path)
}

type memberView struct {
	Method string // Field | Property
	Name   string
	Path   string
	Writer string
}

type typeView struct {
	Name    string
	Var     string
	Members []memberView
}

type fileView struct {
	Package  string
	Sources  string
	Imports  []GoImport
	Ready    string
	NodeType string
	Types    []typeView
}

// generate scans cfg.Dir and writes cfg.Out.
func generate(cfg Config, log *charmlog.Logger) error {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return err
	}

	scan, err := scanPackage(cfg.Dir)
	if err != nil {
		return err
	}
	if scan.Package == "" {
		return &cmdError{msg: "no Go files in " + filepath.ToSlash(cfg.Dir)}
	}

	selected, err := selectTypes(scan.Types, cfg.Types)
	if err != nil {
		return err
	}

	readyImport := runtimeImportFor(inferRuntimeImport(cfg.RuntimeImport, scan.Imports), scan.Imports)
	readyName := readyImport.qualifier()

	view := fileView{
		Package:  scan.Package,
		Ready:    readyName,
		NodeType: cfg.NodeType,
	}

	used := map[string]bool{}
	noteQualifiers(used, cfg.NodeType)

	sources := map[string]bool{}
	for _, mt := range selected {
		sources[mt.File] = true
		tv := typeView{Name: mt.Name, Var: lowerFirst(mt.Name) + "Members"}
		for _, f := range mt.Fields {
			noteQualifiers(used, f.Type)
			tv.Members = append(tv.Members, memberView{
				Method: "Field",
				Name:   f.Name,
				Path:   f.Path,
				Writer: writerExpr(readyName, mt.Name, cfg.NodeType, f.Type, "x."+f.Name+" = v"),
			})
		}
		for _, p := range mt.Props {
			mv := memberView{Method: "Property", Name: p.Name, Path: p.Path, Writer: "nil"}
			if p.Setter != "" {
				noteQualifiers(used, p.SetterType)
				mv.Writer = writerExpr(readyName, mt.Name, cfg.NodeType, p.SetterType, "x."+p.Setter+"(v)")
			} else {
				log.Warn("property has no setter; it will be skipped at runtime",
					"type", mt.Name, "property", p.Name, "path", p.Path)
			}
			tv.Members = append(tv.Members, mv)
		}
		view.Types = append(view.Types, tv)
	}

	imports := []GoImport{readyImport}
	delete(used, readyName)

	nodeImports, err := resolveQualifiers(used, cfg.NodeImport, cfg.NodeType, scan.Imports)
	if err != nil {
		return err
	}
	view.Imports = dedupeAndSortImports(append(imports, nodeImports...))

	files := make([]string, 0, len(sources))
	for f := range sources {
		files = append(files, f)
	}
	sort.Strings(files)
	view.Sources = strings.Join(files, ", ")

	src, err := execTemplate(fileTpl, view)
	if err != nil {
		return err
	}
	if err := writeFormatted(cfg.Out, src); err != nil {
		return err
	}
	log.Info("generated", "out", filepath.ToSlash(cfg.Out), "types", len(view.Types))
	return nil
}

func selectTypes(all []*markedType, want []string) ([]*markedType, error) {
	if len(all) == 0 {
		return nil, &cmdError{msg: "no types with onready members found"}
	}
	if len(want) == 0 {
		return all, nil
	}
	byName := make(map[string]*markedType, len(all))
	for _, mt := range all {
		byName[mt.Name] = mt
	}
	out := make([]*markedType, 0, len(want))
	seen := map[string]bool{}
	for _, name := range want {
		mt, ok := byName[name]
		if !ok {
			return nil, &cmdError{msg: "type " + strconv.Quote(name) + " has no onready members"}
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// writerExpr returns the Writer expression for a member of type memberType.
func writerExpr(readyName, owner, nodeType, memberType, assign string) string {
	if memberType == nodeType {
		return fmt.Sprintf("%s.Assign(func(x *%s, v %s) { %s })", readyName, owner, nodeType, assign)
	}
	return fmt.Sprintf("%s.Convert[%s, %s](func(x *%s, v %s) { %s })", readyName, owner, nodeType, owner, memberType, assign)
}

var qualifierRe = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\.[A-Za-z_]`)

func noteQualifiers(used map[string]bool, typeExpr string) {
	for _, m := range qualifierRe.FindAllStringSubmatch(typeExpr, -1) {
		used[m[1]] = true
	}
}

// resolveQualifiers maps each package qualifier used in generated code to an
// import. --node-import wins for the node type's qualifier; the rest come from
// the scanned package's own imports.
func resolveQualifiers(used map[string]bool, nodeImport, nodeType string, scanned []GoImport) ([]GoImport, error) {
	nodeQual := ""
	if m := qualifierRe.FindStringSubmatch(nodeType); m != nil {
		nodeQual = m[1]
	}

	quals := make([]string, 0, len(used))
	for q := range used {
		quals = append(quals, q)
	}
	sort.Strings(quals)

	var out []GoImport
	for _, q := range quals {
		if q == nodeQual && strings.TrimSpace(nodeImport) != "" {
			gi := GoImport{Path: strings.TrimSpace(nodeImport)}
			if gi.qualifier() != q {
				gi.Name = q
			}
			out = append(out, gi)
			continue
		}
		gi, ok := findImportByQualifier(scanned, q)
		if !ok {
			return nil, &cmdError{msg: "cannot infer import for package qualifier " + strconv.Quote(q) + " (set --node-import or import it in the package)"}
		}
		out = append(out, gi)
	}
	return out, nil
}

func findImportByQualifier(imports []GoImport, q string) (GoImport, bool) {
	for _, gi := range imports {
		if gi.qualifier() == q {
			return gi, true
		}
	}
	return GoImport{}, false
}

// inferRuntimeImport prefers an explicit value, then whatever the package
// already imports as ".../ready", then the default module path.
func inferRuntimeImport(explicit string, scanned []GoImport) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	for _, gi := range scanned {
		if strings.HasSuffix(gi.Path, "/ready") {
			return gi.Path
		}
	}
	return defaultRuntimeImport
}

// runtimeImportFor keeps the alias the scanned package already uses for the
// runtime import, so generated code refers to it by the same name.
func runtimeImportFor(importPath string, scanned []GoImport) GoImport {
	gi := GoImport{Path: importPath}
	for _, s := range scanned {
		if s.Path == importPath && s.Name != "" && s.Name != "_" && s.Name != "." {
			gi.Name = s.Name
			break
		}
	}
	if gi.Name == path.Base(gi.Path) {
		gi.Name = ""
	}
	return gi
}

func dedupeAndSortImports(imps []GoImport) []GoImport {
	seen := map[GoImport]bool{}
	out := make([]GoImport, 0, len(imps))
	for _, gi := range imps {
		if seen[gi] {
			continue
		}
		seen[gi] = true
		out = append(out, gi)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func execTemplate(tpl *template.Template, data any) ([]byte, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeFormatted(out string, src []byte) error {
	fmtSrc, err := format.Source(src)
	if err != nil {
		// keep the raw output around for debugging
		_ = os.WriteFile(out, src, 0o644)
		return errors.New("gofmt/format failed: " + err.Error())
	}
	return os.WriteFile(out, fmtSrc, 0o644)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var fileTpl = template.Must(template.New("onready").Parse(`// Code generated by onreadygen. DO NOT EDIT.
// source: {{ .Sources }}

package {{ .Package }}

import (
{{- range .Imports }}
	{{ if .Name }}{{ .Name }} {{ end }}"{{ .Path }}"
{{- end }}
)
{{ range .Types }}
var {{ .Var }} = {{ $.Ready }}.Declare[{{ .Name }}, {{ $.NodeType }}]()
{{- range .Members }}.
	{{ .Method }}({{ printf "%q" .Name }}, {{ printf "%q" .Path }}, {{ .Writer }})
{{- end }}

// InitializeOnReady assigns {{ .Name }}'s marked members from reg.
func (x *{{ .Name }}) InitializeOnReady(reg *{{ $.Ready }}.Registry) (*{{ $.Ready }}.Result, error) {
	return {{ $.Ready }}.Initialize(reg, x, {{ .Var }})
}
{{ end }}`))
