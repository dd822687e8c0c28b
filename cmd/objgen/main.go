package main

import (
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// defaultImport is the object-model package the generated file binds to.
const defaultImport = "github.com/sghaida/omo/om"

// Param describes one constructor parameter and the struct field it fills.
type Param struct {
	// Name is the parameter name in the generated signature.
	Name string `yaml:"name"`

	// Type is the Go type of the parameter, verbatim.
	Type string `yaml:"type"`

	// Field is the (possibly promoted) field on the concrete struct the
	// parameter is assigned to. Defaults to the capitalized param name.
	Field string `yaml:"field"`
}

// Ctor describes one generated factory function. Its parameter list is the
// constructor signature; callers with a mismatched argument list get an
// ordinary compile error.
type Ctor struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params"`
}

// InterfaceSpec describes one capability interface declaration.
type InterfaceSpec struct {
	// Name is the Go interface type, defined by hand in the same package.
	Name string `yaml:"name"`

	// Extends lists manifest interfaces this one extends.
	Extends []string `yaml:"extends"`
}

// ClassSpec describes one managed class declaration.
type ClassSpec struct {
	// Name is the concrete struct type, defined by hand in the same package.
	Name string `yaml:"name"`

	// Extends names the parent class within the manifest; empty parents the
	// class at the universal root.
	Extends string `yaml:"extends"`

	// Implements lists manifest interfaces the class declares.
	Implements []string `yaml:"implements"`

	// Size optionally fixes the shallow footprint (om.WithSize).
	Size uint64 `yaml:"size"`

	// Constructors are the factory signatures to generate.
	Constructors []Ctor `yaml:"constructors"`
}

// Manifest is the full input schema consumed by the generator.
type Manifest struct {
	// Package is the Go package of the generated file.
	Package string `yaml:"package"`

	// Prefix qualifies declared names ("<prefix>.<Name>") to keep identity
	// tokens process-unique across packages. Defaults to Package.
	Prefix string `yaml:"prefix"`

	// Import overrides the object-model import path.
	Import string `yaml:"import"`

	Interfaces []InterfaceSpec `yaml:"interfaces"`
	Classes    []ClassSpec     `yaml:"classes"`
}

// applyDefaults fills derived manifest fields in place.
func applyDefaults(m *Manifest) {
	if m == nil {
		return
	}
	if strings.TrimSpace(m.Prefix) == "" {
		m.Prefix = m.Package
	}
	if strings.TrimSpace(m.Import) == "" {
		m.Import = defaultImport
	}
	for ci := range m.Classes {
		for xi := range m.Classes[ci].Constructors {
			params := m.Classes[ci].Constructors[xi].Params
			for pi := range params {
				if params[pi].Field == "" && params[pi].Name != "" {
					params[pi].Field = strings.ToUpper(params[pi].Name[:1]) + params[pi].Name[1:]
				}
			}
		}
	}
}

// validateManifest checks semantic correctness of the manifest: identifier
// validity, uniqueness, known references, and an acyclic extends chain.
// These map to the declaration-time errors the om package would otherwise
// raise when the generated file first runs.
func validateManifest(m *Manifest) error {
	if m == nil {
		return fmt.Errorf("objgen: empty manifest")
	}
	if !token.IsIdentifier(m.Package) {
		return fmt.Errorf("objgen: package %q is not a valid identifier", m.Package)
	}
	if len(m.Classes) == 0 {
		return fmt.Errorf("objgen: manifest declares no classes")
	}

	ifaces := make(map[string]struct{}, len(m.Interfaces))
	for _, in := range m.Interfaces {
		if !token.IsIdentifier(in.Name) || !token.IsExported(in.Name) {
			return fmt.Errorf("objgen: interface name %q must be an exported identifier", in.Name)
		}
		if _, dup := ifaces[in.Name]; dup {
			return fmt.Errorf("objgen: duplicate interface %q", in.Name)
		}
		ifaces[in.Name] = struct{}{}
	}
	// Extends edges may only point at earlier interfaces, which keeps the
	// graph acyclic and matches the var-block emission order.
	seen := make(map[string]struct{}, len(m.Interfaces))
	for _, in := range m.Interfaces {
		for _, ext := range in.Extends {
			if _, ok := seen[ext]; !ok {
				return fmt.Errorf("objgen: interface %q extends %q, which is not declared before it", in.Name, ext)
			}
		}
		seen[in.Name] = struct{}{}
	}

	classes := make(map[string]struct{}, len(m.Classes))
	ctors := make(map[string]struct{})
	for _, c := range m.Classes {
		if !token.IsIdentifier(c.Name) || !token.IsExported(c.Name) {
			return fmt.Errorf("objgen: class name %q must be an exported identifier", c.Name)
		}
		if _, dup := classes[c.Name]; dup {
			return fmt.Errorf("objgen: duplicate class %q", c.Name)
		}
		classes[c.Name] = struct{}{}
	}
	for _, c := range m.Classes {
		if c.Extends != "" {
			if _, ok := classes[c.Extends]; !ok {
				return fmt.Errorf("objgen: class %q extends unknown class %q", c.Name, c.Extends)
			}
		}
		if err := checkAncestry(m, c.Name); err != nil {
			return err
		}
		for _, in := range c.Implements {
			if _, ok := ifaces[in]; !ok {
				return fmt.Errorf("objgen: class %q implements unknown interface %q", c.Name, in)
			}
		}
		for _, ct := range c.Constructors {
			if !token.IsIdentifier(ct.Name) {
				return fmt.Errorf("objgen: constructor name %q is not a valid identifier", ct.Name)
			}
			if _, dup := ctors[ct.Name]; dup {
				return fmt.Errorf("objgen: duplicate constructor %q", ct.Name)
			}
			ctors[ct.Name] = struct{}{}
			for _, p := range ct.Params {
				if !token.IsIdentifier(p.Name) {
					return fmt.Errorf("objgen: constructor %q has invalid param name %q", ct.Name, p.Name)
				}
				if strings.TrimSpace(p.Type) == "" {
					return fmt.Errorf("objgen: constructor %q param %q has no type", ct.Name, p.Name)
				}
				if !token.IsIdentifier(p.Field) {
					return fmt.Errorf("objgen: constructor %q param %q has invalid field %q", ct.Name, p.Name, p.Field)
				}
			}
		}
	}
	return nil
}

// checkAncestry walks the extends chain from name and rejects cycles.
func checkAncestry(m *Manifest, name string) error {
	byName := make(map[string]*ClassSpec, len(m.Classes))
	for i := range m.Classes {
		byName[m.Classes[i].Name] = &m.Classes[i]
	}
	visited := map[string]struct{}{}
	for cur := name; cur != ""; {
		if _, again := visited[cur]; again {
			return fmt.Errorf("objgen: class %q has a cyclic extends chain", name)
		}
		visited[cur] = struct{}{}
		next, ok := byName[cur]
		if !ok {
			break
		}
		cur = next.Extends
	}
	return nil
}

// templateData is the input passed to the Go template.
type templateData struct {
	Manifest Manifest
}

// genTemplate is the source template for the generated declarations file.
var genTemplate = template.Must(
	template.New("objgen").Parse(`// Code generated by objgen; DO NOT EDIT.

package {{.Manifest.Package}}

import (
	"{{.Manifest.Import}}"
)

var (
{{- range .Manifest.Interfaces}}
	{{.Name}}Iface = om.DeclareInterface[{{.Name}}]("{{$.Manifest.Prefix}}.{{.Name}}"{{range .Extends}}, {{.}}Iface{{end}})
{{- end}}
{{- range .Manifest.Classes}}
	{{.Name}}Class = om.Declare[*{{.Name}}]("{{$.Manifest.Prefix}}.{{.Name}}",
{{- if .Extends}}
		om.Extends({{.Extends}}Class),
{{- end}}
{{- if .Implements}}
		om.Implements({{range $i, $in := .Implements}}{{if $i}}, {{end}}{{$in}}Iface{{end}}),
{{- end}}
{{- if .Size}}
		om.WithSize({{.Size}}),
{{- end}}
	)
{{- end}}
)
{{range $c := .Manifest.Classes}}
{{- range $ct := $c.Constructors}}

// {{$ct.Name}} constructs a {{$c.Name}} through its class factory.
func {{$ct.Name}}({{range $i, $p := $ct.Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) om.Handle[*{{$c.Name}}] {
	return om.New({{$c.Name}}Class, func() *{{$c.Name}} {
		obj := new({{$c.Name}})
{{- range $p := $ct.Params}}
		obj.{{$p.Field}} = {{$p.Name}}
{{- end}}
		return obj
	})
}
{{- end}}
{{- end}}
`),
)

// render executes the template and gofmt-formats the result, so a generated
// file is always gofmt-clean and deterministic for a given manifest.
func render(m *Manifest) ([]byte, error) {
	var out strings.Builder
	if err := genTemplate.Execute(&out, templateData{Manifest: *m}); err != nil {
		return nil, err
	}
	formatted, err := format.Source([]byte(out.String()))
	if err != nil {
		return nil, fmt.Errorf("objgen: generated code does not parse: %w", err)
	}
	return formatted, nil
}

// loadManifest reads, decodes, defaults, and validates a manifest file.
func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("objgen: manifest %s: %w", path, err)
	}
	applyDefaults(&m)
	if err := validateManifest(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// newRootCmd builds the CLI. Separate from main so tests can run it with
// injected args and writers.
func newRootCmd(stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("OBJGEN")
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "objgen",
		Short:         "generate managed-class declarations and factories from a YAML manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath := v.GetString("manifest")
			outPath := v.GetString("out")
			if strings.TrimSpace(manifestPath) == "" || strings.TrimSpace(outPath) == "" {
				return fmt.Errorf("objgen: --manifest and --out are required")
			}

			m, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			if pkg := v.GetString("package"); pkg != "" {
				m.Package = pkg
				if err := validateManifest(m); err != nil {
					return err
				}
			}

			src, err := render(m)
			if err != nil {
				return err
			}
			if err := writeFileAtomic(filepath.Clean(outPath), src, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stderr, "objgen: wrote %s (%d classes, %d interfaces)\n",
				outPath, len(m.Classes), len(m.Interfaces))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("manifest", "m", "", "path to the class manifest YAML")
	flags.StringP("out", "o", "", "output .gen.go file path")
	flags.String("package", "", "override the package name from the manifest")
	_ = v.BindPFlag("manifest", flags.Lookup("manifest"))
	_ = v.BindPFlag("out", flags.Lookup("out"))
	_ = v.BindPFlag("package", flags.Lookup("package"))

	return cmd
}

// writeFileAtomic writes a file atomically: a temp file in the target
// directory renamed over the target path, so readers never observe partial
// writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(targetPath), filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, targetPath)
}

func main() {
	cmd := newRootCmd(os.Stderr)
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
