package generate

import (
	"fmt"
	"io"
	"text/template"
)

// Template data. Every field is pre-rendered text; the templates only
// assemble, never compute.
type (
	headerData struct {
		PkgName string
		Imports []importInfo
	}

	doubleStructData struct {
		DoubleName     string
		TargetDisplay  string
		TypeParamsDecl string
	}

	constructorData struct {
		DoubleName     string
		TargetDisplay  string
		TypeParamsDecl string
		TypeParamsUse  string
		NameExpr       string
		FirstMember    string
		Registrations  []string
	}

	interfaceAccessorData struct {
		DoubleName    string
		TypeParamsUse string
		ContractType  string
		ImplName      string
	}

	memberSugarData struct {
		DoubleName    string
		TypeParamsUse string
		Member        string
	}

	implStructData struct {
		ImplName       string
		ContractType   string
		TypeParamsDecl string
	}

	implMethodData struct {
		ImplName      string
		TypeParamsUse string
		Member        string
		ParamsDecl    string
		ResultsDecl   string
		CallArgs      string
		ResultExprs   string
	}

	funcDoubleData struct {
		DoubleName     string
		TargetDisplay  string
		ContractType   string
		TypeParamsDecl string
		TypeParamsUse  string
		NameExpr       string
	}
)

const tmplHeader = `// Code generated by standgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
`

const tmplDoubleStruct = `// {{.DoubleName}} is a configurable stand-in for {{.TargetDisplay}}.
type {{.DoubleName}}{{.TypeParamsDecl}} struct {
	Double *standin.Double
}
`

const tmplConstructor = `// New{{.DoubleName}} returns the {{.TargetDisplay}} stand-in registered with
// t's journal, declaring its members on first use.
func New{{.DoubleName}}{{.TypeParamsDecl}}(t standin.TestReporter) *{{.DoubleName}}{{.TypeParamsUse}} {
	dbl := standin.DoubleFor(t, {{.NameExpr}})
{{- if .FirstMember}}
	if !dbl.Has("{{.FirstMember}}") {
		dbl.Register(
{{- range .Registrations}}
			{{.}},
{{- end}}
		)
	}
{{- end}}

	return &{{.DoubleName}}{{.TypeParamsUse}}{Double: dbl}
}
`

const tmplInterfaceAccessor = `// Interface returns a {{.ContractType}} implementation backed by the double.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Interface() {{.ContractType}} {
	return {{.ImplName}}{{.TypeParamsUse}}{double: d.Double}
}
`

const tmplMemberSugar = `// On{{.Member}} stubs {{.Member}} calls matching the specs, or the fallback
// for unmatched calls when none are given.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) On{{.Member}}(specs ...any) *standin.Stub {
	if len(specs) == 0 {
		return d.Double.Fallback("{{.Member}}")
	}

	return d.Double.When("{{.Member}}", specs...)
}

// Observe{{.Member}} hooks fn onto {{.Member}} as a side-effect observer.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Observe{{.Member}}(fn any, specs ...any) {
	d.Double.OnCall("{{.Member}}", fn, specs...)
}

// Verify{{.Member}} asserts how often {{.Member}} was called with matching
// arguments.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Verify{{.Member}}(threshold standin.Threshold, specs ...any) {
	d.Double.MustVerify("{{.Member}}", threshold, specs...)
}

// Called{{.Member}} describes one {{.Member}} call for order verification.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Called{{.Member}}(specs ...any) standin.Step {
	return standin.Called(d.Double.Name(), "{{.Member}}", specs...)
}
`

const tmplImplStruct = `// {{.ImplName}} implements {{.ContractType}} by relaying calls through the
// double.
type {{.ImplName}}{{.TypeParamsDecl}} struct {
	double *standin.Double
}
`

const tmplImplMethod = `func (s {{.ImplName}}{{.TypeParamsUse}}) {{.Member}}({{.ParamsDecl}}){{.ResultsDecl}} {
{{- if .ResultExprs}}
	results := s.double.Invoke("{{.Member}}"{{.CallArgs}})

	return {{.ResultExprs}}
{{- else}}
	s.double.Invoke("{{.Member}}"{{.CallArgs}})
{{- end}}
}
`

const tmplFuncDouble = `// {{.DoubleName}} is a configurable stand-in for {{.TargetDisplay}} functions.
type {{.DoubleName}}{{.TypeParamsDecl}} struct {
	Double *standin.Double

	fn {{.ContractType}}
}

// New{{.DoubleName}} returns the {{.TargetDisplay}} function stand-in
// registered with t's journal.
func New{{.DoubleName}}{{.TypeParamsDecl}}(t standin.TestReporter) *{{.DoubleName}}{{.TypeParamsUse}} {
	fn, dbl := standin.FuncFor[{{.ContractType}}](t, {{.NameExpr}})

	return &{{.DoubleName}}{{.TypeParamsUse}}{Double: dbl, fn: fn}
}

// Func returns the {{.ContractType}} function backed by the double.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Func() {{.ContractType}} {
	return d.fn
}

// On stubs calls matching the specs, or the fallback for unmatched calls when
// none are given.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) On(specs ...any) *standin.Stub {
	if len(specs) == 0 {
		return d.Double.Fallback(standin.FuncMember)
	}

	return d.Double.When(standin.FuncMember, specs...)
}

// Observe hooks fn onto the function as a side-effect observer.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Observe(fn any, specs ...any) {
	d.Double.OnCall(standin.FuncMember, fn, specs...)
}

// Verify asserts how often the function was called with matching arguments.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Verify(threshold standin.Threshold, specs ...any) {
	d.Double.MustVerify(standin.FuncMember, threshold, specs...)
}

// Called describes one call for order verification.
func (d *{{.DoubleName}}{{.TypeParamsUse}}) Called(specs ...any) standin.Step {
	return standin.Called(d.Double.Name(), standin.FuncMember, specs...)
}
`

// TemplateRegistry holds the parsed generated-code templates.
type TemplateRegistry struct {
	header            *template.Template
	doubleStruct      *template.Template
	constructor       *template.Template
	interfaceAccessor *template.Template
	memberSugar       *template.Template
	implStruct        *template.Template
	implMethod        *template.Template
	funcDouble        *template.Template
}

func newTemplateRegistry() *TemplateRegistry {
	reg := &TemplateRegistry{}

	parseTemplateList([]templateDef{
		{&reg.header, "header", tmplHeader},
		{&reg.doubleStruct, "doubleStruct", tmplDoubleStruct},
		{&reg.constructor, "constructor", tmplConstructor},
		{&reg.interfaceAccessor, "interfaceAccessor", tmplInterfaceAccessor},
		{&reg.memberSugar, "memberSugar", tmplMemberSugar},
		{&reg.implStruct, "implStruct", tmplImplStruct},
		{&reg.implMethod, "implMethod", tmplImplMethod},
		{&reg.funcDouble, "funcDouble", tmplFuncDouble},
	})

	return reg
}

type templateDef struct {
	target  **template.Template
	name    string
	content string
}

func parseTemplateList(defs []templateDef) {
	for _, def := range defs {
		*def.target = template.Must(template.New(def.name).Parse(def.content))
	}
}

// WriteHeader renders the file header with its import block.
func (r *TemplateRegistry) WriteHeader(w io.Writer, data headerData) {
	executeTemplate(r.header, w, data)
}

// WriteDoubleStruct renders the exported double wrapper type.
func (r *TemplateRegistry) WriteDoubleStruct(w io.Writer, data doubleStructData) {
	executeTemplate(r.doubleStruct, w, data)
}

// WriteConstructor renders the registry-backed constructor.
func (r *TemplateRegistry) WriteConstructor(w io.Writer, data constructorData) {
	executeTemplate(r.constructor, w, data)
}

// WriteInterfaceAccessor renders the contract-typed accessor method.
func (r *TemplateRegistry) WriteInterfaceAccessor(w io.Writer, data interfaceAccessorData) {
	executeTemplate(r.interfaceAccessor, w, data)
}

// WriteMemberSugar renders one member's On/Observe/Verify/Called methods.
func (r *TemplateRegistry) WriteMemberSugar(w io.Writer, data memberSugarData) {
	executeTemplate(r.memberSugar, w, data)
}

// WriteImplStruct renders the unexported relay type.
func (r *TemplateRegistry) WriteImplStruct(w io.Writer, data implStructData) {
	executeTemplate(r.implStruct, w, data)
}

// WriteImplMethod renders one relay method.
func (r *TemplateRegistry) WriteImplMethod(w io.Writer, data implMethodData) {
	executeTemplate(r.implMethod, w, data)
}

// WriteFuncDouble renders the whole body of a function-contract double.
func (r *TemplateRegistry) WriteFuncDouble(w io.Writer, data funcDoubleData) {
	executeTemplate(r.funcDouble, w, data)
}

func executeTemplate(tmpl *template.Template, w io.Writer, data any) {
	err := tmpl.Execute(w, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}
