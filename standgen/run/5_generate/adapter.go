package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/dst"

	asttext "github.com/toejough/standin/standgen/run/0_util"
	detect "github.com/toejough/standin/standgen/run/3_detect"
)

const standinImportPath = "github.com/toejough/standin"

var (
	errGenericEmbed      = errors.New("embedded generic interfaces are not supported; declare the methods directly")
	errUnsupportedEmbed  = errors.New("unsupported embedded type in interface")
	errUnsupportedMember = errors.New("interface member is not a method")
)

// methodScope is the declaration context a method was found in. Methods
// gained through an embedded external interface qualify their types against
// the embedded package, not the contract's.
type methodScope struct {
	qualifier     string
	importPath    string
	loadPath      string
	sourceImports []*dst.ImportSpec
}

type methodInfo struct {
	name  string
	ftype *dst.FuncType
	scope methodScope
}

// methodRender is one method's fully rendered text fragments plus the
// imports its types pull in.
type methodRender struct {
	name         string
	paramsDecl   string
	resultsDecl  string
	callArgs     string
	resultExprs  string
	registration string
	imports      []importInfo
	needsScope   bool
	scope        methodScope
}

// Adapter renders the generated file for an interface contract and returns
// formatted Go source.
func Adapter(info GeneratorInfo, contract detect.Contract, pkgLoader detect.PackageLoader) (string, error) {
	pkgPath, qualifier, err := resolveContractPackage(info, contract.PkgPath, pkgLoader)
	if err != nil {
		return "", err
	}

	scope := methodScope{
		qualifier:     qualifier,
		importPath:    pkgPath,
		loadPath:      contract.PkgPath,
		sourceImports: contract.SourceImports,
	}

	methods, err := collectMethods(contract.Iface, scope, pkgLoader, make(map[string]bool))
	if err != nil {
		return "", err
	}

	isTypeParam := typeParamSet(contract.TypeParams)

	renders := make([]methodRender, len(methods))
	for i, m := range methods {
		renders[i] = renderMethod(m, isTypeParam)
	}

	imports := map[string]importInfo{standinImportPath: {Path: standinImportPath}}
	if pkgPath != "" {
		imports[pkgPath] = scopeImport(qualifier, pkgPath)
	}

	for _, render := range renders {
		if render.needsScope && render.scope.importPath != "" {
			imports[render.scope.importPath] = scopeImport(render.scope.qualifier, render.scope.importPath)
		}

		for _, imp := range render.imports {
			imports[imp.Path] = imp
		}
	}

	qualifiedName := info.LocalName
	if qualifier != "" {
		qualifiedName = qualifier + "." + info.LocalName
	}

	paramsDecl := typeParamsDecl(contract.TypeParams)
	paramsUse := typeParamsUse(contract.TypeParams)
	contractType := qualifiedName + paramsUse
	implName := implTypeName(info.DoubleName)

	var buf bytes.Buffer

	reg := newTemplateRegistry()

	reg.WriteHeader(&buf, headerData{PkgName: info.PkgName, Imports: sortedImports(imports)})
	buf.WriteString("\n")
	reg.WriteDoubleStruct(&buf, doubleStructData{
		DoubleName:     info.DoubleName,
		TargetDisplay:  qualifiedName,
		TypeParamsDecl: paramsDecl,
	})
	buf.WriteString("\n")
	reg.WriteConstructor(&buf, constructorData{
		DoubleName:     info.DoubleName,
		TargetDisplay:  qualifiedName,
		TypeParamsDecl: paramsDecl,
		TypeParamsUse:  paramsUse,
		NameExpr:       doubleNameExpr(info.LocalName, contract.TypeParams),
		FirstMember:    firstMemberName(renders),
		Registrations:  registrationList(renders),
	})
	buf.WriteString("\n")
	reg.WriteInterfaceAccessor(&buf, interfaceAccessorData{
		DoubleName:    info.DoubleName,
		TypeParamsUse: paramsUse,
		ContractType:  contractType,
		ImplName:      implName,
	})

	for _, render := range renders {
		buf.WriteString("\n")
		reg.WriteMemberSugar(&buf, memberSugarData{
			DoubleName:    info.DoubleName,
			TypeParamsUse: paramsUse,
			Member:        render.name,
		})
	}

	buf.WriteString("\n")
	reg.WriteImplStruct(&buf, implStructData{
		ImplName:       implName,
		ContractType:   contractType,
		TypeParamsDecl: paramsDecl,
	})

	for _, render := range renders {
		buf.WriteString("\n")
		reg.WriteImplMethod(&buf, implMethodData{
			ImplName:      implName,
			TypeParamsUse: paramsUse,
			Member:        render.name,
			ParamsDecl:    render.paramsDecl,
			ResultsDecl:   render.resultsDecl,
			CallArgs:      render.callArgs,
			ResultExprs:   render.resultExprs,
		})
	}

	return formatSource(&buf, info.DoubleName)
}

// collectMethods gathers the interface's methods in declaration order,
// expanding embedded interfaces in place. A method name already collected
// wins over later embeds of the same name.
func collectMethods(
	iface *dst.InterfaceType, scope methodScope, pkgLoader detect.PackageLoader, seen map[string]bool,
) ([]methodInfo, error) {
	if iface.Methods == nil {
		return nil, nil
	}

	var methods []methodInfo

	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			name := field.Names[0].Name
			if seen[name] {
				continue
			}

			ftype, isFunc := field.Type.(*dst.FuncType)
			if !isFunc {
				return nil, fmt.Errorf("%w: %s", errUnsupportedMember, name)
			}

			seen[name] = true

			methods = append(methods, methodInfo{name: name, ftype: ftype, scope: scope})

			continue
		}

		embedded, err := expandEmbedded(field.Type, scope, pkgLoader, seen)
		if err != nil {
			return nil, err
		}

		methods = append(methods, embedded...)
	}

	return methods, nil
}

// doubleNameExpr builds the Go expression the constructor registers the
// double under. Generic contracts fold their type arguments into the name so
// each instantiation gets its own double.
func doubleNameExpr(localName string, typeParams *dst.FieldList) string {
	params := typeParamNames(typeParams)
	if len(params) == 0 {
		return strconv.Quote(localName)
	}

	var buf strings.Builder

	buf.WriteString(strconv.Quote(localName + "["))

	for i, name := range params {
		if i > 0 {
			buf.WriteString(` + "," + `)
		} else {
			buf.WriteString(" + ")
		}

		buf.WriteString("standin.TypeOf[" + name + "]().String()")
	}

	buf.WriteString(` + "]"`)

	return buf.String()
}

func expandEmbedded(
	expr dst.Expr, scope methodScope, pkgLoader detect.PackageLoader, seen map[string]bool,
) ([]methodInfo, error) {
	switch typed := expr.(type) {
	case *dst.Ident:
		return expandLocalEmbed(typed.Name, scope, pkgLoader, seen)
	case *dst.SelectorExpr:
		return expandExternalEmbed(typed, scope, pkgLoader, seen)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedEmbed, asttext.Type(expr))
	}
}

func expandExternalEmbed(
	sel *dst.SelectorExpr, scope methodScope, pkgLoader detect.PackageLoader, seen map[string]bool,
) ([]methodInfo, error) {
	pkgIdent, isIdent := sel.X.(*dst.Ident)
	if !isIdent {
		return nil, fmt.Errorf("%w: %s", errUnsupportedEmbed, asttext.Type(sel))
	}

	path := resolveImportPath(pkgIdent.Name, scope.sourceImports)
	if path == "" {
		found, err := detect.FindImportPath(nil, pkgIdent.Name, pkgLoader)
		if err != nil {
			return nil, err
		}

		path = found
	}

	files, _, err := pkgLoader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading package %s for embedded interface %s.%s: %w",
			path, pkgIdent.Name, sel.Sel.Name, err)
	}

	embedded, err := detect.FindInterface(files, sel.Sel.Name, path)
	if err != nil {
		return nil, err
	}

	if len(typeParamNames(embedded.TypeParams)) > 0 {
		return nil, fmt.Errorf("%w: %s.%s", errGenericEmbed, pkgIdent.Name, sel.Sel.Name)
	}

	embScope := methodScope{
		qualifier:     pkgIdent.Name,
		importPath:    path,
		loadPath:      path,
		sourceImports: embedded.SourceImports,
	}

	return collectMethods(embedded.Iface, embScope, pkgLoader, seen)
}

func expandLocalEmbed(
	name string, scope methodScope, pkgLoader detect.PackageLoader, seen map[string]bool,
) ([]methodInfo, error) {
	files, _, err := pkgLoader.Load(scope.loadPath)
	if err != nil {
		return nil, fmt.Errorf("loading package %s for embedded interface %s: %w", scope.loadPath, name, err)
	}

	embedded, err := detect.FindInterface(files, name, scope.loadPath)
	if err != nil {
		return nil, err
	}

	if len(typeParamNames(embedded.TypeParams)) > 0 {
		return nil, fmt.Errorf("%w: %s", errGenericEmbed, name)
	}

	embScope := scope
	embScope.sourceImports = embedded.SourceImports

	return collectMethods(embedded.Iface, embScope, pkgLoader, seen)
}

func firstMemberName(renders []methodRender) string {
	if len(renders) == 0 {
		return ""
	}

	return renders[0].name
}

func formatSource(buf *bytes.Buffer, doubleName string) (string, error) {
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("formatting generated code for %s: %w", doubleName, err)
	}

	return string(formatted), nil
}

// implTypeName derives the unexported relay type's name from the double's.
func implTypeName(doubleName string) string {
	base := strings.TrimSuffix(doubleName, "Double")
	if base == "" {
		base = doubleName
	}

	runes := []rune(base)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes) + "Standin"
}

func registrationList(renders []methodRender) []string {
	result := make([]string, len(renders))
	for i, render := range renders {
		result[i] = render.registration
	}

	return result
}

// renderMethod turns one method into the text fragments the templates
// assemble: the parameter and result declarations, the relay call, and the
// signature registration.
func renderMethod(m methodInfo, isTypeParam func(string) bool) methodRender {
	formatter := &typeFormatter{qualifier: m.scope.qualifier, isTypeParam: isTypeParam}

	var (
		params     []string
		argNames   []string
		needsScope bool
		imports    []importInfo
	)

	argIndex := 0

	if m.ftype.Params != nil {
		for _, field := range m.ftype.Params.List {
			names := fieldNames(field, argIndex)
			argIndex += len(names)

			typeText := formatter.render(field.Type)
			for _, name := range names {
				params = append(params, name+" "+typeText)
			}

			argNames = append(argNames, names...)
			needsScope = needsScope || hasExportedIdent(field.Type, isTypeParam)
			imports = append(imports, collectExternalImports(field.Type, m.scope.sourceImports)...)
		}
	}

	var resultTypes []string

	if m.ftype.Results != nil {
		resultTypes = asttext.FieldTypes(m.ftype.Results.List, formatter.render)

		for _, field := range m.ftype.Results.List {
			needsScope = needsScope || hasExportedIdent(field.Type, isTypeParam)
			imports = append(imports, collectExternalImports(field.Type, m.scope.sourceImports)...)
		}
	}

	paramsDecl := strings.Join(params, ", ")
	resultsDecl := resultsDeclText(resultTypes)

	callArgs := ""
	if len(argNames) > 0 {
		callArgs = ", " + strings.Join(argNames, ", ")
	}

	resultExprs := make([]string, len(resultTypes))
	for i, typ := range resultTypes {
		resultExprs[i] = fmt.Sprintf("standin.As[%s](results[%d])", typ, i)
	}

	shape := "(func(" + paramsDecl + ")" + resultsDecl + ")(nil)"

	return methodRender{
		name:         m.name,
		paramsDecl:   paramsDecl,
		resultsDecl:  resultsDecl,
		callArgs:     callArgs,
		resultExprs:  strings.Join(resultExprs, ", "),
		registration: fmt.Sprintf("standin.NewSignature(%q, %s)", m.name, shape),
		imports:      imports,
		needsScope:   needsScope,
		scope:        m.scope,
	}
}

func resultsDeclText(resultTypes []string) string {
	switch len(resultTypes) {
	case 0:
		return ""
	case 1:
		return " " + resultTypes[0]
	default:
		return " (" + strings.Join(resultTypes, ", ") + ")"
	}
}

// scopeImport is the import line for a contract or embedded package,
// aliased only when the source referred to it by a name other than the
// path's last element.
func scopeImport(qualifier, path string) importInfo {
	alias := qualifier
	if alias == packageNameOfPath(path) {
		alias = ""
	}

	return importInfo{Alias: alias, Path: path}
}

func typeParamSet(typeParams *dst.FieldList) func(string) bool {
	names := make(map[string]bool)
	for _, name := range typeParamNames(typeParams) {
		names[name] = true
	}

	return func(name string) bool { return names[name] }
}
