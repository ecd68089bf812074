package generate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dave/dst"

	asttext "github.com/toejough/standin/standgen/run/0_util"
	detect "github.com/toejough/standin/standgen/run/3_detect"
)

var errBasePackageUnknown = errors.New("base package import path not found")

// GeneratorInfo carries the facts of one generator call, gathered from the
// command line and the go:generate environment.
type GeneratorInfo struct {
	// PkgName is the package the generated file belongs to (GOPACKAGE).
	PkgName string
	// TargetName is the contract as given, possibly package-qualified.
	TargetName string
	// LocalName is the contract's own name, without any package prefix.
	LocalName string
	// DoubleName is the generated adapter type's name.
	DoubleName string
	// GoFile is the file holding the go:generate comment (GOFILE).
	GoFile string
}

// importInfo is one import line of the generated file.
type importInfo struct {
	Alias string
	Path  string
}

// typeFormatter renders type expressions for the generated file, qualifying
// exported identifiers that belong to the contract's package. Type parameters
// and builtins stay bare.
type typeFormatter struct {
	qualifier   string
	isTypeParam func(string) bool
}

// render returns the Go source text of a type expression with the package
// qualifier applied where needed.
//
//nolint:cyclop // Dispatcher over every dst type expression; the fan-out is the point.
func (tf *typeFormatter) render(expr dst.Expr) string {
	switch typed := expr.(type) {
	case *dst.Ident:
		return tf.renderIdent(typed)
	case *dst.SelectorExpr:
		// Already qualified in the source; keep it as written.
		return asttext.Type(typed)
	case *dst.StarExpr:
		return "*" + tf.render(typed.X)
	case *dst.Ellipsis:
		return "..." + tf.render(typed.Elt)
	case *dst.ArrayType:
		if typed.Len != nil {
			return "[" + asttext.Type(typed.Len) + "]" + tf.render(typed.Elt)
		}

		return "[]" + tf.render(typed.Elt)
	case *dst.MapType:
		return "map[" + tf.render(typed.Key) + "]" + tf.render(typed.Value)
	case *dst.ChanType:
		return tf.renderChan(typed)
	case *dst.FuncType:
		return tf.renderFunc(typed)
	case *dst.IndexExpr:
		return tf.render(typed.X) + "[" + tf.render(typed.Index) + "]"
	case *dst.IndexListExpr:
		return tf.renderIndexList(typed)
	default:
		return asttext.Type(expr)
	}
}

func (tf *typeFormatter) renderChan(ch *dst.ChanType) string {
	switch ch.Dir {
	case dst.SEND:
		return "chan<- " + tf.render(ch.Value)
	case dst.RECV:
		return "<-chan " + tf.render(ch.Value)
	default:
		return "chan " + tf.render(ch.Value)
	}
}

func (tf *typeFormatter) renderFunc(funcType *dst.FuncType) string {
	var buf strings.Builder

	buf.WriteString("func(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(asttext.FieldTypes(funcType.Params.List, tf.render), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return buf.String()
	}

	results := asttext.FieldTypes(funcType.Results.List, tf.render)

	if len(results) > 1 {
		buf.WriteString(" (" + strings.Join(results, ", ") + ")")
	} else {
		buf.WriteString(" " + results[0])
	}

	return buf.String()
}

// renderIdent qualifies exported identifiers from the contract's package.
// Builtins and the contract's type parameters never take a qualifier.
func (tf *typeFormatter) renderIdent(ident *dst.Ident) string {
	name := ident.Name

	needsQualifier := tf.qualifier != "" &&
		name != "" && unicode.IsUpper(rune(name[0])) &&
		!isBuiltinType(name) && !tf.isTypeParam(name)
	if needsQualifier {
		return tf.qualifier + "." + name
	}

	return name
}

func (tf *typeFormatter) renderIndexList(idx *dst.IndexListExpr) string {
	args := make([]string, len(idx.Indices))
	for i, arg := range idx.Indices {
		args[i] = tf.render(arg)
	}

	return tf.render(idx.X) + "[" + strings.Join(args, ", ") + "]"
}

// exprScan walks a type expression and folds a value over its identifiers
// and selector expressions. One walker serves both the "does this mention an
// exported local type" check and import collection.
type exprScan[T any] struct {
	onIdent    func(*dst.Ident) T
	onSelector func(*dst.SelectorExpr) T
	merge      func(T, T) T
	zero       T
}

//nolint:cyclop // Dispatcher over every dst type expression; the fan-out is the point.
func (s *exprScan[T]) walk(expr dst.Expr) T {
	switch typed := expr.(type) {
	case *dst.Ident:
		return s.onIdent(typed)
	case *dst.SelectorExpr:
		return s.onSelector(typed)
	case *dst.StarExpr:
		return s.walk(typed.X)
	case *dst.Ellipsis:
		return s.walk(typed.Elt)
	case *dst.ParenExpr:
		return s.walk(typed.X)
	case *dst.ArrayType:
		return s.walk(typed.Elt)
	case *dst.ChanType:
		return s.walk(typed.Value)
	case *dst.MapType:
		return s.merge(s.walk(typed.Key), s.walk(typed.Value))
	case *dst.FuncType:
		return s.walkFieldLists(typed.Params, typed.Results)
	case *dst.StructType:
		return s.walkFieldLists(typed.Fields)
	case *dst.InterfaceType:
		return s.walkFieldLists(typed.Methods)
	case *dst.IndexExpr:
		return s.merge(s.walk(typed.X), s.walk(typed.Index))
	case *dst.IndexListExpr:
		result := s.walk(typed.X)
		for _, index := range typed.Indices {
			result = s.merge(result, s.walk(index))
		}

		return result
	default:
		return s.zero
	}
}

func (s *exprScan[T]) walkFieldLists(lists ...*dst.FieldList) T {
	result := s.zero

	for _, list := range lists {
		if list == nil {
			continue
		}

		for _, field := range list.List {
			result = s.merge(result, s.walk(field.Type))
		}
	}

	return result
}

// aliasForImport picks the alias the generated file should import path
// under. Usually none; a stdlib name already taken by a non-stdlib import
// gets an underscore prefix to stay unambiguous.
func aliasForImport(pkgAlias, path string, sourcePackageNames map[string]string) string {
	if !detect.IsStdlibPackage(path) || path != pkgAlias {
		return pkgAlias
	}

	if existing, ok := sourcePackageNames[pkgAlias]; ok && !detect.IsStdlibPackage(existing) {
		return "_" + pkgAlias
	}

	return pkgAlias
}

// collectExternalImports walks a type expression and collects the imports
// its selector expressions need, resolved against the contract file's own
// imports.
func collectExternalImports(expr dst.Expr, sourceImports []*dst.ImportSpec) []importInfo {
	var imports []importInfo

	seen := make(map[string]bool)
	sourcePackageNames := sourcePackageNameMap(sourceImports)

	scan := &exprScan[struct{}]{
		onIdent: func(*dst.Ident) struct{} { return struct{}{} },
		onSelector: func(sel *dst.SelectorExpr) struct{} {
			if imp := importForSelector(sel, sourceImports, sourcePackageNames, seen); imp != nil {
				imports = append(imports, *imp)
			}

			return struct{}{}
		},
		merge: func(struct{}, struct{}) struct{} { return struct{}{} },
		zero:  struct{}{},
	}

	scan.walk(expr)

	return imports
}

// hasExportedIdent reports whether a type expression mentions an exported
// identifier that would need the package qualifier.
func hasExportedIdent(expr dst.Expr, isTypeParam func(string) bool) bool {
	scan := &exprScan[bool]{
		onIdent: func(ident *dst.Ident) bool {
			return ident.Name != "" &&
				unicode.IsUpper(rune(ident.Name[0])) &&
				!isBuiltinType(ident.Name) &&
				!isTypeParam(ident.Name)
		},
		onSelector: func(*dst.SelectorExpr) bool { return false },
		merge:      func(a, b bool) bool { return a || b },
		zero:       false,
	}

	return scan.walk(expr)
}

// fieldNames returns the usable value names of one parameter field. Unnamed
// and blank parameters get synthetic argN names so the generated method can
// forward them.
func fieldNames(field *dst.Field, currentIndex int) []string {
	if len(field.Names) == 0 {
		return []string{fmt.Sprintf("arg%d", currentIndex+1)}
	}

	names := make([]string, len(field.Names))

	for i, name := range field.Names {
		if name.Name == "_" {
			names[i] = fmt.Sprintf("arg%d", currentIndex+i+1)

			continue
		}

		names[i] = name.Name
	}

	return names
}

// importForSelector resolves one selector expression to the import line it
// needs, or nil when the package is unknown or already collected.
func importForSelector(
	sel *dst.SelectorExpr,
	sourceImports []*dst.ImportSpec,
	sourcePackageNames map[string]string,
	seen map[string]bool,
) *importInfo {
	ident, ok := sel.X.(*dst.Ident)
	if !ok {
		return nil
	}

	pkgAlias := ident.Name
	path := resolveImportPath(pkgAlias, sourceImports)

	if path == "" || seen[path] {
		return nil
	}

	seen[path] = true

	alias := aliasForImport(pkgAlias, path, sourcePackageNames)
	if alias == packageNameOfPath(path) {
		alias = ""
	}

	return &importInfo{Alias: alias, Path: path}
}

// isBuiltinType reports whether name is a predeclared Go type or constraint.
func isBuiltinType(name string) bool {
	switch name {
	case "any", "bool", "byte", "comparable",
		"complex64", "complex128", "error", "float32",
		"float64", "int", "int8", "int16",
		"int32", "int64", "rune", "string",
		"uint", "uint8", "uint16", "uint32",
		"uint64", "uintptr":
		return true
	}

	return false
}

// packageNameOfImport returns the name an import spec binds: its alias when
// it has one, otherwise the last element of its path.
func packageNameOfImport(imp *dst.ImportSpec, path string) string {
	if imp.Name != nil {
		return imp.Name.Name
	}

	return packageNameOfPath(path)
}

// packageNameOfPath returns the last element of an import path.
func packageNameOfPath(importPath string) string {
	parts := strings.Split(importPath, "/")

	return parts[len(parts)-1]
}

// resolveContractPackage decides how the generated file refers to the
// contract's package: the import path to add and the qualifier to prefix the
// contract's exported types with. Both are empty when the contract lives in
// the package being generated into.
func resolveContractPackage(
	info GeneratorInfo,
	contractPkgPath string,
	pkgLoader detect.PackageLoader,
) (pkgPath, qualifier string, err error) {
	if contractPkgPath != "." {
		// The contract was loaded from another package, either named
		// explicitly or reached through a dot import.
		if prefix, _, ok := strings.Cut(info.TargetName, "."); ok && prefix != "" {
			return contractPkgPath, prefix, nil
		}

		return contractPkgPath, packageNameOfPath(contractPkgPath), nil
	}

	if !strings.HasSuffix(info.PkgName, "_test") {
		return "", "", nil
	}

	// Blackbox test package: the contract belongs to the base package, so the
	// generated file has to import it. The file with the go:generate comment
	// imports that package already; failing that, ask go list.
	base := strings.TrimSuffix(info.PkgName, "_test")

	if path, err := detect.ImportFromFile(info.GoFile, base); err == nil {
		return path, base, nil
	}

	files, fset, err := pkgLoader.Load(".")
	if err == nil {
		if path, err := detect.ImportPathOfFiles(files, fset); err == nil {
			return path, base, nil
		}
	}

	return "", "", fmt.Errorf(
		"cannot resolve the import path of package %s for the generated %s package: %w",
		base, info.PkgName, errBasePackageUnknown)
}

// resolveImportPath finds the import path bound to alias in the source
// imports, or "" when no import provides it.
func resolveImportPath(alias string, imports []*dst.ImportSpec) string {
	for _, imp := range imports {
		path := strings.Trim(imp.Path.Value, `"`)

		if packageNameOfImport(imp, path) == alias {
			return path
		}
	}

	return ""
}

// sortedImports flattens an import map into a path-ordered slice so the
// generated file is deterministic.
func sortedImports(imports map[string]importInfo) []importInfo {
	result := make([]importInfo, 0, len(imports))

	for _, imp := range imports {
		result = append(result, imp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result
}

// sourcePackageNameMap maps each source import's package name to its path.
func sourcePackageNameMap(sourceImports []*dst.ImportSpec) map[string]string {
	result := make(map[string]string)

	for _, imp := range sourceImports {
		path := strings.Trim(imp.Path.Value, `"`)
		result[packageNameOfImport(imp, path)] = path
	}

	return result
}

// typeParamsDecl renders type parameters for a declaration, like
// "[K comparable, V any]", or "" when there are none.
func typeParamsDecl(typeParams *dst.FieldList) string {
	if typeParams == nil || len(typeParams.List) == 0 {
		return ""
	}

	var buf strings.Builder

	buf.WriteString("[")

	for i, field := range typeParams.List {
		if i > 0 {
			buf.WriteString(", ")
		}

		for j, name := range field.Names {
			if j > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(name.Name)
		}

		if field.Type != nil {
			buf.WriteString(" ")
			buf.WriteString(asttext.Type(field.Type))
		}
	}

	buf.WriteString("]")

	return buf.String()
}

// typeParamNames flattens a type parameter list into its names.
func typeParamNames(typeParams *dst.FieldList) []string {
	if typeParams == nil {
		return nil
	}

	var names []string

	for _, field := range typeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}

	return names
}

// typeParamsUse renders type parameters for an instantiation, like "[K, V]",
// or "" when there are none.
func typeParamsUse(typeParams *dst.FieldList) string {
	names := typeParamNames(typeParams)
	if len(names) == 0 {
		return ""
	}

	return "[" + strings.Join(names, ", ") + "]"
}
