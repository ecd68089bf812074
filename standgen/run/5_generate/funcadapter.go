package generate

import (
	"bytes"

	detect "github.com/toejough/standin/standgen/run/3_detect"
)

// FuncAdapter renders the generated file for a named function type contract
// and returns formatted Go source. The double wraps the whole function as a
// single member, so no per-method expansion happens here.
func FuncAdapter(info GeneratorInfo, contract detect.Contract, pkgLoader detect.PackageLoader) (string, error) {
	pkgPath, qualifier, err := resolveContractPackage(info, contract.PkgPath, pkgLoader)
	if err != nil {
		return "", err
	}

	imports := map[string]importInfo{standinImportPath: {Path: standinImportPath}}
	if pkgPath != "" {
		imports[pkgPath] = scopeImport(qualifier, pkgPath)
	}

	qualifiedName := info.LocalName
	if qualifier != "" {
		qualifiedName = qualifier + "." + info.LocalName
	}

	paramsDecl := typeParamsDecl(contract.TypeParams)
	paramsUse := typeParamsUse(contract.TypeParams)

	var buf bytes.Buffer

	reg := newTemplateRegistry()

	reg.WriteHeader(&buf, headerData{PkgName: info.PkgName, Imports: sortedImports(imports)})
	buf.WriteString("\n")
	reg.WriteFuncDouble(&buf, funcDoubleData{
		DoubleName:     info.DoubleName,
		TargetDisplay:  qualifiedName,
		ContractType:   qualifiedName + paramsUse,
		TypeParamsDecl: paramsDecl,
		TypeParamsUse:  paramsUse,
		NameExpr:       doubleNameExpr(info.LocalName, contract.TypeParams),
	})

	return formatSource(&buf, info.DoubleName)
}
