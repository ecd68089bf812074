// Package detect resolves a contract name to its declaration: the interface
// type or named function type an adapter will be generated for.
package detect

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dave/dst"
)

// ContractKind identifies what sort of declaration a contract name resolved
// to.
type ContractKind int

// ContractKind values.
const (
	KindInterface ContractKind = iota
	KindFuncType
)

// Contract is a resolved generation target with the declaration context the
// generator needs: the type itself, its type parameters, and the imports of
// the file that declared it (for qualifying external types).
type Contract struct {
	Kind          ContractKind
	Name          string
	Iface         *dst.InterfaceType
	FuncType      *dst.FuncType
	TypeParams    *dst.FieldList
	SourceImports []*dst.ImportSpec
	// PkgPath is the package the contract was found in. For contracts found
	// through dot imports this differs from the package searched.
	PkgPath string
}

// PackageLoader loads a package's dst files by import path. The generator
// takes it as an interface so tests can feed source straight from strings.
type PackageLoader interface {
	Load(importPath string) ([]*dst.File, *token.FileSet, error)
}

// FindContract looks the named contract up in the given files: first as an
// interface type, then as a named function type, then (for the local
// package) through its dot imports.
func FindContract(
	astFiles []*dst.File, name string, pkgImportPath string, pkgLoader PackageLoader,
) (Contract, error) {
	contract, err := FindInterface(astFiles, name, pkgImportPath)
	if err == nil {
		return contract, nil
	}

	contract, err = findFuncType(astFiles, name, pkgImportPath)
	if err == nil {
		return contract, nil
	}

	if pkgImportPath == "." {
		for _, dotImportPath := range dotImportPaths(astFiles) {
			dotFiles, _, err := pkgLoader.Load(dotImportPath)
			if err != nil {
				continue
			}

			contract, err := FindContract(dotFiles, name, dotImportPath, pkgLoader)
			if err == nil {
				return contract, nil
			}
		}
	}

	return Contract{}, fmt.Errorf("%w: %s in package %s", errContractNotFound, name, pkgImportPath)
}

// FindImportPath resolves a package name to its import path by checking the
// given files' imports, then by trying to load the package by name. Local
// packages shadowing a stdlib name win over the stdlib.
func FindImportPath(
	astFiles []*dst.File, pkgName string, pkgLoader PackageLoader,
) (string, error) {
	if IsStdlibPackage(pkgName) {
		if path, ok := shadowedStdlibPath(pkgName, pkgLoader); ok {
			return path, nil
		}
	}

	for _, file := range astFiles {
		for _, imp := range file.Imports {
			if path, ok := matchImport(imp, pkgName, pkgLoader); ok {
				return path, nil
			}
		}
	}

	files, fset, err := pkgLoader.Load(pkgName)
	if err == nil && len(files) > 0 {
		if fullPath, err := ImportPathOfFiles(files, fset); err == nil {
			return fullPath, nil
		}

		return pkgName, nil
	}

	return "", fmt.Errorf("%w: %s", errPackageNotFound, pkgName)
}

// FindInterface extracts the named interface declaration from the files.
func FindInterface(
	astFiles []*dst.File, name string, pkgImportPath string,
) (Contract, error) {
	contract := Contract{Kind: KindInterface, Name: name, PkgPath: pkgImportPath}
	found := false

	inspectTypeSpecs(astFiles, func(spec *dst.TypeSpec, file *dst.File) bool {
		iface, isInterface := spec.Type.(*dst.InterfaceType)
		if spec.Name.Name != name || !isInterface {
			return false
		}

		contract.Iface = iface
		contract.TypeParams = spec.TypeParams
		contract.SourceImports = file.Imports
		found = true

		return true
	})

	if !found {
		return Contract{}, fmt.Errorf("%w: %s in package %s", errInterfaceNotFound, name, pkgImportPath)
	}

	return contract, nil
}

// ImportFromFile parses the given source file and looks for an import whose
// name or path matches pkgName. It is how the generator finds the base
// package of a blackbox test package without shelling out: the test file
// carrying the go:generate comment imports the package it tests.
func ImportFromFile(goFilePath string, pkgName string) (string, error) {
	if goFilePath == "" {
		return "", errNoSourceFile
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", goFilePath, err)
	}

	for _, imp := range file.Imports {
		if imp.Path == nil {
			continue
		}

		importPath := strings.Trim(imp.Path.Value, `"`)

		if imp.Name != nil && imp.Name.Name == pkgName {
			return importPath, nil
		}

		if importPath == pkgName || strings.HasSuffix(importPath, "/"+pkgName) {
			return importPath, nil
		}
	}

	return "", fmt.Errorf("%w: %s in %s", errPackageNotImported, pkgName, goFilePath)
}

// ImportPathOfFiles determines the import path of an already-loaded package
// by asking `go list` about the directory its first file lives in. Results
// are cached per directory; generation for a package with many contracts
// shells out once.
func ImportPathOfFiles(files []*dst.File, fset *token.FileSet) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no files loaded", errPackageNotFound)
	}

	var filePath string

	fset.Iterate(func(f *token.File) bool {
		filePath = f.Name()

		return false
	})

	if filePath == "" {
		return "", fmt.Errorf("%w: file set holds no file positions", errPackageNotFound)
	}

	dir := filepath.Dir(filePath)

	goListCacheMu.RLock()
	cached, ok := goListCache[dir]
	goListCacheMu.RUnlock()

	if ok {
		return cached, nil
	}

	//nolint:noctx // One-shot subprocess; a context would add nothing.
	cmd := exec.Command("go", "list", "-f", "{{.ImportPath}}", dir)

	var out bytes.Buffer

	cmd.Stdout = &out

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("failed to get import path for directory %s: %w", dir, err)
	}

	importPath := strings.TrimSpace(out.String())

	goListCacheMu.Lock()
	goListCache[dir] = importPath
	goListCacheMu.Unlock()

	return importPath, nil
}

// IsStdlibPackage reports whether pkgName names a standard library package
// that a local package might shadow.
func IsStdlibPackage(pkgName string) bool {
	if strings.Contains(pkgName, "/") {
		return false
	}

	return stdlibPackages[pkgName]
}

// unexported variables.
var (
	errContractNotFound   = errors.New("no interface or function type with that name")
	errInterfaceNotFound  = errors.New("interface not found")
	errFuncTypeNotFound   = errors.New("function type not found")
	errNoSourceFile       = errors.New("no source file to read imports from")
	errPackageNotFound    = errors.New("package not found")
	errPackageNotImported = errors.New("package not imported")
	//nolint:gochecknoglobals // Cache for `go list` subprocess results.
	goListCache = make(map[string]string)
	//nolint:gochecknoglobals // Guards goListCache.
	goListCacheMu sync.RWMutex
	// stdlibPackages lists top-level stdlib package names a local package
	// might shadow.
	//nolint:gochecknoglobals // Fixed lookup table.
	stdlibPackages = map[string]bool{
		"archive": true, "bufio": true, "bytes": true, "compress": true,
		"container": true, "context": true, "crypto": true, "database": true,
		"debug": true, "embed": true, "encoding": true, "errors": true,
		"expvar": true, "flag": true, "fmt": true, "go": true,
		"hash": true, "html": true, "image": true, "index": true,
		"io": true, "log": true, "math": true, "mime": true,
		"net": true, "os": true, "path": true, "plugin": true,
		"reflect": true, "regexp": true, "runtime": true, "sort": true,
		"strconv": true, "strings": true, "sync": true, "syscall": true,
		"testing": true, "text": true, "time": true, "unicode": true,
		"unsafe": true,
	}
)

// dotImportPaths collects the dot-imported package paths of the files.
func dotImportPaths(astFiles []*dst.File) []string {
	var paths []string

	for _, file := range astFiles {
		for _, imp := range file.Imports {
			if imp.Name != nil && imp.Name.Name == "." {
				paths = append(paths, strings.Trim(imp.Path.Value, `"`))
			}
		}
	}

	return paths
}

// findFuncType extracts the named function type declaration from the files.
func findFuncType(
	astFiles []*dst.File, name string, pkgImportPath string,
) (Contract, error) {
	contract := Contract{Kind: KindFuncType, Name: name, PkgPath: pkgImportPath}
	found := false

	inspectTypeSpecs(astFiles, func(spec *dst.TypeSpec, file *dst.File) bool {
		funcType, isFuncType := spec.Type.(*dst.FuncType)
		if spec.Name.Name != name || !isFuncType {
			return false
		}

		contract.FuncType = funcType
		contract.TypeParams = spec.TypeParams
		contract.SourceImports = file.Imports
		found = true

		return true
	})

	if !found {
		return Contract{}, fmt.Errorf("%w: %s in package %s", errFuncTypeNotFound, name, pkgImportPath)
	}

	return contract, nil
}

// inspectTypeSpecs walks every type declaration in the files, calling visit
// with each spec and its file until visit reports a hit.
func inspectTypeSpecs(astFiles []*dst.File, visit func(*dst.TypeSpec, *dst.File) bool) {
	for _, file := range astFiles {
		done := false

		dst.Inspect(file, func(node dst.Node) bool {
			genDecl, ok := node.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				return true
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*dst.TypeSpec)
				if !isTypeSpec {
					continue
				}

				if visit(typeSpec, file) {
					done = true

					return false
				}
			}

			return true
		})

		if done {
			return
		}
	}
}

// matchImport reports whether one import spec provides pkgName, resolving
// ambiguous path tails by loading the package and checking its declared name.
func matchImport(imp *dst.ImportSpec, pkgName string, pkgLoader PackageLoader) (string, bool) {
	path := strings.Trim(imp.Path.Value, `"`)

	if imp.Name != nil && imp.Name.Name == pkgName {
		return path, true
	}

	if path == pkgName || strings.HasSuffix(path, "/"+pkgName) {
		return path, true
	}

	importedFiles, _, err := pkgLoader.Load(path)
	if err == nil && len(importedFiles) > 0 && importedFiles[0].Name.Name == pkgName {
		return path, true
	}

	return "", false
}

// shadowedStdlibPath reports whether a local package shadows the stdlib
// pkgName, returning its full import path when it does.
func shadowedStdlibPath(pkgName string, pkgLoader PackageLoader) (string, bool) {
	files, fset, err := pkgLoader.Load(pkgName)
	if err != nil || len(files) == 0 {
		return "", false
	}

	fullPath, err := ImportPathOfFiles(files, fset)
	if err != nil || fullPath == pkgName {
		return "", false
	}

	if strings.HasSuffix(fullPath, "/"+pkgName) || strings.Contains(fullPath, "/"+pkgName+"/") {
		return fullPath, true
	}

	return "", false
}
