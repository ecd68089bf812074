// Package load turns an import path into parsed dst files.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Package loads the package at importPath and returns its files as dst
// syntax trees plus the FileSet they were parsed into. Parsing is pure
// syntax, no type checking, which keeps generation fast and lets it work on
// packages whose dependencies are not built. Test files are included only for
// the local package ("."); elsewhere they tend to drag in unresolvable test
// helpers. Files that fail to parse are skipped.
func Package(importPath string) ([]*dst.File, *token.FileSet, error) {
	dir, err := packageDir(importPath)
	if err != nil {
		return nil, nil, err
	}

	goFiles, err := goFilesIn(dir, importPath == ".")
	if err != nil {
		return nil, nil, err
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	files := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		file, err := dec.ParseFile(goFile, nil, 0)
		if err != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: nothing parsable in %s", errNoGoFiles, dir)
	}

	return files, fset, nil
}

// ResolveLocalDir checks whether importPath names a subdirectory package of
// the working directory. A bare name like "store" resolves to ./store when
// that directory holds .go files, which lets local packages shadow stdlib
// names. Anything else comes back unchanged.
func ResolveLocalDir(importPath string) string {
	if importPath == "." || strings.Contains(importPath, "/") {
		return importPath
	}

	workDir, err := os.Getwd()
	if err != nil {
		return importPath
	}

	localDir := filepath.Join(workDir, importPath)

	info, err := os.Stat(localDir)
	if err != nil || !info.IsDir() {
		return importPath
	}

	entries, err := os.ReadDir(localDir)
	if err != nil {
		return importPath
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".go") {
			return localDir
		}
	}

	return importPath
}

// unexported variables.
var (
	errNoGoFiles = errors.New("no loadable Go files")
)

// goFilesIn lists the .go files of dir, keeping test files only when asked.
func goFilesIn(dir string, includeTests bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if !includeTests && strings.HasSuffix(name, "_test.go") {
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, name))
	}

	if len(goFiles) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoGoFiles, dir)
	}

	return goFiles, nil
}

// packageDir resolves an import path to the directory holding its sources:
// the working directory for ".", a local subdirectory when one shadows the
// name, and go/build resolution for everything else.
func packageDir(importPath string) (string, error) {
	if importPath == "." {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}

		return dir, nil
	}

	if resolved := ResolveLocalDir(importPath); resolved != importPath {
		return resolved, nil
	}

	workDir, _ := os.Getwd()

	pkg, err := build.Import(importPath, workDir, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}
