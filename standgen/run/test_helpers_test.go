//nolint:testpackage // Tests internal functions
package run

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

var errNoFixturePackage = errors.New("no fixture package")

// fakeFileSystem captures written files in memory.
type fakeFileSystem struct {
	files map[string][]byte
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: make(map[string][]byte)}
}

func (f *fakeFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.files[name] = data

	return nil
}

func (f *fakeFileSystem) writtenNames() []string {
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// fakePackageLoader serves packages parsed from fixture source strings.
type fakePackageLoader struct {
	packages map[string][]*dst.File
	fset     *token.FileSet
	count    int
}

func newFakePackageLoader() *fakePackageLoader {
	return &fakePackageLoader{packages: make(map[string][]*dst.File), fset: token.NewFileSet()}
}

func (f *fakePackageLoader) addSource(t *testing.T, importPath, src string) {
	t.Helper()

	f.count++

	file, err := decorator.ParseFile(f.fset, fmt.Sprintf("fixture_%d.go", f.count), src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parsing fixture source for %s: %v", importPath, err)
	}

	f.packages[importPath] = append(f.packages[importPath], file)
}

func (f *fakePackageLoader) Load(importPath string) ([]*dst.File, *token.FileSet, error) {
	files, ok := f.packages[importPath]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", errNoFixturePackage, importPath)
	}

	return files, f.fset, nil
}

func assertContainsAll(t *testing.T, content string, wants []string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(content, want) {
			t.Errorf("generated code missing %q\n\ngenerated code:\n%s", want, content)
		}
	}
}

func envFor(pkgName, goFile string) func(string) string {
	return func(key string) string {
		switch key {
		case "GOPACKAGE":
			return pkgName
		case "GOFILE":
			return goFile
		default:
			return ""
		}
	}
}

func generatedContent(t *testing.T, fileSys *fakeFileSystem, filename string) string {
	t.Helper()

	data, ok := fileSys.files[filename]
	if !ok {
		t.Fatalf("expected %s to be written, got files: %v", filename, fileSys.writtenNames())
	}

	return string(data)
}

// runStandgen runs one generator invocation against fixture packages and
// fails the test on error.
func runStandgen(
	t *testing.T, args []string, env func(string) string, loader *fakePackageLoader,
) *fakeFileSystem {
	t.Helper()

	fileSys := newFakeFileSystem()

	err := Run(args, env, fileSys, loader, io.Discard)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	return fileSys
}
