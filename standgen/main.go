// standgen generates configurable test doubles for interfaces and named
// function types.
//
// Invoke it from a go:generate comment next to the contract:
//
//	//go:generate go run github.com/toejough/standin/standgen Store
//
// The command reads GOPACKAGE and GOFILE from the go:generate environment,
// finds the named contract, and writes generated_<name>.go (or a _test.go
// variant when generating into a test package) beside the comment.
package main

import (
	"fmt"
	"go/token"
	"os"

	"github.com/dave/dst"

	"github.com/toejough/standin/standgen/run"
	load "github.com/toejough/standin/standgen/run/2_load"
	detect "github.com/toejough/standin/standgen/run/3_detect"
)

type realFileSystem struct{}

func (*realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type realPackageLoader struct{}

func (*realPackageLoader) Load(importPath string) ([]*dst.File, *token.FileSet, error) {
	return load.Package(importPath)
}

var _ detect.PackageLoader = (*realPackageLoader)(nil)

func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "standgen: %v\n", err)
		os.Exit(1)
	}
}
