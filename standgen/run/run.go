// Package run wires the generator's stages together: parse the command line,
// load the target package, find the contract, render the double, and write
// the generated file.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	arg "github.com/alexflint/go-arg"

	detect "github.com/toejough/standin/standgen/run/3_detect"
	generate "github.com/toejough/standin/standgen/run/5_generate"
	output "github.com/toejough/standin/standgen/run/6_output"
)

var (
	errBadTarget   = errors.New("expected Name or pkg.Name")
	errNoGoPackage = errors.New("GOPACKAGE is not set; standgen runs under go generate")
)

// FileSystem is the filesystem access the generator needs.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type cliArgs struct {
	Contract string `arg:"positional,required" help:"interface or function type to generate a double for, optionally package-qualified"`
	Name     string `arg:"--name"              help:"name for the generated double type (default: <Contract>Double)"`
}

// Run executes one standgen invocation the way go generate drives it: args
// is the command line, getEnv supplies GOPACKAGE and GOFILE.
func Run(
	args []string,
	getEnv func(string) string,
	fileSys FileSystem,
	pkgLoader detect.PackageLoader,
	out io.Writer,
) error {
	info, err := gatherInfo(args, getEnv)
	if err != nil {
		return err
	}

	targetPath, err := targetPackagePath(info, pkgLoader)
	if err != nil {
		return err
	}

	astFiles, _, err := pkgLoader.Load(targetPath)
	if err != nil {
		return fmt.Errorf("loading package %s: %w", targetPath, err)
	}

	contract, err := detect.FindContract(astFiles, info.LocalName, targetPath, pkgLoader)
	if err != nil {
		return err
	}

	code, err := generateCode(info, contract, pkgLoader)
	if err != nil {
		return err
	}

	return output.WriteGeneratedCode(code, info.DoubleName, info.PkgName, info.GoFile, fileSys, out)
}

// gatherInfo assembles the generator's inputs from the parsed command line
// and the go:generate environment.
func gatherInfo(args []string, getEnv func(string) string) (generate.GeneratorInfo, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return generate.GeneratorInfo{}, err
	}

	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return generate.GeneratorInfo{}, errNoGoPackage
	}

	if strings.Count(parsed.Contract, ".") > 1 {
		return generate.GeneratorInfo{}, fmt.Errorf("%w: %s", errBadTarget, parsed.Contract)
	}

	localName := parsed.Contract
	if _, after, found := strings.Cut(parsed.Contract, "."); found {
		localName = after
	}

	doubleName := parsed.Name
	if doubleName == "" {
		doubleName = localName + "Double"
	}

	return generate.GeneratorInfo{
		PkgName:    pkgName,
		TargetName: parsed.Contract,
		LocalName:  localName,
		DoubleName: doubleName,
		GoFile:     getEnv("GOFILE"),
	}, nil
}

func generateCode(
	info generate.GeneratorInfo, contract detect.Contract, pkgLoader detect.PackageLoader,
) (string, error) {
	if contract.Kind == detect.KindFuncType {
		return generate.FuncAdapter(info, contract, pkgLoader)
	}

	return generate.Adapter(info, contract, pkgLoader)
}

func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("creating argument parser: %w", err)
	}

	err = parser.Parse(args[1:])
	if err != nil {
		return cliArgs{}, fmt.Errorf("parsing arguments: %w", err)
	}

	return parsed, nil
}

// targetPackagePath decides which package to search for the contract. A bare
// name means the package the go:generate comment lives in; a qualified name
// resolves through that file's imports.
func targetPackagePath(info generate.GeneratorInfo, pkgLoader detect.PackageLoader) (string, error) {
	prefix, _, found := strings.Cut(info.TargetName, ".")
	if !found {
		return ".", nil
	}

	// Self-qualified names stay local. For a blackbox test package that
	// includes the base package's own name: the local directory holds the
	// base package's sources.
	if prefix == info.PkgName || prefix == strings.TrimSuffix(info.PkgName, "_test") {
		return ".", nil
	}

	if path, err := detect.ImportFromFile(info.GoFile, prefix); err == nil {
		return path, nil
	}

	astFiles, _, err := pkgLoader.Load(".")
	if err != nil {
		return "", fmt.Errorf("loading the local package to resolve %s: %w", info.TargetName, err)
	}

	return detect.FindImportPath(astFiles, prefix, pkgLoader)
}
