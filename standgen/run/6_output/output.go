package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer is the part of the filesystem the output stage needs.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// WriteGeneratedCode writes the generated source to generated_<name>.go next
// to the go:generate comment. Test packages and test files get a _test.go
// suffix instead, so blackbox doubles stay out of the shipped package.
func WriteGeneratedCode(
	code string, doubleName string, pkgName string, goFile string, fileWriter Writer, out io.Writer,
) error {
	const generatedFilePermissions = 0o600

	filename := generatedFileName(doubleName, pkgName, goFile)

	// Reorder declarations to the project convention; on failure keep the
	// formatted original rather than blocking generation.
	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

func generatedFileName(doubleName, pkgName, goFile string) string {
	isTestFile := strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go")
	if isTestFile {
		return "generated_" + doubleName + "_test.go"
	}

	return "generated_" + doubleName + ".go"
}
