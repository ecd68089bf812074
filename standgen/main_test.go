package main

import (
	"testing"
)

// TestRealPackageLoader verifies the adapter loads a real package from disk.
func TestRealPackageLoader(t *testing.T) {
	t.Parallel()

	loader := &realPackageLoader{}

	files, fset, err := loader.Load(".")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(files) == 0 {
		t.Error("expected files for this package")
	}

	if fset == nil {
		t.Error("expected a file set")
	}
}
