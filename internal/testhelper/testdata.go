// Package testhelper provides utilities for managing testdata files in package tests.
package testhelper

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agentstation/jfrogsync/pkg/constants"
)

// UpdateTestdata is the global flag for updating golden files.
var UpdateTestdata = flag.Bool("update", false, "update testdata files")

// LoadTestdata loads a file from the caller's testdata directory.
func LoadTestdata(t testing.TB, filename string) []byte {
	t.Helper()

	testdataPath := filepath.Join("testdata", filename)

	data, err := os.ReadFile(testdataPath) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", testdataPath, err)
	}

	return data
}

// SaveTestdata saves data to a testdata file if the -update flag is set.
func SaveTestdata(t testing.TB, filename string, data []byte) {
	t.Helper()

	if !*UpdateTestdata {
		return
	}

	if err := os.MkdirAll("testdata", constants.DirPermissions); err != nil {
		t.Fatalf("Failed to create testdata directory: %v", err)
	}

	testdataPath := filepath.Join("testdata", filename)
	if err := os.WriteFile(testdataPath, data, constants.FilePermissions); err != nil {
		t.Fatalf("Failed to save testdata file %s: %v", testdataPath, err)
	}

	t.Logf("Updated testdata file: %s", testdataPath)
}

// LoadJSON loads and unmarshals JSON from a testdata file.
func LoadJSON(t testing.TB, filename string, v any) {
	t.Helper()

	data := LoadTestdata(t, filename)

	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to unmarshal JSON from testdata file %s: %v", filename, err)
	}
}

// CompareJSONWithTestdata compares the JSON encoding of actual with a golden file.
// Documents are compared after decoding, so key order and whitespace do not matter.
// With -update the golden file is rewritten instead.
func CompareJSONWithTestdata(t testing.TB, filename string, actual any) {
	t.Helper()

	actualData, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal actual data for comparison: %v", err)
	}

	if *UpdateTestdata {
		SaveTestdata(t, filename, append(actualData, '\n'))
		return
	}

	var want, got any
	if err := json.Unmarshal(LoadTestdata(t, filename), &want); err != nil {
		t.Fatalf("Failed to unmarshal testdata file %s: %v", filename, err)
	}
	if err := json.Unmarshal(actualData, &got); err != nil {
		t.Fatalf("Failed to unmarshal actual data: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON does not match testdata file %s (-want +got):\n%s", filename, diff)
	}
}
