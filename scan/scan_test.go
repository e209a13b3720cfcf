package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const trivialMain = "int main() { return 0; }\n"

func TestFilesFindsCSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "main.c"), trivialMain)
	writeSource(t, filepath.Join(dir, "util.h"), "")
	writeSource(t, filepath.Join(dir, "notes.txt"), "hello")
	writeSource(t, filepath.Join(dir, "sub", "list.c"), trivialMain)

	files, err := NewScanner(nil).Files([]string{dir})
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 3 {
		t.Errorf("len(files) = %d, want 3: %v", len(files), files)
	}
}

func TestFilesSkipsExcludedNames(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "main.c"), trivialMain)
	writeSource(t, filepath.Join(dir, "vendor", "dep.c"), trivialMain)
	writeSource(t, filepath.Join(dir, "generated.c"), trivialMain)

	files, err := NewScanner([]string{"vendor", "generated.c"}).Files([]string{dir})
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("len(files) = %d, want 1: %v", len(files), files)
	}
}

func TestFilesDeduplicatesRoots(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.c")
	writeSource(t, file, trivialMain)

	files, err := NewScanner(nil).Files([]string{dir, file})
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("len(files) = %d, want 1: %v", len(files), files)
	}
}

func TestFilesIgnoresNonCRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "readme.md")
	writeSource(t, file, "hello")

	files, err := NewScanner(nil).Files([]string{file})
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("len(files) = %d, want 0", len(files))
	}
}

func TestRunSummarizesEachFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "leaky.c"), `#include <stdlib.h>
int main() {
    int *data = malloc(10 * sizeof(int));
    return 0;
}
`)
	writeSource(t, filepath.Join(dir, "clean.c"), trivialMain)

	results, err := NewScanner(nil).Run([]string{dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	byName := make(map[string]Result)
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}

	leaky := byName["leaky.c"]
	if !leaky.Parsed {
		t.Error("leaky.c: Parsed = false, want true")
	}
	if leaky.LeakRisk != 1 {
		t.Errorf("leaky.c: LeakRisk = %d, want 1", leaky.LeakRisk)
	}

	clean := byName["clean.c"]
	if clean.LeakRisk != 0 {
		t.Errorf("clean.c: LeakRisk = %d, want 0", clean.LeakRisk)
	}
	if clean.Complexity.Label == "" {
		t.Error("clean.c: Complexity.Label is empty")
	}
}

func TestRunReportsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "fragment.h"), "int helper(int x);\n")

	results, err := NewScanner(nil).Run([]string{dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Parsed {
		t.Error("Parsed = true for a header with no entry point, want false")
	}
	if results[0].Err != nil {
		t.Errorf("Err = %v, want nil", results[0].Err)
	}
}
