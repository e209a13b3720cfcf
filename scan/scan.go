// Package scan walks directories for C sources and runs the analysis
// pipeline over every file found, producing one summary per file.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/viktorexe/codeanatomy/analyze"
	"github.com/viktorexe/codeanatomy/engine"
	"github.com/viktorexe/codeanatomy/explain"
)

// Result summarizes the analysis of one scanned file. Err is set when the
// file could not be read; the remaining fields are zero in that case.
type Result struct {
	Path       string
	Parsed     bool
	Complexity explain.Classification
	LeakRisk   int
	Err        error
}

// Scanner finds and analyzes C sources under a set of root paths.
// Exclusion is by exact base name: an excluded directory is skipped whole,
// an excluded file name is skipped wherever it appears.
type Scanner struct {
	exclude map[string]bool
}

func NewScanner(excludes []string) *Scanner {
	ex := make(map[string]bool, len(excludes))
	for _, name := range excludes {
		ex[name] = true
	}
	return &Scanner{exclude: ex}
}

// Files collects the .c and .h files under roots, deduplicated by absolute
// path, in walk order. A root that is itself a file is taken as-is when it
// has a C extension and ignored otherwise.
func (s *Scanner) Files(roots []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	keep := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isCSource(root) && !s.exclude[filepath.Base(root)] {
				keep(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			if d.IsDir() {
				if s.exclude[d.Name()] {
					return fs.SkipDir
				}
				return nil
			}
			if isCSource(path) && !s.exclude[d.Name()] {
				keep(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// Run analyzes every file Files finds and returns one Result per file.
// Unreadable files produce a Result carrying the read error; analysis
// itself never fails a scan.
func (s *Scanner) Run(roots []string) ([]Result, error) {
	files, err := s.Files(roots)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, Result{Path: path, Err: err})
			continue
		}

		report := engine.Analyze(string(data))
		results = append(results, Result{
			Path:       path,
			Parsed:     report.Parse.Success,
			Complexity: report.Explanation.Complexity,
			LeakRisk:   analyze.LeakRisk(report.Features),
		})
	}

	return results, nil
}

func isCSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c", ".h":
		return true
	}
	return false
}
