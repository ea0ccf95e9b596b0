// Package registry discovers model program files on disk and builds the
// model list the engine registers at startup.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"latentd/internal/common/fsutil"
	"latentd/pkg/types"
)

// ProgramScanner finds *.model program files in a directory.
type ProgramScanner struct{}

// NewProgramScanner constructs a scanner.
func NewProgramScanner() *ProgramScanner { return &ProgramScanner{} }

// Scan walks dir (non-recursively) for *.model files. ID is the full
// filename; Name is the filename without extension; Path is absolute.
// Compilation happens later, at registration, so a malformed program does
// not abort the scan.
func (s *ProgramScanner) Scan(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".model") {
			continue
		}
		models = append(models, types.Model{
			ID:     name,
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Path:   filepath.Join(abs, name),
			Source: "program",
		})
	}
	return models, nil
}

// LoadDir is a convenience wrapper around the default scanner.
func LoadDir(dir string) ([]types.Model, error) {
	return NewProgramScanner().Scan(dir)
}
