// Package dataset reads and writes the persisted table artifacts shared with
// the solver: JSON objects mapping a textual hand key to an integer strength,
// a float equity, or an integer bucket id. Saves are atomic so a crashed
// build never leaves a torn file behind.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/holdem-abstraction/internal/fileutil"
)

// MissingError reports a required dataset that is absent and cannot be
// built. It is fatal: callers log the diagnostic and abort.
type MissingError struct {
	Name string
	Path string
	Err  error
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s dataset missing at %s: %v", e.Name, e.Path, e.Err)
}

func (e *MissingError) Unwrap() error { return e.Err }

// LookupMissError reports a well-formed canonical key absent from a table
// that is assumed complete. Completeness is a build-time guarantee, so a
// miss is an internal-consistency fault rather than a recoverable condition.
type LookupMissError struct {
	Table string
	Key   string
}

func (e *LookupMissError) Error() string {
	return fmt.Sprintf("%s table has no entry for canonical key %q (table assumed complete)", e.Table, e.Key)
}

// Exists reports whether a dataset file is present on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadStrengths loads a hand-key -> strength dataset.
func LoadStrengths(name, path string) (map[string]int, error) {
	return load[int](name, path)
}

// LoadEquities loads a hand-key -> win-probability dataset.
func LoadEquities(name, path string) (map[string]float64, error) {
	return load[float64](name, path)
}

// LoadBuckets loads an archetype-key -> bucket-id dataset.
func LoadBuckets(name, path string) (map[string]int, error) {
	return load[int](name, path)
}

// LoadDistributions loads an archetype-key -> histogram dataset.
func LoadDistributions(name, path string) (map[string][]float64, error) {
	return load[[]float64](name, path)
}

// Save writes a dataset atomically.
func Save[V any](path string, table map[string]V) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("persist dataset %s: %w", path, err)
	}
	return nil
}

func load[V any](name, path string) (map[string]V, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MissingError{Name: name, Path: path, Err: err}
	}
	var table map[string]V
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode %s dataset %s: %w", name, path, err)
	}
	return table, nil
}
