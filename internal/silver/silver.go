// Package silver reads and writes the columnar dataset files. Each dataset
// is one parquet file per legislature, named <dataset>_<leg>.parquet with the
// legislature lowercased. Presence of a file is what marks a dataset as
// available; there is no registry.
package silver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const rowGroupSize = 100_000

// DatasetPath returns the silver file path for a dataset and legislature.
func DatasetPath(dir, dataset, legislature string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.parquet", dataset, strings.ToLower(legislature)))
}

// Exists reports whether the dataset was produced for the legislature.
func Exists(dir, dataset, legislature string) bool {
	_, err := os.Stat(DatasetPath(dir, dataset, legislature))
	return err == nil
}

// Legislatures lists the legislature IDs a dataset exists for, uppercased,
// discovered purely from the files on disk.
func Legislatures(dir, dataset string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, dataset+"_*.parquet"))
	if err != nil {
		return nil, err
	}
	legs := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".parquet")
		legs = append(legs, strings.ToUpper(strings.TrimPrefix(name, dataset+"_")))
	}
	return legs, nil
}

// Write stores rows as a zstd-compressed parquet file. The write goes to a
// temp file in the same directory first and is renamed into place, so a
// crash mid-write never leaves a truncated dataset behind.
func Write[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create silver dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := parquet.NewGenericWriter[T](tmp,
		parquet.Compression(&zstd.Codec{}),
		parquet.MaxRowsPerRowGroup(rowGroupSize),
	)
	if _, err := writer.Write(rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Read loads every row of a silver file.
func Read[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
