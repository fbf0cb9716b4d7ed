// Package csvsource implements interfaces.DocumentSource over CSV files.
// The example pack carries no spreadsheet library (no excelize, no
// tealeg/xlsx) for any document format richer than CSV, so this is the
// stdlib-backed shell adapter cmd/chassign wires in by default; a real
// deployment swaps it for an Excel-backed implementation without touching
// pkg/extractor, which depends only on interfaces.DocumentSource.
package csvsource

import (
	"encoding/csv"
	"os"
	"time"

	"chassign/internal/interfaces"
	"chassign/pkg/errors"
)

// Source is a single-region DocumentSource backed by one CSV file. The
// whole file is treated as one tabular region named after the file.
type Source struct {
	path string
	rows [][]string
	size int64
	mod  time.Time
}

// Open reads path fully into memory and returns a ready Source.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ErrFileNotFound(path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.ErrFileReadFailed(path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.ErrDocumentUnreadable(path, err)
	}

	return &Source{path: path, rows: records, size: info.Size(), mod: info.ModTime()}, nil
}

// Regions reports the single region this file exposes.
func (s *Source) Regions() []interfaces.TabularRegion {
	cols := 0
	if len(s.rows) > 0 {
		cols = len(s.rows[0])
	}
	return []interfaces.TabularRegion{{Name: s.path, RowCount: len(s.rows), ColCount: cols}}
}

// Rows returns the file's rows regardless of which region is requested,
// since a CSV file carries exactly one region.
func (s *Source) Rows(_ interfaces.TabularRegion) [][]string {
	return s.rows
}

// Metadata describes the backing file.
func (s *Source) Metadata() interfaces.DocumentMetadata {
	return interfaces.DocumentMetadata{Name: s.path, Timestamp: s.mod, Size: s.size}
}
