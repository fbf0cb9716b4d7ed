// Package extractor walks a document's tabular regions, locates each
// region's header row, and yields raw rows keyed by semantic field. It does
// no interpretation of column meaning beyond what pkg/headermap resolves.
package extractor

import (
	"strings"

	"chassign/internal/interfaces"
	"chassign/pkg/errors"
	"chassign/pkg/headermap"
)

// headerScanLimit bounds how many leading rows of a region are examined
// while searching for the header row.
const headerScanLimit = 10

// headerMatchThreshold is the minimum count of recognized header fields a
// row must contain before it is accepted as the header row.
const headerMatchThreshold = 2

// RawRow is one data row, trimmed and keyed by the semantic field
// pkg/headermap resolved its column to. Absent fields are omitted.
type RawRow map[headermap.Field]string

// Extract walks every tabular region doc exposes and returns the data rows
// found beneath each region's header row.
func Extract(doc interfaces.DocumentSource) ([]RawRow, error) {
	if doc == nil {
		return nil, errors.ErrDocumentUnreadable("", errors.ErrUnexpected("extract", nil))
	}

	regions := doc.Regions()
	if len(regions) == 0 {
		return nil, errors.ErrNoTables(doc.Metadata().Name)
	}

	var rows []RawRow
	for _, region := range regions {
		regionRows := doc.Rows(region)
		headerIdx, mapping, found := locateHeader(regionRows)
		if !found {
			continue
		}
		for _, raw := range regionRows[headerIdx+1:] {
			row := buildRawRow(raw, mapping)
			if isEmptyRow(row) {
				continue
			}
			rows = append(rows, row)
		}
	}

	if rows == nil {
		return nil, errors.ErrNoTables(doc.Metadata().Name)
	}
	return rows, nil
}

// locateHeader scans the first headerScanLimit rows of a region for the
// first one whose cells contain at least headerMatchThreshold known header
// keywords. Fields that headermap.Detect fills only by position do not count.
func locateHeader(rows [][]string) (int, map[headermap.Field]int, bool) {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		// Two blank leading cells take the positional fallback, so every
		// field mapped at column 2 or later was matched by keyword.
		keywordMatches := 0
		for _, col := range headermap.Detect(append([]string{"", ""}, rows[i]...)) {
			if col >= 2 {
				keywordMatches++
			}
		}
		if keywordMatches >= headerMatchThreshold {
			return i, headermap.Detect(rows[i]), true
		}
	}
	return 0, nil, false
}

func buildRawRow(cells []string, mapping map[headermap.Field]int) RawRow {
	row := make(RawRow, len(mapping))
	for field, col := range mapping {
		if col < len(cells) {
			if text := strings.TrimSpace(cells[col]); text != "" {
				row[field] = text
			}
		}
	}
	return row
}

func isEmptyRow(row RawRow) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
