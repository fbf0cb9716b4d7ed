// Package interfaces names the external collaborators this module depends
// on: the document ingestion shell, the persisted module catalogue, the
// project metadata fetcher, and the Excel exporter. internal/csvsource and
// internal/yamlcatalogue implement the first two for files; nothing in this
// module implements the other two.
package interfaces

import "time"

// DocumentSource is an opaque document handle whose body contains one or
// more tabular regions. internal/csvsource implements it over one CSV file;
// Excel/Word readers and UI grid adapters live outside this module.
// pkg/extractor depends only on this interface.
type DocumentSource interface {
	// Regions returns every tabular region the underlying document exposes.
	Regions() []TabularRegion

	// Rows returns the raw cell values of a region, one slice per row.
	Rows(region TabularRegion) [][]string

	// Metadata describes the document itself.
	Metadata() DocumentMetadata
}

// TabularRegion identifies one rectangular table within a document, e.g. a
// worksheet or a named range.
type TabularRegion struct {
	Name      string
	RowCount  int
	ColCount  int
}

// DocumentMetadata carries identifying information about a document source.
type DocumentMetadata struct {
	Name      string
	Timestamp time.Time
	Size      int64
}

// ModuleDefinition describes one entry of the persisted module catalogue.
type ModuleDefinition struct {
	Model         string
	Kind          string
	TotalChannels int

	// SubChannels partitions TotalChannels by kind string (e.g. "AI", "DI")
	// for a CPU's onboard-IO sub-block. Empty for single-kind modules.
	SubChannels  map[string]int
	IsMaster     bool
	SlotRequired bool
}

// CatalogueStore is the persisted catalogue of module definitions.
// internal/yamlcatalogue implements it over a YAML file; database-backed
// stores live outside this module. pkg/catalogue wraps an in-memory
// snapshot obtained through this interface.
type CatalogueStore interface {
	Lookup(model string) (*ModuleDefinition, bool)
	All() []ModuleDefinition
}

// ProjectMetadata describes the site a document belongs to, as resolved by
// an external project/site registry.
type ProjectMetadata struct {
	ProjectID   string
	SiteName    string
	SystemType  string // "classic-serial" or "cpu-centric"
}

// ProjectMetadataFetcher resolves project metadata for a document, e.g. by
// querying an external site registry. Out of scope for this module.
type ProjectMetadataFetcher interface {
	Fetch(documentName string) (ProjectMetadata, error)
}

// SheetExporter writes a filled, validated point sheet to its persisted
// form (Excel workbook, database table). Out of scope for this module.
type SheetExporter interface {
	Export(destination string, rows [][]string) error
}
