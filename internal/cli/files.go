package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"tabkit/data"
	"tabkit/parquetio"
)

// FileType represents the type of a data file.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// DetectFileType determines the type of file based on its extension.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// loadTable reads a table from a file, dispatching on the file type.
func loadTable(ctx context.Context, path string, convert bool) (*data.Table, error) {
	switch DetectFileType(path) {
	case FileTypeCSV:
		cfg := data.DefaultCSVConfig()
		cfg.Convert = convert
		return data.ReadCSVFile(path, cfg)
	case FileTypeParquet:
		return parquetio.ReadFile(ctx, path)
	case FileTypeJSON:
		return data.ReadJSONFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// saveTable writes a table to a file, dispatching on the file type.
func saveTable(path string, t *data.Table) error {
	switch DetectFileType(path) {
	case FileTypeCSV:
		return data.WriteCSVFile(path, t)
	case FileTypeParquet:
		return parquetio.WriteFile(path, t)
	case FileTypeJSON:
		return data.WriteJSONFile(path, t)
	default:
		return fmt.Errorf("unsupported file type: %s", path)
	}
}
