package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source kinds accepted by Load.
const (
	SourceSynthetic = "synthetic"
	SourceCSV       = "csv"
	SourceSQLite    = "sqlite"
)

// ErrUnknownSource indicates an unsupported source kind.
var ErrUnknownSource = errors.New("unknown record source")

// Source selects where the record store comes from.
type Source struct {
	Kind string
	Path string
}

// LoadReport describes what Load produced.
type LoadReport struct {
	Kind   string
	Path   string
	Import ImportResult
}

// Load builds the record store from src. The synthetic generator uses gen; file
// sources use gen.Location for timestamp normalization only.
func Load(ctx context.Context, src Source, gen GenerateOptions) (*Store, LoadReport, error) {
	kind := strings.ToLower(strings.TrimSpace(src.Kind))
	if kind == "" {
		kind = SourceSynthetic
	}
	report := LoadReport{Kind: kind, Path: src.Path}

	var records []Record
	switch kind {
	case SourceSynthetic:
		records = Generate(gen)
	case SourceCSV:
		if strings.TrimSpace(src.Path) == "" {
			return nil, report, fmt.Errorf("csv source: path required")
		}
		file, err := os.Open(src.Path)
		if err != nil {
			return nil, report, fmt.Errorf("open csv: %w", err)
		}
		defer file.Close()
		loaded, result, err := ReadCSV(file, gen.Location)
		if err != nil {
			return nil, report, fmt.Errorf("import csv: %w", err)
		}
		report.Import = result
		records = loaded
	case SourceSQLite:
		db, err := OpenDB(ctx, src.Path)
		if err != nil {
			return nil, report, err
		}
		defer db.Close()
		report.Path = db.Path()
		loaded, err := db.LoadRecords(ctx)
		if err != nil {
			return nil, report, err
		}
		records = loaded
	default:
		return nil, report, fmt.Errorf("%w: %q", ErrUnknownSource, src.Kind)
	}

	store, err := NewStore(records)
	if err != nil {
		return nil, report, fmt.Errorf("build store: %w", err)
	}
	return store, report, nil
}
