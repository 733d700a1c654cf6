package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/finchley/penny/internal/model"
	"github.com/finchley/penny/internal/service"
)

// HashChecker is the slice of storage the importer needs for duplicate
// detection beyond the service.Storage contract.
type HashChecker interface {
	HasTransactionHash(ctx context.Context, hash string) (bool, error)
}

// Result summarizes an import run.
type Result struct {
	Files      int
	Imported   int
	Duplicates int
}

// Options control an import run.
type Options struct {
	DryRun bool
}

// Importer reads statement files and saves their transactions.
type Importer struct {
	store  service.Storage
	hashes HashChecker
	csv    *CSVParser
	ofx    *OFXParser
}

// New creates an importer writing to the given store. The store must also
// implement HashChecker for duplicate detection.
func New(store service.Storage, hashes HashChecker) *Importer {
	return &Importer{
		store:  store,
		hashes: hashes,
		csv:    NewCSVParser(),
		ofx:    NewOFXParser(),
	}
}

// Import parses every file and saves the transactions that are not already
// present. The file format is detected from the extension: .csv for CSV,
// .ofx/.qfx for OFX.
func (imp *Importer) Import(ctx context.Context, paths []string, opts Options) (*Result, error) {
	result := &Result{}

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Importing files"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		txns, err := imp.parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		result.Files++

		fresh, dupes, err := imp.dropDuplicates(ctx, txns)
		if err != nil {
			return nil, err
		}
		result.Duplicates += dupes

		if len(fresh) > 0 && !opts.DryRun {
			if err := imp.store.SaveTransactions(ctx, fresh); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		result.Imported += len(fresh)

		_ = bar.Add(1)
	}

	_ = bar.Finish()
	return result, nil
}

func (imp *Importer) parseFile(path string) ([]model.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return imp.csv.Parse(file)
	case ".ofx", ".qfx":
		return imp.ofx.Parse(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func (imp *Importer) dropDuplicates(ctx context.Context, txns []model.Transaction) ([]model.Transaction, int, error) {
	fresh := make([]model.Transaction, 0, len(txns))
	dupes := 0

	for i := range txns {
		exists, err := imp.hashes.HasTransactionHash(ctx, txns[i].GenerateHash())
		if err != nil {
			return nil, 0, err
		}
		if exists {
			dupes++
			continue
		}
		fresh = append(fresh, txns[i])
	}
	return fresh, dupes, nil
}
