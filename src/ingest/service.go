// Package ingest turns uploaded statement exports into persisted transactions:
// format detection, header validation, per-row mapping, and an atomic write of
// the whole file.
package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/kasboek/backend/src/logger"
	"github.com/username/kasboek/backend/src/models"
	"github.com/username/kasboek/backend/src/parsers/tabular"
	"github.com/username/kasboek/backend/src/store"
)

// Service orchestrates statement ingestion.
type Service struct {
	db    *sql.DB
	store *store.TransactionStore
}

// NewService wires the orchestrator to its database handle and store.
func NewService(db *sql.DB, txStore *store.TransactionStore) *Service {
	return &Service{db: db, store: txStore}
}

// Ingest parses the uploaded bytes and persists one Transaction per data row,
// returning the persisted records in source-file order with assigned IDs.
//
// The whole file is written inside a single SQL transaction: an unsupported
// extension, a parse failure, a missing required column, or a bad row all
// leave the database untouched.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) ([]models.Transaction, error) {
	table, err := s.parse(filename, data)
	if err != nil {
		return nil, err
	}

	if missing := MissingColumns(table); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ingest transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := dbTx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logger.FromContext(ctx).Error("Failed to roll back ingest transaction", "error", rbErr)
			}
		}
	}()

	transactions := make([]models.Transaction, 0, table.NumRows())
	for i := 0; i < table.NumRows(); i++ {
		record, err := mapRow(table.Row(i), i+1)
		if err != nil {
			return nil, err
		}
		if err := s.store.CreateTx(ctx, dbTx, record); err != nil {
			return nil, fmt.Errorf("persisting row %d: %w", i+1, err)
		}
		transactions = append(transactions, *record)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing ingest transaction: %w", err)
	}
	committed = true

	logger.FromContext(ctx).Info("Statement file ingested",
		"filename", filename, "rows", len(transactions))
	return transactions, nil
}

// parse detects the file format by extension and reads it into a table.
// Unrecognized extensions fail before any byte of content is inspected.
func (s *Service) parse(filename string, data []byte) (*tabular.Table, error) {
	var (
		table *tabular.Table
		err   error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		table, err = tabular.ReadCSV(bytes.NewReader(data))
	case strings.HasSuffix(strings.ToLower(filename), ".xls"),
		strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		table, err = tabular.ReadWorkbook(bytes.NewReader(data))
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return table, nil
}
