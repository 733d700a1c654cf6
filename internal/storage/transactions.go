package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/common"
	"github.com/finchley/penny/internal/model"
	"github.com/finchley/penny/internal/service"
)

// SaveTransactions saves multiple transactions to the database in a single
// database transaction. Existing rows with the same ID are replaced.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO transactions (
			id, date_ms, category, note, source, amount, mood, deleted, hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range transactions {
		txn := &transactions[i]

		var mood sql.NullInt64
		if txn.Mood != nil {
			mood = sql.NullInt64{Int64: int64(*txn.Mood), Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			txn.ID,
			txn.Date.UnixMilli(),
			txn.Category,
			txn.Note,
			txn.Source,
			txn.Amount.String(),
			mood,
			boolToInt(txn.Deleted),
			txn.GenerateHash(),
		)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	slog.Debug("saved transactions", "count", len(transactions))
	return nil
}

// GetTransactions returns transactions matching the filter, most recent
// first. Soft-deleted rows are excluded unless the filter asks for them.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, ErrInvalidDateRange
	}

	var conditions []string
	var args []any

	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted = 0")
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "date_ms >= ?")
		args = append(args, filter.StartDate.UnixMilli())
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date_ms < ?")
		args = append(args, filter.EndDate.UnixMilli())
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}

	query := `SELECT id, date_ms, category, note, source, amount, mood, deleted FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date_ms DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// GetTransactionByID returns a single transaction, including soft-deleted
// ones, or common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date_ms, category, note, source, amount, mood, deleted
		FROM transactions
		WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return txn, err
}

// DeleteTransaction soft-deletes a transaction. The row stays in the
// database and can be restored until purged.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	return s.setDeleted(ctx, id, true)
}

// RestoreTransaction undoes a soft delete.
func (s *SQLiteStorage) RestoreTransaction(ctx context.Context, id string) error {
	return s.setDeleted(ctx, id, false)
}

func (s *SQLiteStorage) setDeleted(ctx context.Context, id string, deleted bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET deleted = ? WHERE id = ?`, boolToInt(deleted), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// PurgeDeleted permanently removes all soft-deleted transactions and
// returns the number of rows removed.
func (s *SQLiteStorage) PurgeDeleted(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE deleted = 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge deleted transactions: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}

	slog.Info("purged deleted transactions", "count", purged)
	return purged, nil
}

// HasTransactionHash reports whether a transaction with the given import
// hash already exists, for duplicate detection on import.
func (s *SQLiteStorage) HasTransactionHash(ctx context.Context, hash string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM transactions WHERE hash = ?`, hash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction hash: %w", err)
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn     model.Transaction
		dateMS  int64
		note    sql.NullString
		source  sql.NullString
		amount  string
		mood    sql.NullInt64
		deleted int
	)

	if err := row.Scan(&txn.ID, &dateMS, &txn.Category, &note, &source, &amount, &mood, &deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q for transaction %s: %w", amount, txn.ID, err)
	}

	txn.Date = time.UnixMilli(dateMS).UTC()
	txn.Note = note.String
	txn.Source = source.String
	txn.Amount = parsed
	txn.Deleted = deleted != 0
	if mood.Valid {
		score := int(mood.Int64)
		txn.Mood = &score
	}
	return &txn, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
