// Package store provides raw-SQL persistence for transaction records.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/kasboek/backend/src/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// TransactionStore persists and reads Transaction records.
type TransactionStore struct {
	db *sql.DB
}

// NewTransactionStore returns a store over the given database handle.
func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx so inserts can run inside
// or outside a caller-owned transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const transactionColumns = `account, booking_date, statement_number, transaction_number,
	counterparty_account, counterparty_name, street_number, postal_code_city,
	transaction_type, value_date, amount, currency, bic, country_code, notes,
	category_id, account_id`

const insertTransactionSQL = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Create inserts the record and assigns its ID.
func (s *TransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	return s.create(ctx, s.db, t)
}

// CreateTx inserts the record within an existing SQL transaction. The caller
// owns commit and rollback.
func (s *TransactionStore) CreateTx(ctx context.Context, tx *sql.Tx, t *models.Transaction) error {
	return s.create(ctx, tx, t)
}

func (s *TransactionStore) create(ctx context.Context, e execer, t *models.Transaction) error {
	res, err := e.ExecContext(ctx, insertTransactionSQL,
		t.Account, t.BookingDate, t.StatementNumber, t.TransactionNumber,
		t.CounterpartyAccount, t.CounterpartyName, t.StreetNumber, t.PostalCodeCity,
		t.TransactionType, t.ValueDate, t.Amount.String(), t.Currency, t.BIC,
		t.CountryCode, t.Notes, t.CategoryID, t.AccountID)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted transaction id: %w", err)
	}
	t.ID = id
	return nil
}

// Get returns the transaction with the given ID, or ErrNotFound.
func (s *TransactionStore) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, `+transactionColumns+`
		FROM transactions
		WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying transaction %d: %w", id, err)
	}
	return t, nil
}

// List returns up to limit transactions in insertion order, skipping the
// first skip records.
func (s *TransactionStore) List(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, `+transactionColumns+`
		FROM transactions
		ORDER BY id
		LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return transactions, nil
}

// Count returns the total number of stored transactions.
func (s *TransactionStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (*models.Transaction, error) {
	var (
		t         models.Transaction
		amountStr string
	)
	err := r.Scan(
		&t.ID, &t.Account, &t.BookingDate, &t.StatementNumber, &t.TransactionNumber,
		&t.CounterpartyAccount, &t.CounterpartyName, &t.StreetNumber, &t.PostalCodeCity,
		&t.TransactionType, &t.ValueDate, &amountStr, &t.Currency, &t.BIC,
		&t.CountryCode, &t.Notes, &t.CategoryID, &t.AccountID)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("stored amount %q is not a decimal: %w", amountStr, err)
	}
	t.Amount = amount
	return &t, nil
}
