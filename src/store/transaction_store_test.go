package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/username/kasboek/backend/src/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "db", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func strPtr(s string) *string { return &s }

func sampleTransaction(account string, amount string) *models.Transaction {
	return &models.Transaction{
		Account:          account,
		Amount:           decimal.RequireFromString(amount),
		BookingDate:      strPtr("2024-01-15"),
		CounterpartyName: strPtr("Albert Heijn"),
		Currency:         strPtr("EUR"),
	}
}

func TestTransactionStore_CreateAssignsID(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	tx := sampleTransaction("NL01INGB000", "-12.50")
	require.NoError(t, s.Create(context.Background(), tx))
	assert.Greater(t, tx.ID, int64(0))

	tx2 := sampleTransaction("NL01INGB000", "3.25")
	require.NoError(t, s.Create(context.Background(), tx2))
	assert.Greater(t, tx2.ID, tx.ID)
}

func TestTransactionStore_GetRoundTrip(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	in := sampleTransaction("NL01INGB000", "-12.50")
	in.Notes = strPtr("Boodschappen")
	require.NoError(t, s.Create(context.Background(), in))

	out, err := s.Get(context.Background(), in.ID)
	require.NoError(t, err)

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, "NL01INGB000", out.Account)
	assert.True(t, in.Amount.Equal(out.Amount))
	require.NotNil(t, out.BookingDate)
	assert.Equal(t, "2024-01-15", *out.BookingDate)
	require.NotNil(t, out.Notes)
	assert.Equal(t, "Boodschappen", *out.Notes)
	// Fields never set stay null.
	assert.Nil(t, out.StatementNumber)
	assert.Nil(t, out.CategoryID)
	assert.Nil(t, out.AccountID)
}

func TestTransactionStore_GetIsRepeatable(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	in := sampleTransaction("NL01INGB000", "-12.50")
	require.NoError(t, s.Create(context.Background(), in))

	first, err := s.Get(context.Background(), in.ID)
	require.NoError(t, err)
	second, err := s.Get(context.Background(), in.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransactionStore_GetNotFound(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionStore_ListPagination(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	for i := 0; i < 5; i++ {
		tx := sampleTransaction("acct-"+strconv.Itoa(i), "1.00")
		require.NoError(t, s.Create(context.Background(), tx))
	}

	all, err := s.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, tx := range all {
		assert.Equal(t, "acct-"+strconv.Itoa(i), tx.Account)
	}

	page, err := s.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "acct-2", page[0].Account)
	assert.Equal(t, "acct-3", page[1].Account)

	tail, err := s.List(context.Background(), 4, 10)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "acct-4", tail[0].Account)
}

func TestTransactionStore_ListEmpty(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	list, err := s.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTransactionStore_CreateTxRollback(t *testing.T) {
	db := newTestDB(t)
	s := NewTransactionStore(db)

	dbTx, err := db.Begin()
	require.NoError(t, err)

	tx := sampleTransaction("NL01INGB000", "-1.00")
	require.NoError(t, s.CreateTx(context.Background(), dbTx, tx))
	require.NoError(t, dbTx.Rollback())

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTransactionStore_Count(t *testing.T) {
	s := NewTransactionStore(newTestDB(t))

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, s.Create(context.Background(), sampleTransaction("a", "1.00")))
	require.NoError(t, s.Create(context.Background(), sampleTransaction("b", "2.00")))

	count, err = s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTransactionStore_ForeignKeyLinks(t *testing.T) {
	db := newTestDB(t)
	s := NewTransactionStore(db)

	// Classification and ownership rows the transaction can point at.
	user := models.User{Name: "Jan", Email: "jan@example.com"}
	res, err := db.Exec(`INSERT INTO users (name, email) VALUES (?, ?)`, user.Name, user.Email)
	require.NoError(t, err)
	userID, err := res.LastInsertId()
	require.NoError(t, err)

	account := models.Account{Name: "Betaalrekening", IBAN: strPtr("NL01INGB000"), UserID: &userID}
	res, err = db.Exec(`INSERT INTO accounts (name, iban, user_id) VALUES (?, ?, ?)`, account.Name, account.IBAN, account.UserID)
	require.NoError(t, err)
	accountID, err := res.LastInsertId()
	require.NoError(t, err)

	category := models.Category{Name: "Boodschappen"}
	res, err = db.Exec(`INSERT INTO categories (name, description) VALUES (?, ?)`, category.Name, category.Description)
	require.NoError(t, err)
	categoryID, err := res.LastInsertId()
	require.NoError(t, err)

	tx := sampleTransaction("NL01INGB000", "-12.50")
	tx.AccountID = &accountID
	tx.CategoryID = &categoryID
	require.NoError(t, s.Create(context.Background(), tx))

	out, err := s.Get(context.Background(), tx.ID)
	require.NoError(t, err)
	require.NotNil(t, out.AccountID)
	assert.Equal(t, accountID, *out.AccountID)
	require.NotNil(t, out.CategoryID)
	assert.Equal(t, categoryID, *out.CategoryID)

	// A dangling category link is rejected by the schema.
	bad := sampleTransaction("NL01INGB000", "1.00")
	missing := int64(9999)
	bad.CategoryID = &missing
	assert.Error(t, s.Create(context.Background(), bad))
}
