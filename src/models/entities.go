package models

// The entities below are relational scaffolding around Transaction: ownership
// and grouping links with no behavior of their own.

// Account is a logical account owned by a user. Statement lines reference it
// through Transaction.AccountID once linked.
type Account struct {
	ID     int64   `json:"id,omitempty"`
	Name   string  `json:"name"`
	IBAN   *string `json:"iban"`
	UserID *int64  `json:"user_id"`
}

// Category groups transactions for reporting.
type Category struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// User owns accounts.
type User struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
