package models

import "github.com/shopspring/decimal"

// Transaction is one parsed bank-statement line item. Optional fields are
// pointers so that cells missing from the source file serialize as null,
// matching how incomplete exports arrive from the bank.
type Transaction struct {
	ID int64 `json:"id,omitempty"` // Database primary key, assigned on insert

	// Raw account number the statement line belongs to ("Rekening").
	Account string `json:"account"`
	// Booking date as reported by the statement ("Boekingsdatum"). Kept as an
	// opaque string; formats differ per bank and are not normalized here.
	BookingDate *string `json:"booking_date"`
	// Statement number ("Rekeninguittrekselnummer").
	StatementNumber *string `json:"statement_number"`
	// Transaction number assigned by the bank ("Transactienummer").
	TransactionNumber *string `json:"transaction_number"`
	// Counterparty account ("Rekening tegenpartij").
	CounterpartyAccount *string `json:"counterparty_account"`
	// Counterparty name ("Naam tegenpartij bevat").
	CounterpartyName *string `json:"counterparty_name"`
	// Counterparty street and number ("Straat en nummer").
	StreetNumber *string `json:"street_number"`
	// Counterparty postal code and city ("Postcode en plaats").
	PostalCodeCity *string `json:"postal_code_city"`
	// Free-text classification from the source file ("Transactie").
	TransactionType *string `json:"transaction_type"`
	// Value date ("Valutadatum"). Opaque string, same caveat as BookingDate.
	ValueDate *string `json:"value_date"`
	// Signed amount ("Bedrag"). Negative values are outflows.
	Amount decimal.Decimal `json:"amount"`
	// Currency code ("Devies").
	Currency *string `json:"currency"`
	// BIC of the counterparty bank ("BIC").
	BIC *string `json:"bic"`
	// ISO country code ("Landcode").
	CountryCode *string `json:"country_code"`
	// Freeform notes ("Mededelingen").
	Notes *string `json:"notes"`

	// Nullable links to classification and ownership entities. Both stay unset
	// during ingestion; classification happens elsewhere.
	CategoryID *int64 `json:"category_id"`
	AccountID  *int64 `json:"account_id"`
}
