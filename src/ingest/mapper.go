package ingest

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/kasboek/backend/src/models"
	"github.com/username/kasboek/backend/src/parsers/tabular"
	"github.com/username/kasboek/backend/src/security/validation"
)

// normalizeDecimalString prepares a raw amount cell for decimal parsing.
// Bank exports quote values and use a comma as the decimal separator.
func normalizeDecimalString(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, "\"")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return cleaned
}

// optText returns the cell text, or nil when the cell is missing. Each field
// coalesces independently; one absent cell never affects its neighbors.
func optText(c tabular.Cell) *string {
	if c.Missing() {
		return nil
	}
	s := c.String()
	return &s
}

// optFreeText is optText plus sanitization for cells that carry freeform
// text straight from the source file.
func optFreeText(c tabular.Cell) *string {
	if c.Missing() {
		return nil
	}
	s := validation.SanitizeText(c.String())
	return &s
}

// mapRow converts one validated table row into a Transaction. rowNum is the
// 1-based data row number used in error reporting.
func mapRow(row tabular.Row, rowNum int) (*models.Transaction, error) {
	accountCell := row.Cell(colAccount)
	if accountCell.Missing() {
		return nil, &RowError{Row: rowNum, Column: colAccount}
	}

	amountCell := row.Cell(colAmount)
	if amountCell.Missing() {
		return nil, &RowError{Row: rowNum, Column: colAmount}
	}
	amount, err := decimal.NewFromString(normalizeDecimalString(amountCell.String()))
	if err != nil {
		return nil, &RowError{Row: rowNum, Column: colAmount, Value: amountCell.String(), Err: err}
	}

	return &models.Transaction{
		Account:             accountCell.String(),
		BookingDate:         optText(row.Cell(colBookingDate)),
		StatementNumber:     optText(row.Cell(colStatementNumber)),
		TransactionNumber:   optText(row.Cell(colTransactionNumber)),
		CounterpartyAccount: optText(row.Cell(colCounterpartyAccount)),
		CounterpartyName:    optFreeText(row.Cell(colCounterpartyName)),
		StreetNumber:        optFreeText(row.Cell(colStreetNumber)),
		PostalCodeCity:      optFreeText(row.Cell(colPostalCodeCity)),
		TransactionType:     optFreeText(row.Cell(colTransactionType)),
		ValueDate:           optText(row.Cell(colValueDate)),
		Amount:              amount,
		Currency:            optText(row.Cell(colCurrency)),
		BIC:                 optText(row.Cell(colBIC)),
		CountryCode:         optText(row.Cell(colCountryCode)),
		Notes:               optFreeText(row.Cell(colNotes)),
	}, nil
}
