package ingest

import "github.com/username/kasboek/backend/src/parsers/tabular"

// Column names of the bank statement export. The header check is
// case-sensitive and order-insensitive.
const (
	colAccount             = "Rekening"
	colBookingDate         = "Boekingsdatum"
	colStatementNumber     = "Rekeninguittrekselnummer"
	colTransactionNumber   = "Transactienummer"
	colCounterpartyAccount = "Rekening tegenpartij"
	colCounterpartyName    = "Naam tegenpartij bevat"
	colStreetNumber        = "Straat en nummer"
	colPostalCodeCity      = "Postcode en plaats"
	colTransactionType     = "Transactie"
	colValueDate           = "Valutadatum"
	colAmount              = "Bedrag"
	colCurrency            = "Devies"
	colBIC                 = "BIC"
	colCountryCode         = "Landcode"
	colNotes               = "Mededelingen"
)

// RequiredColumns lists every column an upload must carry before any row is
// processed.
var RequiredColumns = []string{
	colAccount,
	colBookingDate,
	colStatementNumber,
	colTransactionNumber,
	colCounterpartyAccount,
	colCounterpartyName,
	colStreetNumber,
	colPostalCodeCity,
	colTransactionType,
	colValueDate,
	colAmount,
	colCurrency,
	colBIC,
	colCountryCode,
	colNotes,
}

// MissingColumns returns the required columns absent from the table header,
// in RequiredColumns order. An empty result means the header is valid.
func MissingColumns(t *tabular.Table) []string {
	var missing []string
	for _, name := range RequiredColumns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
