package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is the persistence model for the journal_lines table.
type JournalLine struct {
	LineID        string            `db:"line_id"`
	EntryID       string            `db:"entry_id"`
	AccountID     string            `db:"account_id"`
	Debit         decimal.Decimal   `db:"debit"`
	Credit        decimal.Decimal   `db:"credit"`
	Description   string            `db:"description"`
	VATCode       *string           `db:"vat_code"`
	VATAmount     decimal.Decimal   `db:"vat_amount"`
	Metadata      map[string]string `db:"metadata"`
	CreatedAt     time.Time         `db:"created_at"`
	CreatedBy     string            `db:"created_by"`
	LastUpdatedAt time.Time         `db:"last_updated_at"`
	LastUpdatedBy string            `db:"last_updated_by"`
}
