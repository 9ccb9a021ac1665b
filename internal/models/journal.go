package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the persistence model for the journal_entries table.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	CompanyID        string          `db:"company_id"`
	FiscalYearID     string          `db:"fiscal_year_id"`
	JournalType      string          `db:"journal_type"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	TotalVAT         decimal.Decimal `db:"total_vat"`
	Status           string          `db:"status"`
	Source           string          `db:"source"`
	ValidationStatus *string         `db:"validation_status"`
	RejectionReason  *string         `db:"rejection_reason"`
	PostedBy         *string         `db:"posted_by"`
	PostedAt         *time.Time      `db:"posted_at"`
	ValidatedBy      *string         `db:"validated_by"`
	ValidatedAt      *time.Time      `db:"validated_at"`
	CreatedAt        time.Time       `db:"created_at"`
	CreatedBy        string          `db:"created_by"`
	LastUpdatedAt    time.Time       `db:"last_updated_at"`
	LastUpdatedBy    string          `db:"last_updated_by"`
}
