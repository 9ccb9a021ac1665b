package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryFilter narrows a journal entry listing. Nil/zero fields are ignored.
type EntryFilter struct {
	CompanyID    string
	FiscalYearID string
	JournalType  *JournalType
	Status       *EntryStatus
	Source       *EntrySource
	DateFrom     *time.Time // Inclusive
	DateTo       *time.Time // Inclusive
	Search       string     // Free text over description
}

// MovementSortField selects the ordering column for account movements.
type MovementSortField string

const (
	SortByDate      MovementSortField = "date"
	SortByReference MovementSortField = "reference"
	SortByAmount    MovementSortField = "amount" // debit + credit
)

// MovementFilter narrows an account movement listing.
type MovementFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	JournalType *JournalType
	Status      *EntryStatus // Defaults to POSTED when nil
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	SortBy      MovementSortField // Defaults to SortByDate
	SortAsc     bool              // Defaults to descending
}

// TrialBalanceFilter scopes a trial balance computation.
type TrialBalanceFilter struct {
	CompanyID          string
	FiscalYearID       string
	AccountNature      *AccountNature
	StartDate          *time.Time
	EndDate            *time.Time
	IncludeZeroBalance bool
}

// SearchFilter narrows a free-text ledger search.
type SearchFilter struct {
	CompanyID     string
	DateFrom      *time.Time
	DateTo        *time.Time
	AccountNature *AccountNature
	JournalType   *JournalType
	Status        *EntryStatus // Defaults to POSTED when nil
}
