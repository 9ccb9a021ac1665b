package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the result of a balance query over posted entries.
// Balance follows the sign convention for the account's nature: debit minus
// credit for debit-normal accounts, credit minus debit otherwise.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Nature    AccountNature   `json:"nature"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// Movement is one ledger line surfaced with its entry header, as returned by
// the account movement and general ledger queries.
type Movement struct {
	EntryID         string          `json:"entryID"`
	EntryDate       time.Time       `json:"entryDate"`
	JournalType     JournalType     `json:"journalType"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description"`
	Status          EntryStatus     `json:"status"`
	LineID          string          `json:"lineID"`
	AccountID       string          `json:"accountID"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	LineDescription string          `json:"lineDescription,omitempty"`
}

// AccountActivity is the per-account debit/credit aggregate the ledger store
// produces for trial balance computation.
type AccountActivity struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalanceEntry is one account row of a trial balance worksheet.
type TrialBalanceEntry struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Nature    AccountNature   `json:"nature"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// TrialBalanceTotals cross-checks a trial balance: total debits, total
// credits, and the sum of absolute balances across the included rows.
type TrialBalanceTotals struct {
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalance is the full worksheet, sorted by account code ascending.
type TrialBalance struct {
	Entries []TrialBalanceEntry `json:"entries"`
	Totals  TrialBalanceTotals  `json:"totals"`
}

// GeneralLedgerAccount expands one trial balance row into its chronological
// movement detail.
type GeneralLedgerAccount struct {
	TrialBalanceEntry
	Movements []Movement `json:"movements"`
}

// GeneralLedger is the trial balance expanded with per-account movements.
type GeneralLedger struct {
	Accounts []GeneralLedgerAccount `json:"accounts"`
	Totals   TrialBalanceTotals     `json:"totals"`
}

// SearchMatch is one line matched by a free-text ledger search.
type SearchMatch struct {
	Movement
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
}
