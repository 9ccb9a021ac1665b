package domain

import "github.com/shopspring/decimal"

// JournalLine is a single line item within a journal entry, affecting one
// account. Lines are owned by their entry: they are created and deleted with
// it and replaced wholesale on update.
type JournalLine struct {
	LineID      string            `json:"lineID"`  // Primary key (UUID)
	EntryID     string            `json:"entryID"` // FK -> JournalEntry.entryID
	AccountID   string            `json:"accountID"`
	Debit       decimal.Decimal   `json:"debit"`  // >= 0
	Credit      decimal.Decimal   `json:"credit"` // >= 0
	Description string            `json:"description"`
	VATCode     string            `json:"vatCode,omitempty"`
	VATAmount   decimal.Decimal   `json:"vatAmount"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	AuditFields
}

// Amount is the line's magnitude: debit plus credit. At most one of the two
// is non-zero on a well-formed line, so this is the movement amount.
func (l JournalLine) Amount() decimal.Decimal {
	return l.Debit.Add(l.Credit)
}
