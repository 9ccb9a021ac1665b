package domain

// AccountNature defines the fundamental accounting nature of an account.
type AccountNature string

const (
	Asset     AccountNature = "ASSET"
	Liability AccountNature = "LIABILITY"
	Equity    AccountNature = "EQUITY"
	Revenue   AccountNature = "REVENUE"
	Expense   AccountNature = "EXPENSE"
)

// IsDebitNormal reports whether an account of this nature increases on the
// debit side. Assets and expenses are debit-normal; liabilities, equity and
// revenue are credit-normal.
func (n AccountNature) IsDebitNormal() bool {
	return n == Asset || n == Expense
}

// Account represents an account as supplied by the account directory.
// The ledger engine never creates or mutates accounts.
type Account struct {
	AccountID string        `json:"accountID"` // Primary key (UUID)
	CompanyID string        `json:"companyID"`
	Code      string        `json:"code"` // Hierarchical classification prefix
	Name      string        `json:"name"`
	Nature    AccountNature `json:"nature"`
	IsActive  bool          `json:"isActive"`
	AuditFields
}
