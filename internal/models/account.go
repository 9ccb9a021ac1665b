package models

import "time"

// Account is the persistence model for directory accounts. The ledger engine
// reads these rows but never writes them.
type Account struct {
	AccountID string    `db:"account_id"`
	CompanyID string    `db:"company_id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	Nature    string    `db:"nature"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
