package mapping

import (
	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/finbooks/ledger_engine/internal/models"
)

// ToDomainAccount converts a persistence account to its domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		CompanyID: m.CompanyID,
		Code:      m.Code,
		Name:      m.Name,
		Nature:    domain.AccountNature(m.Nature),
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.UpdatedAt,
		},
	}
}
