package mapping

import (
	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/finbooks/ledger_engine/internal/models"
)

// ToModelEntry converts a domain journal entry to its persistence form.
func ToModelEntry(e domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		FiscalYearID:  e.FiscalYearID,
		JournalType:   string(e.JournalType),
		EntryDate:     e.EntryDate,
		Description:   e.Description,
		Reference:     e.Reference,
		TotalDebit:    e.TotalDebit,
		TotalCredit:   e.TotalCredit,
		TotalVAT:      e.TotalVAT,
		Status:        string(e.Status),
		Source:        string(e.Source),
		PostedBy:      e.PostedBy,
		PostedAt:      e.PostedAt,
		ValidatedBy:   e.ValidatedBy,
		ValidatedAt:   e.ValidatedAt,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
	if e.ValidationStatus != "" {
		vs := string(e.ValidationStatus)
		m.ValidationStatus = &vs
	}
	if e.RejectionReason != "" {
		rr := e.RejectionReason
		m.RejectionReason = &rr
	}
	return m
}

// ToDomainEntry converts a persistence journal entry to its domain form.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	e := domain.JournalEntry{
		EntryID:      m.EntryID,
		CompanyID:    m.CompanyID,
		FiscalYearID: m.FiscalYearID,
		JournalType:  domain.JournalType(m.JournalType),
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		Reference:    m.Reference,
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		TotalVAT:     m.TotalVAT,
		Status:       domain.EntryStatus(m.Status),
		Source:       domain.EntrySource(m.Source),
		PostedBy:     m.PostedBy,
		PostedAt:     m.PostedAt,
		ValidatedBy:  m.ValidatedBy,
		ValidatedAt:  m.ValidatedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ValidationStatus != nil {
		e.ValidationStatus = domain.ValidationStatus(*m.ValidationStatus)
	}
	if m.RejectionReason != nil {
		e.RejectionReason = *m.RejectionReason
	}
	return e
}

// ToModelLine converts a domain journal line to its persistence form.
func ToModelLine(l domain.JournalLine) models.JournalLine {
	m := models.JournalLine{
		LineID:        l.LineID,
		EntryID:       l.EntryID,
		AccountID:     l.AccountID,
		Debit:         l.Debit,
		Credit:        l.Credit,
		Description:   l.Description,
		VATAmount:     l.VATAmount,
		Metadata:      l.Metadata,
		CreatedAt:     l.CreatedAt,
		CreatedBy:     l.CreatedBy,
		LastUpdatedAt: l.LastUpdatedAt,
		LastUpdatedBy: l.LastUpdatedBy,
	}
	if l.VATCode != "" {
		vc := l.VATCode
		m.VATCode = &vc
	}
	return m
}

// ToDomainLine converts a persistence journal line to its domain form.
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	l := domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		VATAmount:   m.VATAmount,
		Metadata:    m.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.VATCode != nil {
		l.VATCode = *m.VATCode
	}
	return l
}

// ToDomainLineSlice converts a slice of persistence lines.
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		lines[i] = ToDomainLine(m)
	}
	return lines
}
