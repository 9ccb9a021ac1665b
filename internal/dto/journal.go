package dto

import (
	"time"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineInput is one line of a create/update request.
type LineInput struct {
	AccountID   string            `json:"accountID" binding:"required"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Description string            `json:"description"`
	VATCode     string            `json:"vatCode"`
	VATAmount   decimal.Decimal   `json:"vatAmount"`
	Metadata    map[string]string `json:"metadata"`
}

// CreateEntryRequest creates a journal entry in DRAFT.
type CreateEntryRequest struct {
	CompanyID    string      `json:"companyID" binding:"required"`
	FiscalYearID string      `json:"fiscalYearID" binding:"required"`
	JournalType  string      `json:"journalType" binding:"required,oneof=GENERAL SALES PURCHASES BANK CASH"`
	Date         time.Time   `json:"date" binding:"required"`
	Description  string      `json:"description" binding:"required"`
	Reference    string      `json:"reference"`
	Source       string      `json:"source" binding:"omitempty,oneof=MANUAL AGENT"`
	Lines        []LineInput `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest patches a DRAFT/PENDING entry. Nil fields are left
// untouched; a non-nil Lines slice replaces the line set wholesale.
type UpdateEntryRequest struct {
	Date        *time.Time   `json:"date"`
	JournalType *string      `json:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASES BANK CASH"`
	Description *string      `json:"description"`
	Reference   *string      `json:"reference"`
	Lines       *[]LineInput `json:"lines" binding:"omitempty,min=1,dive"`
}

// UpdateStatusRequest moves an entry through the lifecycle state machine.
type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=DRAFT PENDING APPROVED POSTED REJECTED CANCELLED"`
	RejectionReason string `json:"rejectionReason"`
}

// ValidateEntryRequest records the human decision on an agent-sourced entry.
type ValidateEntryRequest struct {
	Decision string `json:"decision" binding:"required,oneof=VALIDATED REJECTED"`
	Reason   string `json:"reason"`
}

// ExternalLineInput is one line of an externally reported transaction.
// Accounts are addressed by classification code, not id.
type ExternalLineInput struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// ExternalEntryRequest books a transaction reported by another subsystem
// directly into POSTED with source IMPORT.
type ExternalEntryRequest struct {
	CompanyID    string              `json:"companyID" binding:"required"`
	FiscalYearID string              `json:"fiscalYearID" binding:"required"`
	JournalType  string              `json:"journalType" binding:"required,oneof=GENERAL SALES PURCHASES BANK CASH"`
	Date         time.Time           `json:"date" binding:"required"`
	Description  string              `json:"description" binding:"required"`
	Reference    string              `json:"reference"`
	SourceSystem string              `json:"sourceSystem" binding:"required"`
	Lines        []ExternalLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ListEntriesParams carries the query-string filters of the entry listing.
type ListEntriesParams struct {
	CompanyID    string `form:"companyID"`
	FiscalYearID string `form:"fiscalYearID"`
	JournalType  string `form:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASES BANK CASH"`
	Status       string `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED POSTED REJECTED CANCELLED"`
	Source       string `form:"source" binding:"omitempty,oneof=MANUAL AGENT IMPORT"`
	DateFrom     string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo       string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Search       string `form:"search"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}

// LineResponse is the API shape of a journal line.
type LineResponse struct {
	LineID      string            `json:"lineID"`
	AccountID   string            `json:"accountID"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Description string            `json:"description,omitempty"`
	VATCode     string            `json:"vatCode,omitempty"`
	VATAmount   decimal.Decimal   `json:"vatAmount"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// EntryResponse is the API shape of a journal entry.
type EntryResponse struct {
	EntryID          string          `json:"entryID"`
	CompanyID        string          `json:"companyID"`
	FiscalYearID     string          `json:"fiscalYearID"`
	JournalType      string          `json:"journalType"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference,omitempty"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalVAT         decimal.Decimal `json:"totalVAT"`
	Status           string          `json:"status"`
	Source           string          `json:"source"`
	ValidationStatus string          `json:"validationStatus,omitempty"`
	RejectionReason  string          `json:"rejectionReason,omitempty"`
	PostedBy         *string         `json:"postedBy,omitempty"`
	PostedAt         *time.Time      `json:"postedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	Lines            []LineResponse  `json:"lines,omitempty"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	PageInfo
}

// ToLineResponse converts a domain line to its API shape.
func ToLineResponse(l domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		VATCode:     l.VATCode,
		VATAmount:   l.VATAmount,
		Metadata:    l.Metadata,
	}
}

// ToEntryResponse converts a domain entry (with lines, if loaded) to its API
// shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		CompanyID:        e.CompanyID,
		FiscalYearID:     e.FiscalYearID,
		JournalType:      string(e.JournalType),
		Date:             e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		TotalVAT:         e.TotalVAT,
		Status:           string(e.Status),
		Source:           string(e.Source),
		ValidationStatus: string(e.ValidationStatus),
		RejectionReason:  e.RejectionReason,
		PostedBy:         e.PostedBy,
		PostedAt:         e.PostedAt,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToLineResponse(l)
		}
	}
	return resp
}
