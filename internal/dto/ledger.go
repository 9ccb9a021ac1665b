package dto

import (
	"time"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceParams carries the query-string inputs of the balance query.
type BalanceParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// MovementsParams carries the query-string inputs of the movements query.
type MovementsParams struct {
	DateFrom    string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	JournalType string `form:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASES BANK CASH"`
	Status      string `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED POSTED REJECTED CANCELLED"`
	MinAmount   string `form:"minAmount" binding:"omitempty,numeric"`
	MaxAmount   string `form:"maxAmount" binding:"omitempty,numeric"`
	SortBy      string `form:"sortBy" binding:"omitempty,oneof=date reference amount"`
	SortOrder   string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// TrialBalanceParams carries the query-string inputs of the trial balance.
type TrialBalanceParams struct {
	CompanyID          string `form:"companyID" binding:"required"`
	FiscalYearID       string `form:"fiscalYearID"`
	AccountType        string `form:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	StartDate          string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate            string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	IncludeZeroBalance bool   `form:"includeZeroBalance"`
}

// SearchParams carries the query-string inputs of the ledger search.
type SearchParams struct {
	Query       string `form:"q"`
	CompanyID   string `form:"companyID"`
	DateFrom    string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	AccountType string `form:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	JournalType string `form:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASES BANK CASH"`
	Status      string `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED POSTED REJECTED CANCELLED"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// BalanceResponse is the API shape of an account balance.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Nature    string          `json:"nature"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// MovementResponse is the API shape of one ledger movement row.
type MovementResponse struct {
	EntryID         string          `json:"entryID"`
	Date            time.Time       `json:"date"`
	JournalType     string          `json:"journalType"`
	Reference       string          `json:"reference,omitempty"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	LineID          string          `json:"lineID"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	LineDescription string          `json:"lineDescription,omitempty"`
}

// MovementsResponse is one page of account movements.
type MovementsResponse struct {
	AccountID string             `json:"accountID"`
	Movements []MovementResponse `json:"movements"`
	PageInfo
}

// SearchMatchResponse is one line matched by a free-text search.
type SearchMatchResponse struct {
	MovementResponse
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
}

// SearchResponse is one page of search matches.
type SearchResponse struct {
	Query   string                `json:"query"`
	Matches []SearchMatchResponse `json:"matches"`
	PageInfo
}

// ToBalanceResponse converts a domain balance to its API shape.
func ToBalanceResponse(b *domain.AccountBalance, asOf *time.Time) BalanceResponse {
	return BalanceResponse{
		AccountID: b.AccountID,
		Code:      b.Code,
		Name:      b.Name,
		Nature:    string(b.Nature),
		AsOf:      asOf,
		Debit:     b.Debit,
		Credit:    b.Credit,
		Balance:   b.Balance,
	}
}

// ToMovementResponse converts a domain movement to its API shape.
func ToMovementResponse(m domain.Movement) MovementResponse {
	return MovementResponse{
		EntryID:         m.EntryID,
		Date:            m.EntryDate,
		JournalType:     string(m.JournalType),
		Reference:       m.Reference,
		Description:     m.Description,
		Status:          string(m.Status),
		LineID:          m.LineID,
		Debit:           m.Debit,
		Credit:          m.Credit,
		LineDescription: m.LineDescription,
	}
}

// ToSearchMatchResponse converts a domain search match to its API shape.
func ToSearchMatchResponse(m domain.SearchMatch) SearchMatchResponse {
	return SearchMatchResponse{
		MovementResponse: ToMovementResponse(m.Movement),
		AccountID:        m.AccountID,
		AccountCode:      m.AccountCode,
		AccountName:      m.AccountName,
	}
}
