package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusPending   EntryStatus = "PENDING"
	StatusApproved  EntryStatus = "APPROVED"
	StatusPosted    EntryStatus = "POSTED"
	StatusRejected  EntryStatus = "REJECTED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// JournalType classifies the book a journal entry belongs to.
type JournalType string

const (
	JournalGeneral   JournalType = "GENERAL"
	JournalSales     JournalType = "SALES"
	JournalPurchases JournalType = "PURCHASES"
	JournalBank      JournalType = "BANK"
	JournalCash      JournalType = "CASH"
)

// EntrySource records how a journal entry came into existence.
type EntrySource string

const (
	SourceManual EntrySource = "MANUAL"
	SourceAgent  EntrySource = "AGENT"
	SourceImport EntrySource = "IMPORT"
)

// ValidationStatus is the human-review state of agent-sourced entries.
type ValidationStatus string

const (
	ValidationPending   ValidationStatus = "PENDING"
	ValidationValidated ValidationStatus = "VALIDATED"
	ValidationRejected  ValidationStatus = "REJECTED"
)

// statusTransitions is the single source of truth for the entry state
// machine. A transition absent from this table is invalid.
var statusTransitions = map[EntryStatus][]EntryStatus{
	StatusDraft:     {StatusPending, StatusCancelled},
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusPosted, StatusCancelled},
	StatusPosted:    {StatusCancelled},
	StatusRejected:  {StatusDraft},
	StatusCancelled: {},
}

// CanTransition reports whether the state machine permits moving from one
// status to another.
func CanTransition(from, to EntryStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the set of statuses reachable from the given one.
func AllowedTransitions(from EntryStatus) []EntryStatus {
	allowed := statusTransitions[from]
	out := make([]EntryStatus, len(allowed))
	copy(out, allowed)
	return out
}

// IsMutable reports whether an entry in this status may have its header or
// lines edited. Entries are only editable while in DRAFT or PENDING.
func (s EntryStatus) IsMutable() bool {
	return s == StatusDraft || s == StatusPending
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Header totals are derived from the lines and kept equal to
// their sums at all times.
type JournalEntry struct {
	EntryID          string           `json:"entryID"` // Primary key (UUID)
	CompanyID        string           `json:"companyID"`
	FiscalYearID     string           `json:"fiscalYearID"`
	JournalType      JournalType      `json:"journalType"`
	EntryDate        time.Time        `json:"entryDate"`
	Description      string           `json:"description"`
	Reference        string           `json:"reference"`
	TotalDebit       decimal.Decimal  `json:"totalDebit"`
	TotalCredit      decimal.Decimal  `json:"totalCredit"`
	TotalVAT         decimal.Decimal  `json:"totalVAT"`
	Status           EntryStatus      `json:"status"`
	Source           EntrySource      `json:"source"`
	ValidationStatus ValidationStatus `json:"validationStatus,omitempty"` // Meaningful only for SourceAgent
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	PostedBy         *string          `json:"postedBy,omitempty"`
	PostedAt         *time.Time       `json:"postedAt,omitempty"`
	ValidatedBy      *string          `json:"validatedBy,omitempty"`
	ValidatedAt      *time.Time       `json:"validatedAt,omitempty"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// StatusChange is the payload handed to the notification hook when an entry
// reaches POSTED or CANCELLED.
type StatusChange struct {
	EntryID   string      `json:"entryID"`
	OldStatus EntryStatus `json:"oldStatus"`
	NewStatus EntryStatus `json:"newStatus"`
	ChangedAt time.Time   `json:"changedAt"`
}
