package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/ledger_engine/internal/apperrors"
	"github.com/finbooks/ledger_engine/internal/core/domain"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/core/services"
	"github.com/finbooks/ledger_engine/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit, offset int) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryState(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.EntryStatus) error {
	args := m.Called(ctx, entry, expectedStatus)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock AccountDirectory ---
type MockAccountDirectory struct {
	mock.Mock
}

func (m *MockAccountDirectory) ResolveByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountDirectory) ResolveByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountDirectory) ListAccounts(ctx context.Context, companyID string, nature *domain.AccountNature) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, nature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock EntryNotifier ---
type MockEntryNotifier struct {
	mock.Mock
}

func (m *MockEntryNotifier) NotifyStatusChange(ctx context.Context, change domain.StatusChange) {
	m.Called(ctx, change)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockJournalRepository
	mockDirectory *MockAccountDirectory
	mockNotifier  *MockEntryNotifier
	service       portssvc.JournalService
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.mockDirectory = new(MockAccountDirectory)
	suite.mockNotifier = new(MockEntryNotifier)
	suite.service = services.NewJournalService(suite.mockRepo, suite.mockDirectory, suite.mockNotifier)
}

func activeAccount(accountID string) *domain.Account {
	return &domain.Account{
		AccountID: accountID,
		CompanyID: "comp-1",
		Code:      "512",
		Name:      "Bank",
		Nature:    domain.Asset,
		IsActive:  true,
	}
}

func balancedCreateRequest(debitAccount, creditAccount string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		CompanyID:    "comp-1",
		FiscalYearID: "fy-2026",
		JournalType:  "GENERAL",
		Date:         time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Office supplies",
		Lines: []dto.LineInput{
			{AccountID: debitAccount, Debit: decimal.NewFromInt(100)},
			{AccountID: creditAccount, Credit: decimal.NewFromInt(100)},
		},
	}
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()
	req := balancedCreateRequest(debitAccount, creditAccount)

	suite.mockDirectory.On("ResolveByID", ctx, debitAccount).Return(activeAccount(debitAccount), nil).Once()
	suite.mockDirectory.On("ResolveByID", ctx, creditAccount).Return(activeAccount(creditAccount), nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft &&
			e.Source == domain.SourceManual &&
			e.TotalDebit.Equal(decimal.NewFromInt(100)) &&
			e.TotalCredit.Equal(decimal.NewFromInt(100)) &&
			e.CreatedBy == actorID
	}), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.StatusDraft, entry.Status)
	suite.Equal(domain.SourceManual, entry.Source)
	suite.Len(entry.Lines, 2)
	suite.NotEmpty(entry.EntryID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockDirectory.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := balancedCreateRequest(uuid.NewString(), uuid.NewString())
	req.Lines[1].Credit = decimal.NewFromInt(90)

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	req := balancedCreateRequest(uuid.NewString(), uuid.NewString())
	req.Lines[0].Credit = decimal.NewFromInt(100)
	req.Lines[1].Debit = decimal.NewFromInt(100)

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountNotFound() {
	ctx := context.Background()
	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()
	req := balancedCreateRequest(debitAccount, creditAccount)

	suite.mockDirectory.On("ResolveByID", ctx, debitAccount).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()
	req := balancedCreateRequest(debitAccount, creditAccount)

	inactive := activeAccount(debitAccount)
	inactive.IsActive = false
	suite.mockDirectory.On("ResolveByID", ctx, debitAccount).Return(inactive, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AgentSourceStartsPendingValidation() {
	ctx := context.Background()
	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()
	req := balancedCreateRequest(debitAccount, creditAccount)
	req.Source = "AGENT"

	suite.mockDirectory.On("ResolveByID", ctx, debitAccount).Return(activeAccount(debitAccount), nil).Once()
	suite.mockDirectory.On("ResolveByID", ctx, creditAccount).Return(activeAccount(creditAccount), nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Source == domain.SourceAgent && e.ValidationStatus == domain.ValidationPending
	}), mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ValidationPending, entry.ValidationStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- ListEntries ---

func (suite *JournalServiceTestSuite) TestListEntries_PageInfo() {
	ctx := context.Background()
	filter := domain.EntryFilter{CompanyID: "comp-1"}
	stored := []domain.JournalEntry{{EntryID: uuid.NewString()}, {EntryID: uuid.NewString()}}

	suite.mockRepo.On("ListEntries", ctx, filter, 10, 10).Return(stored, int64(25), nil).Once()

	entries, pageInfo, err := suite.service.ListEntries(ctx, filter, 2, 10)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.Equal(2, pageInfo.Page)
	suite.Equal(10, pageInfo.PageSize)
	suite.Equal(int64(25), pageInfo.TotalItems)
	suite.Equal(3, pageInfo.TotalPages)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- GetEntryByID ---

func (suite *JournalServiceTestSuite) TestGetEntryByID_LoadsLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}
	lines := []domain.JournalLine{{LineID: uuid.NewString(), EntryID: entryID}}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateStatus ---

func (suite *JournalServiceTestSuite) TestUpdateStatus_DraftToPending() {
	ctx := context.Background()
	entryID := uuid.NewString()
	actorID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateEntryState", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPending && e.LastUpdatedBy == actorID
	}), domain.StatusDraft).Return(nil).Once()

	entry, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusPending, actorID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyStatusChange", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateStatus_InvalidTransition() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	entry, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusDraft, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntryState", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateStatus_CancelledIsTerminal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusCancelled}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	_, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusDraft, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *JournalServiceTestSuite) TestUpdateStatus_RejectedRequiresReason() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPending}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	entry, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusRejected, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestUpdateStatus_PostedStampsAndNotifies() {
	ctx := context.Background()
	entryID := uuid.NewString()
	actorID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusApproved}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateEntryState", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPosted && e.PostedBy != nil && *e.PostedBy == actorID && e.PostedAt != nil
	}), domain.StatusApproved).Return(nil).Once()
	suite.mockNotifier.On("NotifyStatusChange", ctx, mock.MatchedBy(func(c domain.StatusChange) bool {
		return c.EntryID == entryID && c.OldStatus == domain.StatusApproved && c.NewStatus == domain.StatusPosted
	})).Once()

	entry, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusPosted, actorID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateStatus_RejectedToDraftClearsReason() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusRejected, RejectionReason: "duplicated invoice"}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateEntryState", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft && e.RejectionReason == ""
	}), domain.StatusRejected).Return(nil).Once()

	entry, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusDraft, uuid.NewString(), "")

	suite.Require().NoError(err)
	suite.Empty(entry.RejectionReason)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateStatus_ConflictFromRepo() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateEntryState", ctx, mock.Anything, domain.StatusDraft).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.UpdateStatus(ctx, entryID, domain.StatusPending, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyStatusChange", mock.Anything, mock.Anything)
}

// --- UpdateEntry ---

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedIsImmutable() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}
	newDescription := "corrected description"

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateEntryRequest{Description: &newDescription}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntryWithLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ReplacesLinesAndTotals() {
	ctx := context.Background()
	entryID := uuid.NewString()
	actorID := uuid.NewString()
	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()
	stored := &domain.JournalEntry{
		EntryID:     entryID,
		Status:      domain.StatusDraft,
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
	}
	newLines := []dto.LineInput{
		{AccountID: debitAccount, Debit: decimal.NewFromInt(250)},
		{AccountID: creditAccount, Credit: decimal.NewFromInt(250)},
	}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockDirectory.On("ResolveByID", ctx, debitAccount).Return(activeAccount(debitAccount), nil).Once()
	suite.mockDirectory.On("ResolveByID", ctx, creditAccount).Return(activeAccount(creditAccount), nil).Once()
	suite.mockRepo.On("UpdateEntryWithLines", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.TotalDebit.Equal(decimal.NewFromInt(250)) && e.TotalCredit.Equal(decimal.NewFromInt(250))
	}), mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 2
	})).Return(nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateEntryRequest{Lines: &newLines}, actorID)

	suite.Require().NoError(err)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(250)))
	suite.Len(entry.Lines, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_UnbalancedLinesRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}
	newLines := []dto.LineInput{
		{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(250)},
		{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(200)},
	}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateEntryRequest{Lines: &newLines}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntryWithLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ConflictFromRepo() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}
	newDescription := "corrected description"

	// The entry was still DRAFT when read, but got posted before the update
	// transaction took the row lock.
	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()
	suite.mockRepo.On("UpdateEntryWithLines", ctx, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: entry %s is POSTED and can no longer be edited", apperrors.ErrConflict, entryID)).Once()

	entry, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateEntryRequest{Description: &newDescription}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- RemoveEntry ---

func (suite *JournalServiceTestSuite) TestRemoveEntry_Draft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.RemoveEntry(ctx, entryID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRemoveEntry_NonDraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPending}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	err := suite.service.RemoveEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestRemoveEntry_ConflictFromRepo() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}

	// DRAFT on the stale read, posted by the time the delete locked the row.
	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockRepo.On("DeleteEntry", ctx, entryID).
		Return(fmt.Errorf("%w: entry %s is POSTED, only DRAFT entries can be deleted", apperrors.ErrConflict, entryID)).Once()

	err := suite.service.RemoveEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- ValidateEntry ---

func agentEntry(entryID string) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:          entryID,
		Status:           domain.StatusDraft,
		Source:           domain.SourceAgent,
		ValidationStatus: domain.ValidationPending,
	}
}

func (suite *JournalServiceTestSuite) TestValidateEntry_ValidatedAdvancesToPending() {
	ctx := context.Background()
	entryID := uuid.NewString()
	actorID := uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(agentEntry(entryID), nil).Once()
	suite.mockRepo.On("UpdateEntryState", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPending &&
			e.ValidationStatus == domain.ValidationValidated &&
			e.ValidatedBy != nil && *e.ValidatedBy == actorID
	}), domain.StatusDraft).Return(nil).Once()

	entry, err := suite.service.ValidateEntry(ctx, entryID, domain.ValidationValidated, actorID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.Equal(domain.ValidationValidated, entry.ValidationStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestValidateEntry_RejectedStaysDraftWithReason() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reason := "wrong expense account"

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(agentEntry(entryID), nil).Once()
	suite.mockRepo.On("UpdateEntryState", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft &&
			e.ValidationStatus == domain.ValidationRejected &&
			e.RejectionReason == reason
	}), domain.StatusDraft).Return(nil).Once()

	entry, err := suite.service.ValidateEntry(ctx, entryID, domain.ValidationRejected, uuid.NewString(), reason)

	suite.Require().NoError(err)
	suite.Equal(reason, entry.RejectionReason)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestValidateEntry_RejectedRequiresReason() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(agentEntry(entryID), nil).Once()

	_, err := suite.service.ValidateEntry(ctx, entryID, domain.ValidationRejected, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestValidateEntry_ManualEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft, Source: domain.SourceManual}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	_, err := suite.service.ValidateEntry(ctx, entryID, domain.ValidationValidated, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

func (suite *JournalServiceTestSuite) TestValidateEntry_AlreadyReviewed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := agentEntry(entryID)
	stored.ValidationStatus = domain.ValidationValidated

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	_, err := suite.service.ValidateEntry(ctx, entryID, domain.ValidationValidated, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

// --- IngestExternalEntry ---

func externalRequest() dto.ExternalEntryRequest {
	return dto.ExternalEntryRequest{
		CompanyID:    "comp-1",
		FiscalYearID: "fy-2026",
		JournalType:  "BANK",
		Date:         time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Card settlement batch 42",
		SourceSystem: "payments-gateway",
		Lines: []dto.ExternalLineInput{
			{AccountCode: "512", Debit: decimal.RequireFromString("99.999")},
			{AccountCode: "706", Credit: decimal.RequireFromString("100.000")},
		},
	}
}

func (suite *JournalServiceTestSuite) TestIngestExternalEntry_BooksPostedWithinTolerance() {
	ctx := context.Background()
	req := externalRequest()
	bank := activeAccount(uuid.NewString())
	revenue := activeAccount(uuid.NewString())
	revenue.Code = "706"
	revenue.Nature = domain.Revenue

	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "512").Return(bank, nil).Once()
	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "706").Return(revenue, nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPosted &&
			e.Source == domain.SourceImport &&
			e.PostedBy != nil && *e.PostedBy == "payments-gateway"
	}), mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("NotifyStatusChange", ctx, mock.MatchedBy(func(c domain.StatusChange) bool {
		return c.NewStatus == domain.StatusPosted
	})).Once()

	entry, err := suite.service.IngestExternalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.Equal(domain.SourceImport, entry.Source)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestIngestExternalEntry_BeyondToleranceRejected() {
	ctx := context.Background()
	req := externalRequest()
	req.Lines[0].Debit = decimal.RequireFromString("99.99")
	bank := activeAccount(uuid.NewString())
	revenue := activeAccount(uuid.NewString())

	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "512").Return(bank, nil).Once()
	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "706").Return(revenue, nil).Once()

	entry, err := suite.service.IngestExternalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestIngestExternalEntry_UnknownCode() {
	ctx := context.Background()
	req := externalRequest()

	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "512").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.IngestExternalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *JournalServiceTestSuite) TestIngestExternalEntry_SaveError() {
	ctx := context.Background()
	req := externalRequest()
	expectedErr := assert.AnError

	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "512").Return(activeAccount(uuid.NewString()), nil).Once()
	suite.mockDirectory.On("ResolveByCode", ctx, "comp-1", "706").Return(activeAccount(uuid.NewString()), nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(expectedErr).Once()

	entry, err := suite.service.IngestExternalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, expectedErr)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyStatusChange", mock.Anything, mock.Anything)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
