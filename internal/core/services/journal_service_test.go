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

	"github.com/dcastano/contable_app/internal/apperrors"
	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/ledger"
	portssvc "github.com/dcastano/contable_app/internal/core/ports/services"
	"github.com/dcastano/contable_app/internal/core/services"
	"github.com/dcastano/contable_app/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, originalJournalID string) error {
	args := m.Called(ctx, reversal, lines, balanceChanges, originalJournalID)
	return args.Error(0)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade

	cashID string
	bankID string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, decimal.RequireFromString("0.01"))
	suite.cashID = uuid.NewString()
	suite.bankID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) accounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashID: {
			AccountID:       suite.cashID,
			Code:            "110505",
			Nature:          domain.NatureDebit,
			Status:          domain.StatusActive,
			AllowsMovements: true,
		},
		suite.bankID: {
			AccountID:       suite.bankID,
			Code:            "210505",
			Nature:          domain.NatureCredit,
			Status:          domain.StatusActive,
			AllowsMovements: true,
		},
	}
}

func (suite *JournalServiceTestSuite) balancedDraft(amount string) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description: "Compra de inventario",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashID, Debit: decimal.RequireFromString(amount)},
			{AccountID: suite.bankID, Credit: decimal.RequireFromString(amount)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestValidateDraft_Balanced() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Once()

	violations, err := suite.service.ValidateDraft(ctx, suite.balancedDraft("100.00"))

	suite.Require().NoError(err)
	suite.Empty(violations)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestValidateDraft_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedDraft("100.00")
	req.Lines[1].Credit = decimal.RequireFromString("90.00")

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Once()

	violations, err := suite.service.ValidateDraft(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	suite.Equal(ledger.Unbalanced, violations[0].Code)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.balancedDraft("250.00")

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Twice()
	suite.mockJournalRepo.On("SaveJournal", ctx,
		mock.MatchedBy(func(e domain.JournalEntry) bool {
			return e.Status == domain.Posted &&
				e.Amount.Equal(decimal.RequireFromString("250.00")) &&
				e.CreatedBy == creatorUserID
		}),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			return len(lines) == 2 && lines[0].JournalID != "" && lines[0].JournalID == lines[1].JournalID
		}),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
			// Both accounts grow by their natural side.
			return deltas[suite.cashID].Equal(decimal.RequireFromString("250.00")) &&
				deltas[suite.bankID].Equal(decimal.RequireFromString("250.00"))
		}),
	).Return(nil).Once()

	entry, violations, err := suite.service.CreateJournal(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Empty(violations)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Posted, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsInvalidDraft() {
	ctx := context.Background()
	req := suite.balancedDraft("100.00")
	req.Lines = req.Lines[:1] // unbalanced and too few lines

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Once()

	entry, violations, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.NotEmpty(violations)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Twice()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, mock.Anything).Return(expectedErr).Once()

	entry, violations, err := suite.service.CreateJournal(ctx, suite.balancedDraft("10.00"), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(entry)
	suite.Empty(violations)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_WithLines() {
	ctx := context.Background()
	journalID := uuid.NewString()
	entry := &domain.JournalEntry{JournalID: journalID, Status: domain.Posted}
	lines := []domain.JournalLine{{LineID: uuid.NewString(), JournalID: journalID}}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(lines, nil).Once()

	got, err := suite.service.GetJournalByID(ctx, journalID)

	suite.Require().NoError(err)
	suite.Equal(journalID, got.JournalID)
	suite.Len(got.Lines, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetJournalByID(ctx, journalID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListJournals_PassesToken() {
	ctx := context.Background()
	token := "b3BhcXVl"
	next := "bmV4dA"
	entries := []domain.JournalEntry{{JournalID: uuid.NewString()}}

	suite.mockJournalRepo.On("ListJournals", ctx, 20, &token).Return(entries, &next, nil).Once()

	resp, err := suite.service.ListJournals(ctx, dto.ListJournalsParams{Limit: 20, NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListJournals_ClampsLimit() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListJournals", ctx, 20, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListJournals(ctx, dto.ListJournalsParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.Empty(resp.Journals)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	original := &domain.JournalEntry{
		JournalID:   journalID,
		Status:      domain.Posted,
		Description: "Compra de inventario",
		Amount:      decimal.RequireFromString("250.00"),
	}
	origLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashID, Debit: decimal.RequireFromString("250.00"), Credit: decimal.Zero},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.bankID, Debit: decimal.Zero, Credit: decimal.RequireFromString("250.00")},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(origLines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx,
		mock.MatchedBy(func(e domain.JournalEntry) bool {
			return e.OriginalJournalID != nil && *e.OriginalJournalID == journalID &&
				e.Amount.Equal(decimal.RequireFromString("250.00"))
		}),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			// Debit and credit swap sides on every line.
			return len(lines) == 2 &&
				lines[0].AccountID == suite.cashID && lines[0].Credit.Equal(decimal.RequireFromString("250.00")) &&
				lines[1].AccountID == suite.bankID && lines[1].Debit.Equal(decimal.RequireFromString("250.00"))
		}),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
			return deltas[suite.cashID].Equal(decimal.RequireFromString("-250.00")) &&
				deltas[suite.bankID].Equal(decimal.RequireFromString("-250.00"))
		}),
		journalID,
	).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, journalID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Require().NotNil(reversal.OriginalJournalID)
	suite.Equal(journalID, *reversal.OriginalJournalID)
	suite.NotEqual(journalID, reversal.JournalID)
	// The status flip travels with the posting, never as a separate write.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_LostRaceSurfacesConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	original := &domain.JournalEntry{
		JournalID:   journalID,
		Status:      domain.Posted,
		Description: "Compra de inventario",
		Amount:      decimal.RequireFromString("250.00"),
	}
	origLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashID, Debit: decimal.RequireFromString("250.00"), Credit: decimal.Zero},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.bankID, Debit: decimal.Zero, Credit: decimal.RequireFromString("250.00")},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(origLines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accounts(), nil).Once()
	// A concurrent reversal won the guarded update; the whole write rolls back.
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.Anything, mock.Anything, mock.Anything, journalID).
		Return(fmt.Errorf("%w: journal %s is not reversible", apperrors.ErrConflict, journalID)).Once()

	reversal, err := suite.service.ReverseJournal(ctx, journalID, userID)

	suite.Require().Error(err)
	suite.Nil(reversal)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.JournalEntry{JournalID: journalID, Status: domain.Reversed}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, journalID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reversal)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_OfAReversal() {
	ctx := context.Background()
	journalID := uuid.NewString()
	origID := uuid.NewString()
	original := &domain.JournalEntry{JournalID: journalID, Status: domain.Posted, OriginalJournalID: &origID}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, journalID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reversal)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
