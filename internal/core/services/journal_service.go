package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/contable_app/internal/apperrors"
	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/ledger"
	portsrepo "github.com/dcastano/contable_app/internal/core/ports/repositories"
	portssvc "github.com/dcastano/contable_app/internal/core/ports/services"
	"github.com/dcastano/contable_app/internal/dto"
	"github.com/dcastano/contable_app/internal/middleware"
)

type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountReader
	tolerance   decimal.Decimal
}

// NewJournalService creates a journal service with its dependencies.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountReader, tolerance decimal.Decimal) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		tolerance:   tolerance,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines runs the double-entry validator against the draft lines with
// a fresh account snapshot.
func (s *journalService) validateLines(ctx context.Context, lines []domain.JournalLine) ([]ledger.ValidationError, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.AccountID != "" && !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}

	return ledger.Validate(lines, ledger.Options{
		Tolerance: s.tolerance,
		Accounts:  accounts,
	}), nil
}

// ValidateDraft runs validation only, without persisting anything.
func (s *journalService) ValidateDraft(ctx context.Context, req dto.CreateJournalRequest) ([]ledger.ValidationError, error) {
	return s.validateLines(ctx, req.ToDomainLines())
}

// balanceDeltas computes the signed balance change per account. An account of
// debit nature grows with debits; one of credit nature grows with credits.
func balanceDeltas(lines []domain.JournalLine, accounts map[string]domain.Account) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		acct, found := accounts[l.AccountID]
		if !found {
			continue
		}
		delta := l.Debit.Sub(l.Credit)
		if acct.Nature == domain.NatureCredit {
			delta = l.Credit.Sub(l.Debit)
		}
		deltas[l.AccountID] = deltas[l.AccountID].Add(delta)
	}
	return deltas
}

// CreateJournal validates the draft and posts it atomically with the balance
// deltas it implies. Rule violations come back as data, not as an opaque
// error, so the handler can report all of them.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, []ledger.ValidationError, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines := req.ToDomainLines()
	violations, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, nil, err
	}
	if len(violations) > 0 {
		logger.Warn("Journal draft rejected", slog.Int("violations", len(violations)))
		return nil, violations, apperrors.ErrValidation
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}

	now := time.Now()
	journalID := uuid.NewString()
	totalDebit := decimal.Zero
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].JournalID = journalID
		lines[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		}
		totalDebit = totalDebit.Add(lines[i].Debit)
	}

	entry := domain.JournalEntry{
		JournalID:   journalID,
		EntryDate:   req.Date,
		Description: req.Description,
		Status:      domain.Posted,
		Amount:      totalDebit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, entry, lines, balanceDeltas(lines, accounts)); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to save journal: %w", err)
	}

	entry.Lines = lines
	logger.Info("Journal posted",
		slog.String("journalID", journalID),
		slog.Int("lines", len(lines)),
	)
	return &entry, nil, nil
}

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournals retrieves a token-paginated page of journal entries, newest
// first.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Journals = append(resp.Journals, dto.ToJournalResponse(&entries[i]))
	}
	return resp, nil
}

// ReverseJournal posts a new entry whose lines mirror the original with debit
// and credit swapped, then links the two. Only a posted entry that is not
// itself a reversal can be reversed, and only once.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s is not in POSTED status", apperrors.ErrConflict, journalID)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: journal %s is itself a reversal", apperrors.ErrConflict, journalID)
	}
	if original.ReversalJournalID != nil {
		return nil, fmt.Errorf("%w: journal %s is already reversed", apperrors.ErrConflict, journalID)
	}

	origLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}

	ids := make([]string, 0, len(origLines))
	for _, l := range origLines {
		ids = append(ids, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for reversal: %w", err)
	}

	now := time.Now()
	reversalID := uuid.NewString()
	totalDebit := decimal.Zero
	lines := make([]domain.JournalLine, len(origLines))
	for i, l := range origLines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    reversalID,
			AccountID:    l.AccountID,
			Debit:        l.Credit,
			Credit:       l.Debit,
			ContactID:    l.ContactID,
			CostCenterID: l.CostCenterID,
			Description:  l.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		totalDebit = totalDebit.Add(lines[i].Debit)
	}

	reversal := domain.JournalEntry{
		JournalID:         reversalID,
		EntryDate:         now,
		Description:       fmt.Sprintf("Reversal of: %s", original.Description),
		Status:            domain.Posted,
		Amount:            totalDebit,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The reversal entry and the original's status flip commit together.
	if err := s.journalRepo.SaveReversal(ctx, reversal, lines, balanceDeltas(lines, accounts), original.JournalID); err != nil {
		logger.Error("Failed to save reversal journal", slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save reversal journal: %w", err)
	}

	reversal.Lines = lines
	logger.Info("Journal reversed",
		slog.String("journalID", original.JournalID),
		slog.String("reversalJournalID", reversalID),
	)
	return &reversal, nil
}
