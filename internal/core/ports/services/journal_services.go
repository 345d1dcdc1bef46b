package services

import (
	"context"

	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/ledger"
	"github.com/dcastano/contable_app/internal/dto"
)

// JournalSvcFacade defines operations over journal entries.
type JournalSvcFacade interface {
	// ValidateDraft runs the double-entry validator against a draft without
	// persisting anything, returning every violation at once.
	ValidateDraft(ctx context.Context, req dto.CreateJournalRequest) ([]ledger.ValidationError, error)

	// CreateJournal validates a draft and posts it atomically. When the
	// draft violates double-entry rules the violations are returned next to
	// a nil entry and the error is apperrors.ErrValidation.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, []ledger.ValidationError, error)

	// GetJournalByID retrieves a journal entry with its lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a token-paginated list of journal entries.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// ReverseJournal posts a new entry that reverses a previously posted one.
	ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)
}
