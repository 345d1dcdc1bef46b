package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dcastano/contable_app/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal entry without its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// FindLinesByJournalID retrieves the lines of one journal entry.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals retrieves a page of journal entries ordered by entry date
	// descending, using an opaque keyset token.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal atomically persists an entry with its lines and applies the
	// computed per-account balance deltas.
	SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error

	// SaveReversal, in a single transaction, flips the original entry to
	// REVERSED with a link to the reversal, persists the reversal entry with
	// its lines, and applies the balance deltas. Returns ErrConflict if the
	// original is no longer reversible, ErrNotFound if it does not exist.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, originalJournalID string) error
}

// JournalRepository combines all journal-related repository interfaces.
type JournalRepository interface {
	JournalReader
	JournalWriter
}
