package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry row.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry is the database representation of a posted journal entry.
type JournalEntry struct {
	JournalID         string          `db:"journal_id"`
	EntryDate         time.Time       `db:"entry_date"`
	Description       string          `db:"description"`
	Status            JournalStatus   `db:"status"`
	Amount            decimal.Decimal `db:"amount"`
	OriginalJournalID *string         `db:"original_journal_id"` // Nullable
	ReversalJournalID *string         `db:"reversal_journal_id"` // Nullable
	AuditFields
}

// JournalLine is the database representation of one line of a journal entry.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	JournalID    string          `db:"journal_id"`
	AccountID    string          `db:"account_id"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	ContactID    string          `db:"contact_id"`     // Nullable
	CostCenterID string          `db:"cost_center_id"` // Nullable
	Description  string          `db:"description"`
	AuditFields
}
