package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalLine is a single row of a journal entry, affecting one account.
// Exactly one of Debit/Credit is positive on a valid line.
type JournalLine struct {
	LineID       string          `json:"lineID"`    // Primary Key (UUID)
	JournalID    string          `json:"journalID"` // FK -> JournalEntry.JournalID
	AccountID    string          `json:"accountID"` // FK -> Account.AccountID (Not Null)
	Debit        decimal.Decimal `json:"debit"`     // Non-negative; zero if credit side
	Credit       decimal.Decimal `json:"credit"`    // Non-negative; zero if debit side
	ContactID    string          `json:"contactID"` // Third party; required by some accounts
	CostCenterID string          `json:"costCenterID"`
	Description  string          `json:"description"`
	AuditFields
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. A draft has no identity until it is posted.
type JournalEntry struct {
	JournalID         string          `json:"journalID"` // Primary Key (UUID)
	EntryDate         time.Time       `json:"entryDate"` // Date the event occurred
	Description       string          `json:"description"`
	Status            JournalStatus   `json:"status"` // Default: Posted
	Amount            decimal.Decimal `json:"amount"` // Total debit side of the entry
	OriginalJournalID *string         `json:"originalJournalID,omitempty"`
	ReversalJournalID *string         `json:"reversalJournalID,omitempty"`
	Lines             []JournalLine   `json:"lines,omitempty"`
	AuditFields
}
