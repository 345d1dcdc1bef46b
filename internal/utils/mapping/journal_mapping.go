package mapping

import (
	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/models"
)

// ToModelJournalEntry converts a domain journal entry (without lines) to its
// database representation.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalID:         d.JournalID,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		Status:            models.JournalStatus(d.Status),
		Amount:            d.Amount,
		OriginalJournalID: d.OriginalJournalID,
		ReversalJournalID: d.ReversalJournalID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a database journal row to the domain type.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:         m.JournalID,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		Status:            domain.JournalStatus(m.Status),
		Amount:            m.Amount,
		OriginalJournalID: m.OriginalJournalID,
		ReversalJournalID: m.ReversalJournalID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain journal line to its database
// representation.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		AccountID:    d.AccountID,
		Debit:        d.Debit,
		Credit:       d.Credit,
		ContactID:    d.ContactID,
		CostCenterID: d.CostCenterID,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a database line row to the domain type.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		AccountID:    m.AccountID,
		Debit:        m.Debit,
		Credit:       m.Credit,
		ContactID:    m.ContactID,
		CostCenterID: m.CostCenterID,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLines converts a slice of database line rows.
func ToDomainJournalLines(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
