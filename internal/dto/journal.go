package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/ledger"
)

// CreateJournalLineRequest is one proposed line of a journal draft.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ContactID    string          `json:"contactID"`
	CostCenterID string          `json:"costCenterID"`
	Description  string          `json:"description"`
}

// CreateJournalRequest is a proposed journal entry; it has no identity until
// posted.
type CreateJournalRequest struct {
	Date        time.Time                  `json:"date" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,dive"`
}

// ToDomainLines converts request lines into domain lines for validation.
func (r CreateJournalRequest) ToDomainLines() []domain.JournalLine {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			ContactID:    l.ContactID,
			CostCenterID: l.CostCenterID,
			Description:  l.Description,
		}
	}
	return lines
}

// JournalLineResponse is a persisted journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ContactID    string          `json:"contactID,omitempty"`
	CostCenterID string          `json:"costCenterID,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// JournalResponse is a persisted journal entry.
type JournalResponse struct {
	JournalID         string                `json:"journalID"`
	Date              time.Time             `json:"date"`
	Description       string                `json:"description"`
	Status            domain.JournalStatus  `json:"status"`
	Amount            decimal.Decimal       `json:"amount"`
	OriginalJournalID *string               `json:"originalJournalID,omitempty"`
	ReversalJournalID *string               `json:"reversalJournalID,omitempty"`
	Lines             []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToJournalResponse converts a domain journal entry to its response DTO.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID:         j.JournalID,
		Date:              j.EntryDate,
		Description:       j.Description,
		Status:            j.Status,
		Amount:            j.Amount,
		OriginalJournalID: j.OriginalJournalID,
		ReversalJournalID: j.ReversalJournalID,
		CreatedAt:         j.CreatedAt,
		CreatedBy:         j.CreatedBy,
	}
	for _, l := range j.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			ContactID:    l.ContactID,
			CostCenterID: l.CostCenterID,
			Description:  l.Description,
		})
	}
	return resp
}

// ValidationResponse is the outcome of a dry-run validation: every violation
// at once, so the entry form can annotate each offending line.
type ValidationResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []ledger.ValidationError `json:"errors,omitempty"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journals with the next-page token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
