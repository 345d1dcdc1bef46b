package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcastano/contable_app/internal/core/domain"
)

// ErrorCode is the closed set of double-entry rule violations.
type ErrorCode string

const (
	TooFewLines               ErrorCode = "TOO_FEW_LINES"
	MixedAmountLine           ErrorCode = "MIXED_AMOUNT_LINE"
	EmptyAmountLine           ErrorCode = "EMPTY_AMOUNT_LINE"
	NegativeAmount            ErrorCode = "NEGATIVE_AMOUNT"
	Unbalanced                ErrorCode = "UNBALANCED"
	AccountNotMovementCapable ErrorCode = "ACCOUNT_NOT_MOVEMENT_CAPABLE"
	MissingThirdParty         ErrorCode = "MISSING_THIRD_PARTY"
)

// ValidationError describes a single rule violation. Line is the zero-based
// index of the offending line, or -1 for entry-level violations.
type ValidationError struct {
	Code      ErrorCode       `json:"code"`
	Line      int             `json:"line"`
	AccountID string          `json:"accountID,omitempty"`
	Debit     decimal.Decimal `json:"debit,omitempty"`      // total debits, for Unbalanced
	Credit    decimal.Decimal `json:"credit,omitempty"`     // total credits, for Unbalanced
	Diff      decimal.Decimal `json:"difference,omitempty"` // |debit - credit|, for Unbalanced
	Detail    string          `json:"detail"`
}

func (e ValidationError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("%s [line %d]: %s", e.Code, e.Line, e.Detail)
}

// Options configures validation.
type Options struct {
	// Tolerance is the absolute difference allowed between total debits and
	// credits, absorbing rounding noise. A difference exactly equal to the
	// tolerance is accepted.
	Tolerance decimal.Decimal

	// Accounts is the optional account snapshot keyed by id. When present,
	// account eligibility rules (movement capability, third-party
	// requirement) are checked; when nil they are skipped.
	Accounts map[string]domain.Account
}

// Validate checks a proposed set of journal lines against double-entry
// bookkeeping rules. Every rule is checked independently and every violation
// is reported, so the caller can show all problems at once rather than one
// per round trip. A nil result means the lines are acceptable.
//
// Validate is pure: it performs no I/O and never mutates its input.
func Validate(lines []domain.JournalLine, opts Options) []ValidationError {
	var errs []ValidationError

	if len(lines) < 2 {
		errs = append(errs, ValidationError{
			Code:   TooFewLines,
			Line:   -1,
			Detail: fmt.Sprintf("journal entries require at least 2 lines, got %d", len(lines)),
		})
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()

		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Code:      NegativeAmount,
				Line:      i,
				AccountID: line.AccountID,
				Detail:    fmt.Sprintf("amounts must be non-negative, got debit %s credit %s", line.Debit, line.Credit),
			})
		}
		if hasDebit && hasCredit {
			errs = append(errs, ValidationError{
				Code:      MixedAmountLine,
				Line:      i,
				AccountID: line.AccountID,
				Detail:    "a line must not carry both a debit and a credit",
			})
		}
		if !hasDebit && !hasCredit {
			errs = append(errs, ValidationError{
				Code:      EmptyAmountLine,
				Line:      i,
				AccountID: line.AccountID,
				Detail:    "a line must carry a positive debit or credit",
			})
		}

		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)

		if opts.Accounts != nil {
			errs = append(errs, checkAccountRules(i, line, opts.Accounts)...)
		}
	}

	if diff := totalDebit.Sub(totalCredit).Abs(); diff.GreaterThan(opts.Tolerance) {
		errs = append(errs, ValidationError{
			Code:   Unbalanced,
			Line:   -1,
			Debit:  totalDebit,
			Credit: totalCredit,
			Diff:   diff,
			Detail: fmt.Sprintf("debits (%s) and credits (%s) differ by %s", totalDebit, totalCredit, diff),
		})
	}

	return errs
}

// checkAccountRules applies the eligibility rules that need account metadata.
func checkAccountRules(i int, line domain.JournalLine, accounts map[string]domain.Account) []ValidationError {
	acct, found := accounts[line.AccountID]
	if !found {
		return []ValidationError{{
			Code:      AccountNotMovementCapable,
			Line:      i,
			AccountID: line.AccountID,
			Detail:    fmt.Sprintf("account %s does not exist", line.AccountID),
		}}
	}

	var errs []ValidationError
	if !acct.IsActive() || !acct.AllowsMovements {
		errs = append(errs, ValidationError{
			Code:      AccountNotMovementCapable,
			Line:      i,
			AccountID: line.AccountID,
			Detail:    fmt.Sprintf("account %s (%s) is not an active movement account", acct.Code, acct.Name),
		})
	}
	if acct.RequiresThird && line.ContactID == "" {
		errs = append(errs, ValidationError{
			Code:      MissingThirdParty,
			Line:      i,
			AccountID: line.AccountID,
			Detail:    fmt.Sprintf("account %s (%s) requires a third party on every line", acct.Code, acct.Name),
		})
	}
	return errs
}
