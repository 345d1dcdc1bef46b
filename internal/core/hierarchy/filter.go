package hierarchy

import (
	"strings"

	"github.com/dcastano/contable_app/internal/core/domain"
)

// Filter is the conjunction of constraints applied to accounts when querying
// visible rows. Empty or nil fields impose no constraint; the zero Filter
// matches everything and disables filtering entirely.
type Filter struct {
	Text            string               // folded substring match against "code name"
	Nature          domain.AccountNature // exact match when non-empty
	Status          domain.AccountStatus // exact match when non-empty
	Reconcilable    *bool
	AllowsMovements *bool
	RequiresThird   *bool
	RequiresCostCtr *bool
}

// IsZero reports whether the filter imposes no constraint at all.
func (f Filter) IsZero() bool {
	return f.Text == "" &&
		f.Nature == "" &&
		f.Status == "" &&
		f.Reconcilable == nil &&
		f.AllowsMovements == nil &&
		f.RequiresThird == nil &&
		f.RequiresCostCtr == nil
}

// Matches reports whether an account satisfies every constraint of the
// filter. Text matching is case- and accent-insensitive over the account's
// code and name.
func (f Filter) Matches(acct domain.Account) bool {
	if f.Text != "" {
		haystack := foldText(acct.Code + " " + acct.Name)
		if !strings.Contains(haystack, foldText(f.Text)) {
			return false
		}
	}
	if f.Nature != "" && acct.Nature != f.Nature {
		return false
	}
	if f.Status != "" && acct.Status != f.Status {
		return false
	}
	if f.Reconcilable != nil && acct.Reconcilable != *f.Reconcilable {
		return false
	}
	if f.AllowsMovements != nil && acct.AllowsMovements != *f.AllowsMovements {
		return false
	}
	if f.RequiresThird != nil && acct.RequiresThird != *f.RequiresThird {
		return false
	}
	if f.RequiresCostCtr != nil && acct.RequiresCostCtr != *f.RequiresCostCtr {
		return false
	}
	return true
}
