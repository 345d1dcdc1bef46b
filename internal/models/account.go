package models

import (
	"github.com/shopspring/decimal"
)

// AccountLevel mirrors domain.AccountLevel for persistence.
type AccountLevel string

// AccountNature mirrors domain.AccountNature for persistence.
type AccountNature string

// AccountStatus mirrors domain.AccountStatus for persistence.
type AccountStatus string

// Account is the database representation of a chart-of-accounts node.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	Level           AccountLevel    `db:"level"`
	Nature          AccountNature   `db:"nature"`
	Status          AccountStatus   `db:"status"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	Reconcilable    bool            `db:"reconcilable"`
	AllowsMovements bool            `db:"allows_movements"`
	RequiresThird   bool            `db:"requires_third_party"`
	RequiresCostCtr bool            `db:"requires_cost_center"`
	TaxTags         []string        `db:"tax_tags"`
	Usage           []string        `db:"usage_tags"`
	AuditFields                     // Embed common audit fields
	Balance         decimal.Decimal `db:"balance"`
}
