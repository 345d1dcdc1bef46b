package domain

import (
	"github.com/shopspring/decimal"
)

// AccountLevel identifies the depth class of an account within the chart of
// accounts. The level is redundant with the code length but stored explicitly
// so the hierarchy policy can be checked against it.
type AccountLevel string

const (
	LevelClass      AccountLevel = "CLASS"
	LevelGroup      AccountLevel = "GROUP"
	LevelAccount    AccountLevel = "ACCOUNT"
	LevelSubAccount AccountLevel = "SUBACCOUNT"
)

// AccountNature determines which side of a journal entry increases the
// account's balance.
type AccountNature string

const (
	NatureDebit  AccountNature = "DEBIT"
	NatureCredit AccountNature = "CREDIT"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusBlocked  AccountStatus = "BLOCKED"
	StatusArchived AccountStatus = "ARCHIVED"
)

// Account represents one node of the chart of accounts.
// This is the primary representation used by services; transient view state
// (depth, expansion) never lives on this struct.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Hierarchical code; length determines level
	Name            string          `json:"name"`            // Display label
	Level           AccountLevel    `json:"level"`           // CLASS, GROUP, ACCOUNT, SUBACCOUNT
	Nature          AccountNature   `json:"nature"`          // DEBIT or CREDIT
	Status          AccountStatus   `json:"status"`          // ACTIVE, BLOCKED, ARCHIVED
	ParentAccountID string          `json:"parentAccountID"` // Nullable; derivable from Code when absent
	Description     string          `json:"description"`     // Nullable user description
	Reconcilable    bool            `json:"reconcilable"`
	AllowsMovements bool            `json:"allowsMovements"` // Directly postable (leaf/movement account)
	RequiresThird   bool            `json:"requiresThirdParty"`
	RequiresCostCtr bool            `json:"requiresCostCenter"`
	TaxTags         []string        `json:"taxTags"`
	Usage           []string        `json:"usage"`
	AuditFields                     // Embed CreatedAt, CreatedBy, etc.
	Balance         decimal.Decimal `json:"balance"` // Persisted account balance
}

// IsActive reports whether the account can participate in new movements.
func (a Account) IsActive() bool {
	return a.Status == StatusActive
}
