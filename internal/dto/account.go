package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/contable_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// The level is derived from the code per the configured level policy.
type CreateAccountRequest struct {
	Code            string               `json:"code" binding:"required,acctcode"`
	Name            string               `json:"name" binding:"required"`
	Nature          domain.AccountNature `json:"nature" binding:"required,oneof=DEBIT CREDIT"`
	ParentAccountID *string              `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string               `json:"description"`     // Optional
	Reconcilable    bool                 `json:"reconcilable"`
	AllowsMovements bool                 `json:"allowsMovements"`
	RequiresThird   bool                 `json:"requiresThirdParty"`
	RequiresCostCtr bool                 `json:"requiresCostCenter"`
	TaxTags         []string             `json:"taxTags"`
	Usage           []string             `json:"usage"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Reconcilable    *bool     `json:"reconcilable"`
	AllowsMovements *bool     `json:"allowsMovements"`
	RequiresThird   *bool     `json:"requiresThirdParty"`
	RequiresCostCtr *bool     `json:"requiresCostCenter"`
	TaxTags         *[]string `json:"taxTags"`
	Usage           *[]string `json:"usage"`
}

// SetAccountStatusRequest transitions an account's lifecycle status.
type SetAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE BLOCKED ARCHIVED"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	Level           domain.AccountLevel  `json:"level"`
	Nature          domain.AccountNature `json:"nature"`
	Status          domain.AccountStatus `json:"status"`
	ParentAccountID string               `json:"parentAccountID"` // Empty string if null in DB
	Description     string               `json:"description"`
	Reconcilable    bool                 `json:"reconcilable"`
	AllowsMovements bool                 `json:"allowsMovements"`
	RequiresThird   bool                 `json:"requiresThirdParty"`
	RequiresCostCtr bool                 `json:"requiresCostCenter"`
	TaxTags         []string             `json:"taxTags"`
	Usage           []string             `json:"usage"`
	Balance         decimal.Decimal      `json:"balance"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		Level:           acc.Level,
		Nature:          acc.Nature,
		Status:          acc.Status,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		Reconcilable:    acc.Reconcilable,
		AllowsMovements: acc.AllowsMovements,
		RequiresThird:   acc.RequiresThird,
		RequiresCostCtr: acc.RequiresCostCtr,
		TaxTags:         acc.TaxTags,
		Usage:           acc.Usage,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
