package dto

import (
	"strings"

	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/hierarchy"
)

// TreeQueryParams are the query parameters of the tree endpoint. All filter
// fields are optional; leaving them all empty disables filtering.
type TreeQueryParams struct {
	Text            string `form:"q"`
	Nature          string `form:"nature" binding:"omitempty,oneof=DEBIT CREDIT"`
	Status          string `form:"status" binding:"omitempty,oneof=ACTIVE BLOCKED ARCHIVED"`
	Reconcilable    *bool  `form:"reconcilable"`
	AllowsMovements *bool  `form:"allowsMovements"`
	RequiresThird   *bool  `form:"requiresThirdParty"`
	RequiresCostCtr *bool  `form:"requiresCostCenter"`
	Expanded        string `form:"expanded"` // comma-separated account ids
	Order           string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query into the hierarchy filter.
func (p TreeQueryParams) ToFilter() hierarchy.Filter {
	return hierarchy.Filter{
		Text:            p.Text,
		Nature:          domain.AccountNature(p.Nature),
		Status:          domain.AccountStatus(p.Status),
		Reconcilable:    p.Reconcilable,
		AllowsMovements: p.AllowsMovements,
		RequiresThird:   p.RequiresThird,
		RequiresCostCtr: p.RequiresCostCtr,
	}
}

// ExpandedIDs splits the expanded parameter into ids.
func (p TreeQueryParams) ExpandedIDs() []string {
	if p.Expanded == "" {
		return nil
	}
	parts := strings.Split(p.Expanded, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SortOrder maps the order parameter to the hierarchy sort order.
func (p TreeQueryParams) SortOrder() hierarchy.SortOrder {
	if p.Order == "desc" {
		return hierarchy.Descending
	}
	return hierarchy.Ascending
}

// TreeRowResponse is one visible row of the rendered tree.
type TreeRowResponse struct {
	Account AccountResponse `json:"account"`
	Depth   int             `json:"depth"`
}

// TreeResponse carries the visible rows plus any data-quality warnings found
// while building the tree, so the UI can surface malformed data instead of
// silently dropping nodes.
type TreeResponse struct {
	Rows     []TreeRowResponse   `json:"rows"`
	Warnings []hierarchy.Warning `json:"warnings,omitempty"`
}

// ToTreeResponse converts hierarchy rows and warnings into the response DTO.
func ToTreeResponse(rows []hierarchy.Row, warnings []hierarchy.Warning) TreeResponse {
	resp := TreeResponse{
		Rows:     make([]TreeRowResponse, len(rows)),
		Warnings: warnings,
	}
	for i, r := range rows {
		acct := r.Account
		resp.Rows[i] = TreeRowResponse{
			Account: ToAccountResponse(&acct),
			Depth:   r.Depth,
		}
	}
	return resp
}
