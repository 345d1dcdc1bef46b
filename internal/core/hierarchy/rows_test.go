package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/hierarchy"
)

func codesOf(rows []hierarchy.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Account.Code
	}
	return out
}

func TestVisibleRowsCollapsedShowsRoots(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	rows := ix.VisibleRows(hierarchy.Filter{}, nil, hierarchy.Ascending)

	assert.Equal(t, []string{"1", "4"}, codesOf(rows))
	for _, r := range rows {
		assert.Equal(t, 0, r.Depth)
	}
}

func TestVisibleRowsFullyExpandedVisitsEveryAccountOnce(t *testing.T) {
	accounts := pucSample()
	ix := hierarchy.BuildIndex(accounts, hierarchy.Options{})

	expanded := make(map[string]bool)
	for _, a := range accounts {
		expanded[a.AccountID] = true
	}
	rows := ix.VisibleRows(hierarchy.Filter{}, expanded, hierarchy.Ascending)

	require.Len(t, rows, len(accounts))
	assert.Equal(t, []string{"1", "11", "1105", "110505", "1110", "4"}, codesOf(rows))

	// Each row's depth equals the length of its ancestor chain.
	seen := make(map[string]bool)
	for _, r := range rows {
		assert.False(t, seen[r.Account.AccountID])
		seen[r.Account.AccountID] = true
		assert.Equal(t, len(ix.Ancestors(r.Account.AccountID)), r.Depth)
	}
}

func TestVisibleRowsPartialExpansion(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	rows := ix.VisibleRows(hierarchy.Filter{}, map[string]bool{"a-1": true}, hierarchy.Ascending)

	// Class 1 is open, group 11 is not, so 1105/110505/1110 stay hidden.
	assert.Equal(t, []string{"1", "11", "4"}, codesOf(rows))
}

func TestVisibleRowsFilterPreservesAncestors(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	// Match buried three levels deep, with nothing expanded by the caller.
	rows := ix.VisibleRows(hierarchy.Filter{Text: "caja general"}, nil, hierarchy.Ascending)

	require.Equal(t, []string{"1", "11", "1105", "110505"}, codesOf(rows))
	assert.Equal(t, []int{0, 1, 2, 3}, []int{rows[0].Depth, rows[1].Depth, rows[2].Depth, rows[3].Depth})
}

func TestVisibleRowsFilterIsAccentAndCaseInsensitive(t *testing.T) {
	accounts := pucSample()
	accounts = append(accounts, domain.Account{
		AccountID: "a-1120", Code: "1120", Name: "Cuentas de ahorro Bogotá",
		Nature: domain.NatureDebit, Status: domain.StatusActive,
	})
	ix := hierarchy.BuildIndex(accounts, hierarchy.Options{})

	rows := ix.VisibleRows(hierarchy.Filter{Text: "BOGOTA"}, nil, hierarchy.Ascending)
	require.NotEmpty(t, rows)
	assert.Equal(t, "1120", rows[len(rows)-1].Account.Code)
}

func TestVisibleRowsFilterByNatureAndFlags(t *testing.T) {
	accounts := pucSample()
	for i := range accounts {
		if accounts[i].Code == "1105" {
			accounts[i].AllowsMovements = true
		}
	}
	ix := hierarchy.BuildIndex(accounts, hierarchy.Options{})

	rows := ix.VisibleRows(hierarchy.Filter{Nature: domain.NatureCredit}, nil, hierarchy.Ascending)
	assert.Equal(t, []string{"4"}, codesOf(rows))

	yes := true
	rows = ix.VisibleRows(hierarchy.Filter{AllowsMovements: &yes}, nil, hierarchy.Ascending)
	// The movement account plus the ancestors that keep it reachable.
	assert.Equal(t, []string{"1", "11", "1105"}, codesOf(rows))
}

func TestVisibleRowsMatchedNodeChildrenStayCollapsed(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	// "Caja" matches 1105 and 110505 ("Caja general"); "Disponible" matches
	// only 11, whose children are not auto-expanded by the match itself.
	rows := ix.VisibleRows(hierarchy.Filter{Text: "disponible"}, nil, hierarchy.Ascending)
	assert.Equal(t, []string{"1", "11"}, codesOf(rows))
}

func TestVisibleRowsDescending(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	expanded := map[string]bool{"a-1": true, "a-11": true}
	rows := ix.VisibleRows(hierarchy.Filter{}, expanded, hierarchy.Descending)

	assert.Equal(t, []string{"4", "1", "11", "1110", "1105"}, codesOf(rows))
}

func TestVisibleRowsIdempotent(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})
	filter := hierarchy.Filter{Text: "caja"}
	expanded := map[string]bool{"a-1": true}

	first := ix.VisibleRows(filter, expanded, hierarchy.Ascending)
	second := ix.VisibleRows(filter, expanded, hierarchy.Ascending)

	assert.Equal(t, first, second)
}

func TestVisibleRowsEmptyFilterEqualsNoFilter(t *testing.T) {
	ix := hierarchy.BuildIndex(pucSample(), hierarchy.Options{})

	withZero := ix.VisibleRows(hierarchy.Filter{}, map[string]bool{"a-1": true}, hierarchy.Ascending)
	assert.Equal(t, []string{"1", "11", "4"}, codesOf(withZero))
}
