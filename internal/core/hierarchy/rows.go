package hierarchy

import (
	"github.com/dcastano/contable_app/internal/core/domain"
)

// Row is one visible line of the rendered tree: an account and its structural
// depth (roots are depth 0). Depth is independent of filtering, so the
// display layer can indent correctly even when a filter is active.
type Row struct {
	Account domain.Account `json:"account"`
	Depth   int            `json:"depth"`
}

// VisibleRows flattens the tree into the ordered row sequence a display
// surface renders, depth-first in comparator order.
//
// With no filter every account is eligible and a node's children show only
// when the node id is in expanded. With a filter active, a node shows when it
// matches or is an ancestor of a match, and every ancestor of a match is
// auto-expanded regardless of expanded, so a match buried several levels deep
// stays reachable.
//
// The function is pure: identical arguments always yield identical output and
// nothing on the index is mutated.
func (ix *Index) VisibleRows(filter Filter, expanded map[string]bool, order SortOrder) []Row {
	filtering := !filter.IsZero()

	var matched, closure map[string]bool
	if filtering {
		matched = make(map[string]bool)
		for id, acct := range ix.byID {
			if filter.Matches(acct) {
				matched[id] = true
			}
		}
		// Ancestor closure of every match: always shown, always expanded.
		closure = make(map[string]bool)
		for id := range matched {
			for _, anc := range ix.Ancestors(id) {
				closure[anc] = true
			}
		}
	}

	include := func(id string) bool {
		if !filtering {
			return true
		}
		return matched[id] || closure[id]
	}
	isExpanded := func(id string) bool {
		if expanded[id] {
			return true
		}
		return filtering && closure[id]
	}

	rows := make([]Row, 0, len(ix.byID))
	visited := make(map[string]bool, len(ix.byID))

	var walk func(ids []string, depth int)
	walk = func(ids []string, depth int) {
		for i := range ids {
			id := ids[i]
			if order == Descending {
				id = ids[len(ids)-1-i]
			}
			if visited[id] {
				continue
			}
			visited[id] = true
			if !include(id) {
				continue
			}
			rows = append(rows, Row{Account: ix.byID[id], Depth: depth})
			if isExpanded(id) {
				walk(ix.childrenOf[id], depth+1)
			}
		}
	}
	walk(ix.roots, 0)
	return rows
}
