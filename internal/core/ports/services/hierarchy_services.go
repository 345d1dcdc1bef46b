package services

import (
	"context"

	"github.com/dcastano/contable_app/internal/core/hierarchy"
)

// HierarchySvcFacade serves tree views over the chart of accounts.
type HierarchySvcFacade interface {
	// VisibleRows snapshots the chart once, builds the hierarchy index and
	// returns the depth-annotated rows visible under the given filter,
	// expansion state and sort order, along with any data-quality warnings
	// found while building the tree.
	VisibleRows(ctx context.Context, filter hierarchy.Filter, expandedIDs []string, order hierarchy.SortOrder) ([]hierarchy.Row, []hierarchy.Warning, error)
}
