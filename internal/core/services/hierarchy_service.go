package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dcastano/contable_app/internal/core/hierarchy"
	portsrepo "github.com/dcastano/contable_app/internal/core/ports/repositories"
	portssvc "github.com/dcastano/contable_app/internal/core/ports/services"
	"github.com/dcastano/contable_app/internal/middleware"
)

type hierarchyService struct {
	repo portsrepo.AccountReader
	opts hierarchy.Options
}

// NewHierarchyService creates the tree-view service over the chart of
// accounts.
func NewHierarchyService(repo portsrepo.AccountReader, opts hierarchy.Options) portssvc.HierarchySvcFacade {
	return &hierarchyService{repo: repo, opts: opts}
}

var _ portssvc.HierarchySvcFacade = (*hierarchyService)(nil)

// VisibleRows snapshots the chart once, builds the index once and answers the
// query from it. The index is immutable, so a caller issuing several queries
// against the same snapshot pays the build cost a single time.
func (s *hierarchyService) VisibleRows(ctx context.Context, filter hierarchy.Filter, expandedIDs []string, order hierarchy.SortOrder) ([]hierarchy.Row, []hierarchy.Warning, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.repo.ListAllAccounts(ctx)
	if err != nil {
		logger.Error("Failed to snapshot accounts for tree build", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	ix := hierarchy.BuildIndex(accounts, s.opts)
	if warnings := ix.Warnings(); len(warnings) > 0 {
		logger.Warn("Chart of accounts has data-quality anomalies", slog.Int("count", len(warnings)))
	}

	expanded := make(map[string]bool, len(expandedIDs))
	for _, id := range expandedIDs {
		expanded[id] = true
	}

	rows := ix.VisibleRows(filter, expanded, order)
	logger.Debug("Tree rows computed",
		slog.Int("accounts", ix.Len()),
		slog.Int("rows", len(rows)),
	)
	return rows, ix.Warnings(), nil
}
