package services

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/dcastano/contable_app/internal/core/hierarchy"
	portsrepo "github.com/dcastano/contable_app/internal/core/ports/repositories"
	portssvc "github.com/dcastano/contable_app/internal/core/ports/services"
	"github.com/dcastano/contable_app/internal/platform/config"
)

// NewServiceContainer wires the repositories and configuration into the full
// set of application services. Malformed hierarchy configuration falls back
// to defaults with a warning rather than refusing to start.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	policy, err := hierarchy.ParseLevelPolicy(cfg.LevelBoundaries)
	if err != nil {
		slog.Warn("Invalid COA_LEVEL_BOUNDARIES, using default policy",
			slog.String("value", cfg.LevelBoundaries),
			slog.String("error", err.Error()),
		)
		policy = hierarchy.DefaultLevelPolicy()
	}

	locale, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		slog.Warn("Invalid COA_COLLATION_LOCALE, using Spanish",
			slog.String("value", cfg.CollationLocale),
			slog.String("error", err.Error()),
		)
		locale = language.Spanish
	}

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, policy),
		Hierarchy: NewHierarchyService(repos.AccountRepo, hierarchy.Options{Policy: policy, Locale: locale}),
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo, cfg.BalanceTolerance),
		User:      NewUserService(repos.UserRepo),
	}
}
