package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/contable_app/internal/apperrors"
	"github.com/dcastano/contable_app/internal/core/domain"
	"github.com/dcastano/contable_app/internal/core/hierarchy"
	portsrepo "github.com/dcastano/contable_app/internal/core/ports/repositories"
	portssvc "github.com/dcastano/contable_app/internal/core/ports/services"
	"github.com/dcastano/contable_app/internal/dto"
	"github.com/dcastano/contable_app/internal/middleware"
)

var (
	// ErrUnknownCodeLength means the account code length matches no level of
	// the configured policy.
	ErrUnknownCodeLength = errors.New("account code length matches no configured level")
	// ErrParentCodeMismatch means the account code does not prefix-extend its
	// parent's code.
	ErrParentCodeMismatch = errors.New("account code must extend the parent account code")
)

type accountService struct {
	repo   portsrepo.AccountRepository
	policy hierarchy.LevelPolicy
}

// NewAccountService creates the account service. The level policy decides
// which code lengths are legal and how levels are assigned.
func NewAccountService(repo portsrepo.AccountRepository, policy hierarchy.LevelPolicy) portssvc.AccountSvcFacade {
	return &accountService{repo: repo, policy: policy}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	level, ok := s.policy.LevelForCode(req.Code)
	if !ok {
		return nil, fmt.Errorf("%w: %w: code %q has length %d, expected one of %v",
			apperrors.ErrValidation, ErrUnknownCodeLength, req.Code, len(req.Code), s.policy.Boundaries())
	}

	if existing, err := s.repo.FindAccountByCode(ctx, req.Code); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: account code %q is already in use by %s", apperrors.ErrDuplicate, req.Code, existing.AccountID)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.repo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		// The code invariant: a child's code strictly prefix-extends its
		// parent's code.
		if !strings.HasPrefix(req.Code, parent.Code) || len(req.Code) <= len(parent.Code) {
			return nil, fmt.Errorf("%w: %w: code %q under parent code %q",
				apperrors.ErrValidation, ErrParentCodeMismatch, req.Code, parent.Code)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		Level:           level,
		Nature:          req.Nature,
		Status:          domain.StatusActive,
		ParentAccountID: parentID,
		Description:     req.Description,
		Reconcilable:    req.Reconcilable,
		AllowsMovements: req.AllowsMovements,
		RequiresThird:   req.RequiresThird,
		RequiresCostCtr: req.RequiresCostCtr,
		TaxTags:         req.TaxTags,
		Usage:           req.Usage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.repo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("code", account.Code))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.repo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.repo.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.Reconcilable != nil {
		account.Reconcilable = *req.Reconcilable
		updated = true
	}
	if req.AllowsMovements != nil {
		account.AllowsMovements = *req.AllowsMovements
		updated = true
	}
	if req.RequiresThird != nil {
		account.RequiresThird = *req.RequiresThird
		updated = true
	}
	if req.RequiresCostCtr != nil {
		account.RequiresCostCtr = *req.RequiresCostCtr
		updated = true
	}
	if req.TaxTags != nil {
		account.TaxTags = *req.TaxTags
		updated = true
	}
	if req.Usage != nil {
		account.Usage = *req.Usage
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.repo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch status {
	case domain.StatusActive, domain.StatusBlocked, domain.StatusArchived:
	default:
		return fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	if err := s.repo.SetAccountStatus(ctx, accountID, status, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to set account status", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account status changed", slog.String("account_id", accountID), slog.String("status", string(status)))
	return nil
}
