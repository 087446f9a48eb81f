package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// ErrAccountTypeImmutable is returned when a create names an existing
// account with a different type. Types are fixed at creation; there is no
// retype operation.
var ErrAccountTypeImmutable = errors.New("account type cannot be changed once chosen")

// accountService maintains the chart of accounts and keeps the ledger
// projection in step with registry changes.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewAccountService creates the account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepository, ledgerSvc portssvc.LedgerSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, ledgerSvc: ledgerSvc}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount implements portssvc.AccountSvcFacade. Inserting an existing
// name with the same type is a no-op returning the existing account.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByName(ctx, userID, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", req.Name, err)
	}
	if existing != nil {
		if existing.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: account %s is %s", ErrAccountTypeImmutable, req.Name, existing.AccountType)
		}
		logger.Debug("Account already registered", slog.String("account", req.Name))
		return existing, nil
	}

	now := time.Now().UTC()
	account := domain.Account{
		Name:        req.Name,
		AccountType: req.AccountType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, userID, account); err != nil {
		return nil, fmt.Errorf("failed to save account %s: %w", req.Name, err)
	}
	if err := s.ledgerSvc.RegisterAccount(ctx, userID, account); err != nil {
		return nil, fmt.Errorf("failed to register ledger account %s: %w", req.Name, err)
	}

	logger.Info("Account created", slog.String("account", req.Name), slog.String("type", string(req.AccountType)))
	return &account, nil
}

// GetAccountByName implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, userID, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("account", name), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", name, err)
	}
	return account, nil
}

// ListAccounts implements portssvc.AccountSvcFacade.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount implements portssvc.AccountSvcFacade.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, name string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, userID, name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete account %s: %w", name, err)
	}
	if err := s.ledgerSvc.UnregisterAccount(ctx, userID, name); err != nil {
		return fmt.Errorf("failed to drop ledger account %s: %w", name, err)
	}

	logger.Info("Account deleted", slog.String("account", name))
	return nil
}
