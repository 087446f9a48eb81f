package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// journalService orchestrates the entry lifecycle: validate, resolve new
// accounts, persist, post. Validation always completes before any mutation,
// so a rejected entry leaves both the store and the ledger untouched.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	validator   *EntryValidator
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewJournalService creates the journal entry service.
func NewJournalService(journalRepo portsrepo.JournalRepository, validator *EntryValidator, ledgerSvc portssvc.LedgerSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		validator:   validator,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry implements portssvc.JournalSvcFacade.
func (s *journalService) CreateEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest, resolver portssvc.AccountTypeResolver) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	entry := domain.JournalEntry{
		ID:          req.ID,
		Date:        req.Date,
		Description: req.Description,
		Lines:       dto.ToDomainLines(req.Lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("JRN-%d", now.UnixNano())
	}
	if entry.Description == "" {
		count, err := s.journalRepo.CountEntries(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count entries for placeholder description: %w", err)
		}
		entry.Description = fmt.Sprintf("Transaction #%d", count+1)
	}

	if err := s.validator.ValidateEntry(&entry); err != nil {
		return nil, err
	}
	if err := s.validator.ResolveNewAccounts(ctx, userID, &entry, resolver); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, userID, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("entry_id", entry.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	if err := s.ledgerSvc.PostEntry(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entry.ID, err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.ID), slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// UpdateEntry implements portssvc.JournalSvcFacade. The new version is
// validated in full before the old one is reversed; a validation failure
// leaves the prior state wholly intact.
func (s *journalService) UpdateEntry(ctx context.Context, userID string, entryID string, req dto.UpdateJournalEntryRequest, resolver portssvc.AccountTypeResolver) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	oldEntry, err := s.journalRepo.FindEntryByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	newEntry := domain.JournalEntry{
		ID:          oldEntry.ID,
		Date:        req.Date,
		Description: req.Description,
		Lines:       dto.ToDomainLines(req.Lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     oldEntry.CreatedAt,
			CreatedBy:     oldEntry.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if newEntry.Description == "" {
		newEntry.Description = oldEntry.Description
	}

	if err := s.validator.ValidateEntry(&newEntry); err != nil {
		return nil, err
	}
	if err := s.validator.ResolveNewAccounts(ctx, userID, &newEntry, resolver); err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateEntry(ctx, userID, newEntry); err != nil {
		logger.Error("Failed to update journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	if err := s.ledgerSvc.ApplyEdit(ctx, userID, *oldEntry, newEntry); err != nil {
		return nil, fmt.Errorf("failed to repost edited entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return &newEntry, nil
}

// DeleteEntry implements portssvc.JournalSvcFacade.
func (s *journalService) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.DeleteEntry(ctx, userID, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Stale reference: nothing stored, nothing posted.
			logger.Warn("Delete of unknown journal entry ignored", slog.String("entry_id", entryID))
			return err
		}
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if err := s.ledgerSvc.ReverseEntry(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to reverse journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// GetEntryByID implements portssvc.JournalSvcFacade.
func (s *journalService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries implements portssvc.JournalSvcFacade. The store may return
// entries in any order; they are sorted ascending by date here.
func (s *journalService) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}
