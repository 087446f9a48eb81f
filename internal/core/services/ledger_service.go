package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
	"github.com/finbooks/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerSession is one user's in-memory general ledger: a projection of the
// chart of accounts plus every posted journal entry. It is never persisted;
// it is rebuilt by replay and kept consistent by applying the same mutations
// the store receives. The mutex serializes mutations so a reader always sees
// either the pre- or post-mutation state.
type ledgerSession struct {
	mu       sync.RWMutex
	accounts map[string]*domain.LedgerAccount
	order    []string
}

// post appends one ledger transaction per line. Lines referencing accounts
// missing from the registry are dropped from the projection silently; the
// validator is responsible for catching them beforehand.
func (s *ledgerSession) post(entry domain.JournalEntry) {
	for _, line := range entry.Lines {
		account, ok := s.accounts[line.AccountName]
		if !ok {
			continue
		}
		account.Transactions = append(account.Transactions, domain.LedgerTransaction{
			Date:        entry.Date,
			Description: entry.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			JournalID:   entry.ID,
		})
	}
}

// reverse removes every transaction tagged with the entry ID from every
// account. Unknown IDs leave the ledger untouched.
func (s *ledgerSession) reverse(entryID string) {
	for _, name := range s.order {
		account := s.accounts[name]
		kept := account.Transactions[:0]
		for _, txn := range account.Transactions {
			if txn.JournalID != entryID {
				kept = append(kept, txn)
			}
		}
		account.Transactions = kept
	}
}

// sortAccount restores ascending date order. The sort is stable so
// same-date transactions keep their posting order.
func (s *ledgerSession) sortAccount(name string) {
	account, ok := s.accounts[name]
	if !ok {
		return
	}
	txns := account.Transactions
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})
}

func (s *ledgerSession) sortAll() {
	for _, name := range s.order {
		s.sortAccount(name)
	}
}

func (s *ledgerSession) register(account domain.Account) {
	if _, ok := s.accounts[account.Name]; ok {
		return
	}
	s.accounts[account.Name] = &domain.LedgerAccount{
		Name:        account.Name,
		AccountType: account.AccountType,
	}
	s.order = append(s.order, account.Name)
}

func (s *ledgerSession) unregister(name string) {
	if _, ok := s.accounts[name]; !ok {
		return
	}
	delete(s.accounts, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func copyLedgerAccount(account *domain.LedgerAccount) domain.LedgerAccount {
	txns := make([]domain.LedgerTransaction, len(account.Transactions))
	copy(txns, account.Transactions)
	return domain.LedgerAccount{
		Name:         account.Name,
		AccountType:  account.AccountType,
		Transactions: txns,
	}
}

// ledgerService materializes and caches one ledger session per user. A
// session is built by full replay of the user's stored entries; subsequent
// mutations are applied in step with the store so the cached projection
// never diverges from a fresh replay.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository

	mu       sync.Mutex
	sessions map[string]*ledgerSession
}

// NewLedgerService creates the ledger poster backed by the given stores.
func NewLedgerService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		sessions:    make(map[string]*ledgerSession),
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// session returns the user's ledger, building it by replay on first access:
// one empty ledger account per registered account, then every stored entry
// posted, then a final ascending sort by date per account so load order
// does not matter.
func (s *ledgerService) session(ctx context.Context, userID string) (*ledgerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for ledger replay: %w", err)
	}
	entries, err := s.journalRepo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries for ledger replay: %w", err)
	}

	session := &ledgerSession{accounts: make(map[string]*domain.LedgerAccount, len(accounts))}
	for _, account := range accounts {
		session.register(account)
	}
	for _, entry := range entries {
		session.post(entry)
	}
	session.sortAll()

	middleware.GetLoggerFromCtx(ctx).Debug("Ledger session built by replay",
		slog.Int("accounts", len(accounts)),
		slog.Int("entries", len(entries)))

	s.sessions[userID] = session
	return session, nil
}

// PostEntry implements portssvc.LedgerSvcFacade.
func (s *ledgerService) PostEntry(ctx context.Context, userID string, entry domain.JournalEntry) error {
	session, err := s.session(ctx, userID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.post(entry)
	for _, name := range entry.AccountNames() {
		session.sortAccount(name)
	}
	return nil
}

// ReverseEntry implements portssvc.LedgerSvcFacade.
func (s *ledgerService) ReverseEntry(ctx context.Context, userID string, entryID string) error {
	session, err := s.session(ctx, userID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.reverse(entryID)
	return nil
}

// ApplyEdit implements portssvc.LedgerSvcFacade. Reverse-then-post happens
// under one lock so no reader observes a partially-reversed ledger.
func (s *ledgerService) ApplyEdit(ctx context.Context, userID string, oldEntry, newEntry domain.JournalEntry) error {
	session, err := s.session(ctx, userID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.reverse(oldEntry.ID)
	session.post(newEntry)
	touched := append(oldEntry.AccountNames(), newEntry.AccountNames()...)
	for _, name := range touched {
		session.sortAccount(name)
	}
	return nil
}

// RegisterAccount implements portssvc.LedgerSvcFacade.
func (s *ledgerService) RegisterAccount(ctx context.Context, userID string, account domain.Account) error {
	session, err := s.session(ctx, userID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.register(account)
	return nil
}

// UnregisterAccount implements portssvc.LedgerSvcFacade.
func (s *ledgerService) UnregisterAccount(ctx context.Context, userID string, name string) error {
	session, err := s.session(ctx, userID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.unregister(name)
	return nil
}

// AccountLedger implements portssvc.LedgerSvcFacade.
func (s *ledgerService) AccountLedger(ctx context.Context, userID string, accountName string) (*domain.LedgerAccount, []decimal.Decimal, error) {
	session, err := s.session(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()

	account, ok := session.accounts[accountName]
	if !ok {
		return nil, nil, fmt.Errorf("account %q: %w", accountName, apperrors.ErrNotFound)
	}
	snapshot := copyLedgerAccount(account)
	running := accounting.RunningBalances(snapshot.AccountType, snapshot.Transactions)
	return &snapshot, running, nil
}

// Snapshot implements portssvc.LedgerSvcFacade.
func (s *ledgerService) Snapshot(ctx context.Context, userID string) ([]domain.LedgerAccount, error) {
	session, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()

	accounts := make([]domain.LedgerAccount, 0, len(session.order))
	for _, name := range session.order {
		accounts = append(accounts, copyLedgerAccount(session.accounts[name]))
	}
	return accounts, nil
}
