package services

import (
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
)

// NewServicesContainer wires the engine: registry, validator, ledger poster,
// journal lifecycle and report generator over the given stores.
func NewServicesContainer(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) *portssvc.ServicesContainer {
	ledgerSvc := NewLedgerService(accountRepo, journalRepo)
	accountSvc := NewAccountService(accountRepo, ledgerSvc)
	validator := NewEntryValidator(accountSvc)
	journalSvc := NewJournalService(journalRepo, validator, ledgerSvc)
	reportingSvc := NewReportingService(ledgerSvc)

	return &portssvc.ServicesContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
	}
}
