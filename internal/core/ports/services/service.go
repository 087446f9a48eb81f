package services

// ServicesContainer bundles the service facades handed to the HTTP layer.
type ServicesContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
}
