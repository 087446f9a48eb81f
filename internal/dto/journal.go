package dto

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one leg of a submitted entry. Amounts default to
// zero when omitted; negative amounts are rejected by the service.
type JournalLineRequest struct {
	AccountName string          `json:"accountName" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0"`
}

// CreateJournalEntryRequest defines the payload for recording an entry.
// ID is optional; the service assigns a time-derived one when blank.
// NewAccounts carries the caller's answer to the new-account categorization
// step: a type for every line account not yet in the registry.
type CreateJournalEntryRequest struct {
	ID          string                        `json:"id"`
	Date        time.Time                     `json:"date" binding:"required"`
	Description string                        `json:"description"`
	Lines       []JournalLineRequest          `json:"lines" binding:"required,min=2,dive"`
	NewAccounts map[string]domain.AccountType `json:"newAccounts"`
}

// UpdateJournalEntryRequest carries the full replacement for an edited
// entry. The entry ID stays stable across edits and comes from the URL.
type UpdateJournalEntryRequest struct {
	Date        time.Time                     `json:"date" binding:"required"`
	Description string                        `json:"description"`
	Lines       []JournalLineRequest          `json:"lines" binding:"required,min=2,dive"`
	NewAccounts map[string]domain.AccountType `json:"newAccounts"`
}

// JournalLineResponse mirrors a stored journal line.
type JournalLineResponse struct {
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID          string                `json:"id"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Lines       []JournalLineResponse `json:"lines"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ListJournalEntriesResponse wraps a list of entries.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToDomainLines converts request lines into domain journal lines.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalLine{AccountName: l.AccountName, Debit: l.Debit, Credit: l.Credit}
	}
	return out
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{AccountName: l.AccountName, Debit: l.Debit, Credit: l.Credit}
	}
	return JournalEntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Lines:       lines,
		TotalDebit:  e.TotalDebit(),
		TotalCredit: e.TotalCredit(),
		CreatedAt:   e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
