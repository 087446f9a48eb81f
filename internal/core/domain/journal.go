package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tolerance is the epsilon used for every monetary comparison in the engine.
// Money is never compared with exact equality.
var Tolerance = decimal.RequireFromString("0.01")

// AmountsEqual reports whether two monetary amounts agree within Tolerance.
func AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// IsZeroAmount reports whether a monetary amount is zero within Tolerance.
func IsZeroAmount(a decimal.Decimal) bool {
	return a.Abs().LessThan(Tolerance)
}

// JournalLine is one leg of a journal entry, referencing an account by name.
// Debit and credit are both non-negative; the engine sums whichever is
// present and does not assume only one side is set.
type JournalLine struct {
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntry is a single financial event composed of at least two lines.
// The ID is caller-assigned and stable across edits of the same logical entry.
type JournalEntry struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// TotalDebit sums the debit side of all lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether total debits equal total credits within
// Tolerance. This must hold before an entry is posted.
func (e *JournalEntry) IsBalanced() bool {
	return AmountsEqual(e.TotalDebit(), e.TotalCredit())
}

// AccountNames returns the distinct account names referenced by the entry's
// lines, in first-appearance order.
func (e *JournalEntry) AccountNames() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	names := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountName]; ok {
			continue
		}
		seen[l.AccountName] = struct{}{}
		names = append(names, l.AccountName)
	}
	return names
}
