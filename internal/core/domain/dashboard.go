package domain

import "github.com/shopspring/decimal"

// StatusColors is the chart palette for each status.
var StatusColors = map[InvoiceStatus]string{
	StatusDraft:   "#94a3b8",
	StatusSent:    "#3b82f6",
	StatusPaid:    "#22c55e",
	StatusOverdue: "#ef4444",
}

// StatusCounts tallies invoices per status. Statuses with no invoices are
// absent from the result rather than present with a zero count.
func StatusCounts(invoices []Invoice) map[InvoiceStatus]int {
	counts := make(map[InvoiceStatus]int)
	for _, inv := range invoices {
		counts[inv.Status]++
	}
	return counts
}

// StatusSlice is one segment of the status chart.
type StatusSlice struct {
	Status InvoiceStatus `json:"status"`
	Count  int           `json:"count"`
	Color  string        `json:"color"`
}

// StatusBreakdown returns the non-zero status counts as chart segments in
// canonical status order. Unknown statuses found in stored data follow the
// known ones, in first-seen order, with an empty color.
func StatusBreakdown(invoices []Invoice) []StatusSlice {
	counts := StatusCounts(invoices)
	slices := make([]StatusSlice, 0, len(counts))
	for _, s := range AllStatuses {
		if n := counts[s]; n > 0 {
			slices = append(slices, StatusSlice{Status: s, Count: n, Color: StatusColors[s]})
		}
	}
	seen := make(map[InvoiceStatus]bool)
	for _, inv := range invoices {
		if inv.Status.IsValid() || seen[inv.Status] {
			continue
		}
		seen[inv.Status] = true
		slices = append(slices, StatusSlice{Status: inv.Status, Count: counts[inv.Status]})
	}
	return slices
}

// DashboardSummary is the pre-aggregated view of the collection that the
// insight collaborator reasons about. Every figure is restricted to the
// dominant currency.
type DashboardSummary struct {
	Currency     string
	InvoiceCount int
	StatusCounts map[InvoiceStatus]int
	PaidTotal    decimal.Decimal
	UnpaidTotal  decimal.Decimal // Sent + Overdue
}

// DominantCurrency returns the currency used by the most invoices.
// On a tie the currency whose first appearance comes later wins.
// ok is false only for an empty collection.
func DominantCurrency(invoices []Invoice) (code string, ok bool) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, inv := range invoices {
		if _, seen := counts[inv.Currency]; !seen {
			order = append(order, inv.Currency)
		}
		counts[inv.Currency]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, c := range order[1:] {
		if counts[best] <= counts[c] {
			best = c
		}
	}
	return best, true
}

// SummarizeForDashboard aggregates the invoices that share the dominant
// currency. ok is false when the collection is empty.
func SummarizeForDashboard(invoices []Invoice) (DashboardSummary, bool) {
	currency, ok := DominantCurrency(invoices)
	if !ok {
		return DashboardSummary{}, false
	}

	summary := DashboardSummary{
		Currency:     currency,
		StatusCounts: make(map[InvoiceStatus]int),
		PaidTotal:    decimal.Zero,
		UnpaidTotal:  decimal.Zero,
	}
	for _, inv := range invoices {
		if inv.Currency != currency {
			continue
		}
		summary.InvoiceCount++
		summary.StatusCounts[inv.Status]++
		switch inv.Status {
		case StatusPaid:
			summary.PaidTotal = summary.PaidTotal.Add(inv.Total())
		case StatusSent, StatusOverdue:
			summary.UnpaidTotal = summary.UnpaidTotal.Add(inv.Total())
		}
	}
	return summary, true
}
