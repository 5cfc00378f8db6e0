package report

import (
	"io"
	"time"

	"github.com/smartewaste/ewaste-backend/internal/models"
)

// Monthly is the aggregated content of one monthly collection report.
type Monthly struct {
	Year             int
	Month            time.Month
	GeneratedBy      string
	GeneratedAt      time.Time
	CompletedPickups int
	TotalItems       int
	UniqueUsers      int
	UniqueCollectors int
	TopItems         []ItemCount
	Rows             []models.PickupRequest
}

type ItemCount struct {
	ItemType string
	Quantity int
}

// Renderer turns an aggregated report into a page-description byte stream.
// The rendering library is an external collaborator; everything above the
// byte stream is this package's contract.
type Renderer interface {
	Render(w io.Writer, rep Monthly) error
}

// Aggregate computes the summary panels over completed requests of one
// month. Rows are expected in pickup_date order; top-item ties keep the
// order item types were first encountered during aggregation.
func Aggregate(year int, month time.Month, generatedBy string, rows []models.PickupRequest, now time.Time) Monthly {
	rep := Monthly{
		Year:             year,
		Month:            month,
		GeneratedBy:      generatedBy,
		GeneratedAt:      now,
		CompletedPickups: len(rows),
		Rows:             rows,
	}

	users := map[string]struct{}{}
	collectors := map[string]struct{}{}
	quantities := map[string]int{}
	var order []string

	for _, r := range rows {
		rep.TotalItems += r.Quantity
		users[r.UserID] = struct{}{}
		if r.CollectorID != nil {
			collectors[*r.CollectorID] = struct{}{}
		}
		if _, seen := quantities[r.ItemType]; !seen {
			order = append(order, r.ItemType)
		}
		quantities[r.ItemType] += r.Quantity
	}
	rep.UniqueUsers = len(users)
	rep.UniqueCollectors = len(collectors)
	rep.TopItems = topItems(order, quantities, 3)
	return rep
}

// topItems selects the n largest item types by summed quantity. The
// insertion sort over first-encounter order is stable, so equal quantities
// keep that order rather than falling back to alphabetical.
func topItems(order []string, quantities map[string]int, n int) []ItemCount {
	items := make([]ItemCount, 0, len(order))
	for _, name := range order {
		items = append(items, ItemCount{ItemType: name, Quantity: quantities[name]})
	}
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Quantity > items[j-1].Quantity; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// Truncate bounds a display string to max runes, using "..." when cut.
// Widths too small for the suffix cut hard instead.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
