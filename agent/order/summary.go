package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Summary is one line of a customer's order report.
type Summary struct {
	OrderID        string
	Product        string
	Status         string
	Total          decimal.Decimal
	OrderDate      time.Time
	DaysSinceOrder int
}

// SummarizeOrders aggregates every order owned by the customer into report
// lines, preserving the store's return order. A customer with zero orders is
// ErrNoOrders, not an empty report.
func (s *Store) SummarizeOrders(customerID string, today time.Time) ([]Summary, error) {
	records := s.FindByCustomerID(customerID)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoOrders, strings.ToUpper(strings.TrimSpace(customerID)))
	}

	summaries := make([]Summary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, Summary{
			OrderID:        rec.OrderID,
			Product:        rec.Product,
			Status:         rec.Status,
			Total:          rec.Total(),
			OrderDate:      rec.OrderDate,
			DaysSinceOrder: DaysBetween(rec.OrderDate, today),
		})
	}
	return summaries, nil
}
