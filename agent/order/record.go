package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Order status values the return policy cares about. The source data may
// carry other values; those are kept verbatim and not special-cased here.
const (
	StatusReturned   = "devuelto"
	StatusNotShipped = "sin enviar"
	StatusShipped    = "enviado"
	StatusReceived   = "recibido"
)

// Record is one purchase row from the orders file. String fields are stored
// in canonical form: IDs uppercase, product/category/status lowercase and
// trimmed. OrderDate carries no meaningful time-of-day component.
type Record struct {
	OrderID       string
	CustomerID    string
	Product       string
	Category      string
	Price         decimal.Decimal
	Quantity      int
	OrderDate     time.Time
	PaymentMethod string
	Status        string
}

// Total is the refundable amount for the full line: price * quantity.
func (r Record) Total() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// DisplayProduct returns the product name title-cased for user-facing text.
// Internal comparisons always use the lowercase Product field. The caser is
// built per call: x/text casers carry state and must not be shared across
// goroutines.
func (r Record) DisplayProduct() string {
	return cases.Title(language.Spanish).String(r.Product)
}

// PaidWith reports whether the order was paid with the given method,
// compared case-insensitively.
func (r Record) PaidWith(method string) bool {
	return strings.EqualFold(strings.TrimSpace(r.PaymentMethod), strings.TrimSpace(method))
}

// DaysBetween counts whole calendar days from one date to another. Both
// arguments are truncated to their date before subtracting, so time-of-day
// and zone offsets within a day never shift the count.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
