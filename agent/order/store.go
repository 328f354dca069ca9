package order

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDataLoad      = errors.New("order data load failed")
	ErrOrderNotFound = errors.New("order not found")
	ErrNoOrders      = errors.New("customer has no orders")
)

// requiredColumns must all be present in the source header. Header names are
// matched case-insensitively after trimming.
var requiredColumns = []string{
	"order_id",
	"customer_id",
	"product",
	"category",
	"price",
	"quantity",
	"order_date",
	"payment_method",
	"estado",
}

// Accepted order_date layouts. Exports from the store's back office have used
// all three at some point.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

// Store is the in-memory order table. It is loaded once at startup and never
// mutated afterwards, so it may be shared across goroutines without locking.
type Store struct {
	records []Record
	byOrder map[string]int
}

// LoadCSV ingests the orders file, normalizing string fields and parsing
// dates and amounts. Any malformed row or missing column is an ErrDataLoad;
// callers are expected to abort startup on it.
func LoadCSV(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrDataLoad, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDataLoad, name)
		}
	}

	st := &Store{
		byOrder: make(map[string]int),
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataLoad, line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataLoad, line, err)
		}

		st.records = append(st.records, rec)
		// First occurrence wins; duplicate order ids are a data-integrity
		// issue upstream, not something the store resolves.
		if _, exists := st.byOrder[rec.OrderID]; !exists {
			st.byOrder[rec.OrderID] = len(st.records) - 1
		}
	}

	return st, nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	price, err := parsePrice(field("price"))
	if err != nil {
		return Record{}, err
	}

	quantity, err := parseQuantity(field("quantity"))
	if err != nil {
		return Record{}, err
	}

	orderDate, err := parseDate(field("order_date"))
	if err != nil {
		return Record{}, err
	}

	return Record{
		OrderID:       strings.ToUpper(strings.TrimSpace(field("order_id"))),
		CustomerID:    strings.ToUpper(strings.TrimSpace(field("customer_id"))),
		Product:       strings.ToLower(strings.TrimSpace(field("product"))),
		Category:      strings.ToLower(strings.TrimSpace(field("category"))),
		Price:         price,
		Quantity:      quantity,
		OrderDate:     orderDate,
		PaymentMethod: strings.TrimSpace(field("payment_method")),
		Status:        strings.ToLower(strings.TrimSpace(field("estado"))),
	}, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("column price: invalid value %q", raw)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("column price: negative value %q", raw)
	}
	return price, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("column quantity: invalid value %q", raw)
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("column quantity: must be positive, got %d", quantity)
	}
	return quantity, nil
}

func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column order_date: unparseable date %q", raw)
}

// Len reports how many records the store holds.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns the records in file order. The returned slice is shared; the
// store is read-only, so callers must not modify it.
func (s *Store) All() []Record {
	return s.records
}

// FindByOrderID resolves an order id to its record. The input is trimmed and
// uppercased before the exact match, so lookups are case-insensitive.
func (s *Store) FindByOrderID(orderID string) (Record, error) {
	canonical := strings.ToUpper(strings.TrimSpace(orderID))
	idx, ok := s.byOrder[canonical]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrOrderNotFound, canonical)
	}
	return s.records[idx], nil
}

// FindByCustomerID returns every order owned by the customer, in file order.
// The result is nil when the customer has none.
func (s *Store) FindByCustomerID(customerID string) []Record {
	canonical := strings.ToUpper(strings.TrimSpace(customerID))

	var matches []Record
	for _, rec := range s.records {
		if rec.CustomerID == canonical {
			matches = append(matches, rec)
		}
	}
	return matches
}
