package policy

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	orderx "github.com/boterol/ecomarket-assistant/agent/order"
)

// Outcome is the kind of an eligibility verdict. Rejections and review flags
// are ordinary values, never errors.
type Outcome string

const (
	OutcomeAlreadyReturned    Outcome = "already_returned"
	OutcomeNotShipped         Outcome = "not_shipped"
	OutcomeInTransit          Outcome = "in_transit"
	OutcomeCategoryExcluded   Outcome = "category_excluded"
	OutcomeWindowExpired      Outcome = "window_expired"
	OutcomePersonalizedReview Outcome = "personalized_review"
	OutcomeCashPaymentReview  Outcome = "cash_payment_review"
	OutcomeEligible           Outcome = "eligible"
)

// Verdict is the structured result of one eligibility evaluation.
// DaysSinceOrder is only meaningful once the rule chain has reached the
// purchase-window check; Total only for outcomes that refund.
type Verdict struct {
	Outcome        Outcome
	Order          orderx.Record
	DaysSinceOrder int
	Total          decimal.Decimal
}

// Config holds the return policy knobs. Defaults reflect the store policy:
// 30-day window, hygiene/software/gift cards never returnable, personalized
// items and cash payments flagged for manual review.
type Config struct {
	ReturnWindowDays        int      `envconfig:"RETURN_WINDOW_DAYS" split_words:"true" default:"30"`
	NonReturnableCategories []string `envconfig:"NON_RETURNABLE_CATEGORIES" split_words:"true" default:"higiene,software,tarjetas de regalo"`
	ReviewCategory          string   `envconfig:"REVIEW_CATEGORY" split_words:"true" default:"personalizado"`
	CashPaymentMethod       string   `envconfig:"CASH_PAYMENT_METHOD" split_words:"true" default:"efectivo"`
}

// DefaultConfig returns the documented store policy.
func DefaultConfig() Config {
	return Config{
		ReturnWindowDays:        30,
		NonReturnableCategories: []string{"higiene", "software", "tarjetas de regalo"},
		ReviewCategory:          "personalizado",
		CashPaymentMethod:       "efectivo",
	}
}

// Engine evaluates orders against the return policy. It is pure: the clock
// is an explicit argument and no state is shared across calls.
type Engine struct {
	windowDays     int
	excluded       map[string]struct{}
	reviewCategory string
	cashMethod     string
}

func NewEngine(cfg Config) *Engine {
	defaults := DefaultConfig()
	if cfg.ReturnWindowDays <= 0 {
		cfg.ReturnWindowDays = defaults.ReturnWindowDays
	}
	if len(cfg.NonReturnableCategories) == 0 {
		cfg.NonReturnableCategories = defaults.NonReturnableCategories
	}
	if strings.TrimSpace(cfg.ReviewCategory) == "" {
		cfg.ReviewCategory = defaults.ReviewCategory
	}
	if strings.TrimSpace(cfg.CashPaymentMethod) == "" {
		cfg.CashPaymentMethod = defaults.CashPaymentMethod
	}

	excluded := make(map[string]struct{}, len(cfg.NonReturnableCategories))
	for _, cat := range cfg.NonReturnableCategories {
		excluded[normalizeCategory(cat)] = struct{}{}
	}

	return &Engine{
		windowDays:     cfg.ReturnWindowDays,
		excluded:       excluded,
		reviewCategory: normalizeCategory(cfg.ReviewCategory),
		cashMethod:     strings.TrimSpace(cfg.CashPaymentMethod),
	}
}

// Evaluate maps one order to its eligibility verdict, applying the policy
// rules in strict order: the first matching rule wins and later rules are
// never reached. The ordering is the policy itself — a returned order in an
// excluded category reports "already returned", not the exclusion.
//
// An order whose status is outside the known set falls through the status
// rules and is evaluated on category and window alone.
func (e *Engine) Evaluate(rec orderx.Record, today time.Time) Verdict {
	switch rec.Status {
	case orderx.StatusReturned:
		return Verdict{Outcome: OutcomeAlreadyReturned, Order: rec}
	case orderx.StatusNotShipped:
		return Verdict{Outcome: OutcomeNotShipped, Order: rec}
	case orderx.StatusShipped:
		return Verdict{Outcome: OutcomeInTransit, Order: rec}
	}

	if e.CategoryExcluded(rec.Category) {
		return Verdict{Outcome: OutcomeCategoryExcluded, Order: rec}
	}

	days := orderx.DaysBetween(rec.OrderDate, today)
	if e.WindowExpired(days) {
		return Verdict{Outcome: OutcomeWindowExpired, Order: rec, DaysSinceOrder: days}
	}

	if normalizeCategory(rec.Category) == e.reviewCategory {
		return Verdict{Outcome: OutcomePersonalizedReview, Order: rec, DaysSinceOrder: days}
	}

	if rec.PaidWith(e.cashMethod) {
		return Verdict{
			Outcome:        OutcomeCashPaymentReview,
			Order:          rec,
			DaysSinceOrder: days,
			Total:          rec.Total(),
		}
	}

	return Verdict{
		Outcome:        OutcomeEligible,
		Order:          rec,
		DaysSinceOrder: days,
		Total:          rec.Total(),
	}
}

// CategoryExcluded reports whether the category never admits returns. Shared
// with the return request initiator so both rule sets stay consistent.
func (e *Engine) CategoryExcluded(category string) bool {
	_, ok := e.excluded[normalizeCategory(category)]
	return ok
}

// WindowExpired reports whether a purchase this many days old is outside the
// return window.
func (e *Engine) WindowExpired(days int) bool {
	return days > e.windowDays
}

// WindowDays exposes the configured window length for user-facing messages.
func (e *Engine) WindowDays() int {
	return e.windowDays
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
