package returns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	orderx "github.com/boterol/ecomarket-assistant/agent/order"
	policyx "github.com/boterol/ecomarket-assistant/agent/policy"
)

// ErrAuthentication marks notification failures caused by rejected sender
// credentials. Notifier implementations wrap auth failures so the outcome
// can tell them apart from generic delivery problems.
var ErrAuthentication = errors.New("notification authentication failed")

// Notifier delivers the return confirmation to the customer. The transport
// (email, SMS, ticketing) is the implementation's business.
type Notifier interface {
	Send(ctx context.Context, to, subject, html string) error
}

type OutcomeKind string

const (
	// OutcomeSent: request accepted and confirmation delivered.
	OutcomeSent OutcomeKind = "sent"
	// OutcomeSentNotificationFailed: request accepted, confirmation not
	// delivered. The return itself still proceeds.
	OutcomeSentNotificationFailed OutcomeKind = "sent_notification_failed"
	// OutcomeRejected: one of the preconditions failed; nothing was sent.
	OutcomeRejected OutcomeKind = "rejected"
)

type RejectReason string

const (
	ReasonInvalidStatus    RejectReason = "invalid_status"
	ReasonCategoryExcluded RejectReason = "category_excluded"
	ReasonWindowExpired    RejectReason = "window_expired"
)

// Request is the return-request record handed to the notification
// collaborator. Built fresh per call, never persisted.
type Request struct {
	OrderID   string
	Product   string
	Quantity  int
	Total     decimal.Decimal
	OrderDate time.Time
	Reason    string
}

// Outcome is the caller-visible result of an initiation attempt.
type Outcome struct {
	Kind           OutcomeKind
	Reason         RejectReason
	Request        *Request
	Order          orderx.Record
	Email          string
	DaysSinceOrder int
	// AuthFailure is set when the notification failed because the sender
	// credentials were rejected.
	AuthFailure bool
}

type Config struct {
	NotifyTimeout time.Duration `envconfig:"NOTIFY_TIMEOUT" split_words:"true" default:"15s"`
}

// Initiator re-validates an order with the stricter initiation rules and, if
// they pass, dispatches the confirmation through the notifier. Only orders
// confirmed received may start a return, regardless of what the advisory
// eligibility chain would say.
type Initiator struct {
	store    *orderx.Store
	policy   *policyx.Engine
	notifier Notifier
	timeout  time.Duration
}

func NewInitiator(store *orderx.Store, engine *policyx.Engine, notifier Notifier, cfg Config) (*Initiator, error) {
	if store == nil {
		return nil, errors.New("order store is required")
	}
	if engine == nil {
		return nil, errors.New("policy engine is required")
	}
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}

	timeout := cfg.NotifyTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Initiator{
		store:    store,
		policy:   engine,
		notifier: notifier,
		timeout:  timeout,
	}, nil
}

// Initiate looks the order up, applies the initiation preconditions in order
// (status, category, window), and on success sends the confirmation email.
// A missing order is an error; every precondition failure is a Rejected
// outcome; notification failures are downgraded to
// OutcomeSentNotificationFailed because the request itself remains valid.
func (i *Initiator) Initiate(ctx context.Context, orderID, customerEmail, reason string, today time.Time) (Outcome, error) {
	rec, err := i.store.FindByOrderID(orderID)
	if err != nil {
		return Outcome{}, err
	}

	if rec.Status != orderx.StatusReceived {
		return Outcome{Kind: OutcomeRejected, Reason: ReasonInvalidStatus, Order: rec}, nil
	}

	if i.policy.CategoryExcluded(rec.Category) {
		return Outcome{Kind: OutcomeRejected, Reason: ReasonCategoryExcluded, Order: rec}, nil
	}

	days := orderx.DaysBetween(rec.OrderDate, today)
	if i.policy.WindowExpired(days) {
		return Outcome{
			Kind:           OutcomeRejected,
			Reason:         ReasonWindowExpired,
			Order:          rec,
			DaysSinceOrder: days,
		}, nil
	}

	req := &Request{
		OrderID:   rec.OrderID,
		Product:   rec.Product,
		Quantity:  rec.Quantity,
		Total:     rec.Total(),
		OrderDate: rec.OrderDate,
		Reason:    reason,
	}

	outcome := Outcome{
		Kind:           OutcomeSent,
		Request:        req,
		Order:          rec,
		Email:          customerEmail,
		DaysSinceOrder: days,
	}

	subject := fmt.Sprintf("Solicitud de Devolución - Pedido %s", rec.OrderID)
	body := renderConfirmationEmail(rec, req)

	sendCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	if err := i.notifier.Send(sendCtx, customerEmail, subject, body); err != nil {
		outcome.Kind = OutcomeSentNotificationFailed
		outcome.AuthFailure = errors.Is(err, ErrAuthentication)
		log.Warn().
			Err(err).
			Str("order_id", rec.OrderID).
			Bool("auth_failure", outcome.AuthFailure).
			Msg("return confirmation not delivered; request stays accepted")
	}

	return outcome, nil
}
