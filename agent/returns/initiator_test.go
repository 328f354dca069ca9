package returns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	orderx "github.com/boterol/ecomarket-assistant/agent/order"
	policyx "github.com/boterol/ecomarket-assistant/agent/policy"
)

var testToday = time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

const initiatorCSV = `order_id,customer_id,product,category,price,quantity,order_date,payment_method,estado
O0001,C001,botella reutilizable,hogar,50000,2,2026-08-20,tarjeta,recibido
O0002,C001,jabon artesanal,higiene,18000,1,2026-08-20,tarjeta,recibido
O0003,C002,kit de semillas,jardin,25000,1,2026-07-01,tarjeta,recibido
O0004,C002,panel solar,electronica,320000,1,2026-08-18,tarjeta,enviado
`

type sendCall struct {
	to      string
	subject string
	html    string
}

type fakeNotifier struct {
	err   error
	calls []sendCall
	// block makes Send wait for ctx cancellation and return its error.
	block bool
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, html string) error {
	f.calls = append(f.calls, sendCall{to: to, subject: subject, html: html})
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func newTestInitiator(t *testing.T, notifier Notifier, cfg Config) *Initiator {
	t.Helper()

	store, err := orderx.LoadCSV(strings.NewReader(initiatorCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	initiator, err := NewInitiator(store, policyx.NewEngine(policyx.Config{}), notifier, cfg)
	if err != nil {
		t.Fatalf("NewInitiator() error = %v", err)
	}
	return initiator
}

func TestInitiateOrderNotFound(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	initiator := newTestInitiator(t, notifier, Config{})

	_, err := initiator.Initiate(context.Background(), "O9999", "c@x.co", "llegó roto", testToday)
	if !errors.Is(err, orderx.ErrOrderNotFound) {
		t.Fatalf("Initiate() error = %v, want ErrOrderNotFound", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatal("notifier must not be invoked for a missing order")
	}
}

func TestInitiateRejectsNonReceivedStatus(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	initiator := newTestInitiator(t, notifier, Config{})

	out, err := initiator.Initiate(context.Background(), "O0004", "c@x.co", "ya no lo quiero", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if out.Kind != OutcomeRejected || out.Reason != ReasonInvalidStatus {
		t.Fatalf("outcome = %s/%s, want rejected/invalid_status", out.Kind, out.Reason)
	}
	if len(notifier.calls) != 0 {
		t.Fatal("notifier must not be invoked on rejection")
	}
}

func TestInitiateRejectsExcludedCategory(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	initiator := newTestInitiator(t, notifier, Config{})

	out, err := initiator.Initiate(context.Background(), "O0002", "c@x.co", "no me gustó", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if out.Kind != OutcomeRejected || out.Reason != ReasonCategoryExcluded {
		t.Fatalf("outcome = %s/%s, want rejected/category_excluded", out.Kind, out.Reason)
	}
	if len(notifier.calls) != 0 {
		t.Fatal("notifier must not be invoked on rejection")
	}
}

func TestInitiateRejectsExpiredWindow(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	initiator := newTestInitiator(t, notifier, Config{})

	out, err := initiator.Initiate(context.Background(), "O0003", "c@x.co", "defectuoso", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if out.Kind != OutcomeRejected || out.Reason != ReasonWindowExpired {
		t.Fatalf("outcome = %s/%s, want rejected/window_expired", out.Kind, out.Reason)
	}
	if out.DaysSinceOrder != 53 {
		t.Fatalf("DaysSinceOrder = %d, want 53", out.DaysSinceOrder)
	}
}

func TestInitiateSendsConfirmation(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	initiator := newTestInitiator(t, notifier, Config{})

	out, err := initiator.Initiate(context.Background(), "o0001", "cliente@correo.co", "llegó roto", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if out.Kind != OutcomeSent {
		t.Fatalf("Kind = %s, want %s", out.Kind, OutcomeSent)
	}
	if out.Request == nil {
		t.Fatal("Request must be set on acceptance")
	}
	if out.Request.OrderID != "O0001" {
		t.Fatalf("Request.OrderID = %s, want O0001", out.Request.OrderID)
	}
	if out.Request.Total.String() != "100000" {
		t.Fatalf("Request.Total = %s, want 100000", out.Request.Total.String())
	}
	if out.Request.Reason != "llegó roto" {
		t.Fatalf("Request.Reason = %q", out.Request.Reason)
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(notifier.calls))
	}
	call := notifier.calls[0]
	if call.to != "cliente@correo.co" {
		t.Fatalf("to = %q", call.to)
	}
	if !strings.Contains(call.subject, "O0001") {
		t.Fatalf("subject should carry the order id, got %q", call.subject)
	}
	if !strings.Contains(call.html, "$100,000 COP") {
		t.Fatalf("body should carry the refund total, got %q", call.html)
	}
	if !strings.Contains(call.html, "llegó roto") {
		t.Fatal("body should carry the return reason")
	}
}

func TestInitiateDowngradesNotificationFailure(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{err: fmt.Errorf("smtp 550")}
	initiator := newTestInitiator(t, notifier, Config{})

	out, err := initiator.Initiate(context.Background(), "O0001", "c@x.co", "defectuoso", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v, notification failures must not propagate", err)
	}
	if out.Kind != OutcomeSentNotificationFailed {
		t.Fatalf("Kind = %s, want %s", out.Kind, OutcomeSentNotificationFailed)
	}
	if out.AuthFailure {
		t.Fatal("generic failure must not be flagged as auth")
	}
	if out.Request == nil {
		t.Fatal("request stays accepted on notification failure")
	}
}

func TestInitiateFlagsAuthenticationFailure(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{err: fmt.Errorf("%w: status=401", ErrAuthentication)}
	initiator := newTestInitiator(t, notifier, Config{})

	out, err := initiator.Initiate(context.Background(), "O0001", "c@x.co", "defectuoso", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if out.Kind != OutcomeSentNotificationFailed {
		t.Fatalf("Kind = %s, want %s", out.Kind, OutcomeSentNotificationFailed)
	}
	if !out.AuthFailure {
		t.Fatal("auth failure must be flagged")
	}
}

func TestInitiateTimesOutSlowNotifier(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{block: true}
	initiator := newTestInitiator(t, notifier, Config{NotifyTimeout: 10 * time.Millisecond})

	out, err := initiator.Initiate(context.Background(), "O0001", "c@x.co", "defectuoso", testToday)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if out.Kind != OutcomeSentNotificationFailed {
		t.Fatalf("Kind = %s, want %s", out.Kind, OutcomeSentNotificationFailed)
	}
}
