package tool

import (
	"context"
	"strings"
	"testing"
	"time"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	orderx "github.com/boterol/ecomarket-assistant/agent/order"
	policyx "github.com/boterol/ecomarket-assistant/agent/policy"
	returnsx "github.com/boterol/ecomarket-assistant/agent/returns"
)

var testToday = time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

const toolCSV = `order_id,customer_id,product,category,price,quantity,order_date,payment_method,estado
O0001,C001,botella reutilizable,hogar,50000,2,2026-08-20,efectivo,recibido
O0002,C001,jabon artesanal,higiene,18000,1,2026-08-20,tarjeta,recibido
O0008,C004,compostera casera,jardin,150000,1,2026-07-01,tarjeta,devuelto
O0009,C005,kit de semillas,jardin,25000,2,2026-08-20,tarjeta,enviado
`

type noopNotifier struct {
	calls int
}

func (n *noopNotifier) Send(ctx context.Context, to, subject, html string) error {
	n.calls++
	return nil
}

func testDeps(t *testing.T, notifier returnsx.Notifier) Deps {
	t.Helper()

	store, err := orderx.LoadCSV(strings.NewReader(toolCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	engine := policyx.NewEngine(policyx.Config{})

	initiator, err := returnsx.NewInitiator(store, engine, notifier, returnsx.Config{})
	if err != nil {
		t.Fatalf("NewInitiator() error = %v", err)
	}

	return Deps{
		Store:     store,
		Policy:    engine,
		Initiator: initiator,
		Now:       func() time.Time { return testToday },
	}
}

func resultText(t *testing.T, res contractx.ToolResult) string {
	t.Helper()
	if res.Error != "" {
		t.Fatalf("unexpected tool error: %s", res.Error)
	}
	text, ok := res.Result.(string)
	if !ok {
		t.Fatalf("unexpected result type: %T", res.Result)
	}
	return text
}

func TestBuildForAgentReturns(t *testing.T) {
	t.Parallel()

	infos, executor, err := BuildForAgent(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("BuildForAgent() error = %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 tool infos, got %d", len(infos))
	}
	if infos[0].Name != ToolReturnsEvaluate {
		t.Fatalf("unexpected first tool: %s", infos[0].Name)
	}
	if executor == nil {
		t.Fatal("executor must not be nil")
	}
}

func TestBuildForAgentRetrievalAgentsHaveNoTools(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, &noopNotifier{})
	for _, at := range []contractx.AgentType{contractx.AgentTypeOrders, contractx.AgentTypeFAQ} {
		infos, executor, err := BuildForAgent(at, deps)
		if err != nil {
			t.Fatalf("BuildForAgent(%s) error = %v", at, err)
		}
		if infos != nil {
			t.Fatalf("agent %s should have no tools, got %d", at, len(infos))
		}

		out, err := executor(context.Background(), ToolReturnsEvaluate, map[string]any{"order_id": "O0001"})
		if err != nil {
			t.Fatalf("executor error = %v", err)
		}
		if out.Error == "" {
			t.Fatalf("agent %s must report tools unavailable", at)
		}
	}
}

func TestExecuteEvaluateAlreadyReturned(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolReturnsEvaluate, map[string]any{"order_id": "o0008"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "O0008") || !strings.Contains(text, "ya fue devuelto") {
		t.Fatalf("unexpected message: %q", text)
	}
}

func TestExecuteEvaluateCashReview(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolReturnsEvaluate, map[string]any{"order_id": "O0001"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "revisión manual") {
		t.Fatalf("cash payment must flag manual review, got %q", text)
	}
	if !strings.Contains(text, "$100,000 COP") {
		t.Fatalf("message must carry the refund total, got %q", text)
	}
}

func TestExecuteEvaluateOrderNotFound(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolReturnsEvaluate, map[string]any{"order_id": "O9999"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "No se encontró el pedido O9999") {
		t.Fatalf("unexpected message: %q", text)
	}
}

func TestExecuteEvaluateMissingArg(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolReturnsEvaluate, map[string]any{})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.Error == "" {
		t.Fatal("missing order_id must surface as a tool error")
	}
}

func TestExecuteSearchRendersReport(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolOrdersSearch, map[string]any{"customer_id": "c001"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "Pedidos del cliente C001") {
		t.Fatalf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "O0001") || !strings.Contains(text, "O0002") {
		t.Fatalf("report must list both orders, got %q", text)
	}
	if !strings.Contains(text, "hace 3 días") {
		t.Fatalf("report must carry days since order, got %q", text)
	}
}

func TestExecuteSearchNoOrders(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolOrdersSearch, map[string]any{"customer_id": "C999"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "No se encontraron pedidos para el cliente C999") {
		t.Fatalf("unexpected message: %q", text)
	}
}

func TestExecuteInitiateRejectedInTransitSkipsNotifier(t *testing.T) {
	t.Parallel()

	notifier := &noopNotifier{}
	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, notifier))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolReturnsInitiate, map[string]any{
		"order_id":       "O0009",
		"customer_email": "c@x.co",
		"reason":         "ya no lo quiero",
	})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "no está en estado 'recibido'") {
		t.Fatalf("unexpected message: %q", text)
	}
	if notifier.calls != 0 {
		t.Fatal("notifier must never be invoked for a rejected initiation")
	}
}

func TestExecuteInitiateSuccess(t *testing.T) {
	t.Parallel()

	notifier := &noopNotifier{}
	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, notifier))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), ToolReturnsInitiate, map[string]any{
		"order_id":       "O0001",
		"customer_email": "cliente@correo.co",
		"reason":         "llegó roto",
	})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	text := resultText(t, out)
	if !strings.Contains(text, "iniciada exitosamente") {
		t.Fatalf("unexpected message: %q", text)
	}
	if !strings.Contains(text, "cliente@correo.co") {
		t.Fatalf("message must echo the recipient, got %q", text)
	}
	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d, want 1", notifier.calls)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	t.Parallel()

	executor, err := NewExecutor(contractx.AgentTypeReturns, testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	out, err := executor(context.Background(), "math.evaluate", map[string]any{"expression": "1+1"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.Error == "" {
		t.Fatal("unknown tool must report unavailable")
	}
}

func TestGatewayExecutesRequestsInOrder(t *testing.T) {
	t.Parallel()

	gateway, err := NewGateway(testDeps(t, &noopNotifier{}))
	if err != nil {
		t.Fatalf("NewGateway() error = %v", err)
	}

	results, err := gateway.Execute(context.Background(), contractx.AgentTypeReturns, []contractx.ToolRequest{
		{Tool: ToolReturnsEvaluate, Args: map[string]any{"order_id": "O0008"}},
		{Tool: ToolOrdersSearch, Args: map[string]any{"customer_id": "C001"}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Tool != ToolReturnsEvaluate || results[1].Tool != ToolOrdersSearch {
		t.Fatalf("results out of order: %s, %s", results[0].Tool, results[1].Tool)
	}
}
