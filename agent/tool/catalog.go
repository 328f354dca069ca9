package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	orderx "github.com/boterol/ecomarket-assistant/agent/order"
	policyx "github.com/boterol/ecomarket-assistant/agent/policy"
	returnsx "github.com/boterol/ecomarket-assistant/agent/returns"
)

const (
	ToolReturnsEvaluate = "returns.evaluate"
	ToolOrdersSearch    = "orders.search"
	ToolReturnsInitiate = "returns.initiate"
)

// Deps are the core collaborators the tool executors run against. Now is an
// explicit clock so executions stay deterministic under test.
type Deps struct {
	Store     *orderx.Store
	Policy    *policyx.Engine
	Initiator *returnsx.Initiator
	Now       func() time.Time
}

func (d Deps) validate() error {
	if d.Store == nil {
		return errors.New("order store is required")
	}
	if d.Policy == nil {
		return errors.New("policy engine is required")
	}
	if d.Initiator == nil {
		return errors.New("return initiator is required")
	}
	return nil
}

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// BuildForAgent returns the tool catalog and executor for one agent type.
// Only the returns agent carries tools; the lookup and FAQ agents are
// retrieval-only.
func BuildForAgent(agentType contractx.AgentType, deps Deps) ([]*schema.ToolInfo, Executor, error) {
	executor, err := NewExecutor(agentType, deps)
	if err != nil {
		return nil, nil, err
	}
	return InfosForAgent(agentType), executor, nil
}

func NewExecutor(agentType contractx.AgentType, deps Deps) (Executor, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	fallback := DefaultExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if agentType != contractx.AgentTypeReturns {
			return fallback(ctx, tool, args)
		}
		switch tool {
		case ToolReturnsEvaluate:
			return executeEvaluate(deps, tool, args)
		case ToolOrdersSearch:
			return executeSearch(deps, tool, args)
		case ToolReturnsInitiate:
			return executeInitiate(ctx, deps, tool, args)
		default:
			return fallback(ctx, tool, args)
		}
	}, nil
}

// DefaultExecutor answers every tool as unavailable for the agent.
func DefaultExecutor(agentType contractx.AgentType) Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", tool, agentType),
		}, nil
	}
}

// InfosForAgent is the eino tool catalog exposed to one agent's model.
func InfosForAgent(agentType contractx.AgentType) []*schema.ToolInfo {
	if agentType != contractx.AgentTypeReturns {
		return nil
	}
	return []*schema.ToolInfo{
		{
			Name: ToolReturnsEvaluate,
			Desc: "Evalúa si un pedido es elegible para devolución usando el order_id. " +
				"Verifica estado, categoría, tiempo desde compra y método de pago.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {Type: schema.String, Desc: "ID del pedido (ej: 'O0001')", Required: true},
			}),
		},
		{
			Name: ToolOrdersSearch,
			Desc: "Busca todos los pedidos de un cliente usando su customer_id. " +
				"Útil cuando el usuario no conoce su order_id o quiere ver su historial.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {Type: schema.String, Desc: "ID del cliente (ej: 'C001')", Required: true},
			}),
		},
		{
			Name: ToolReturnsInitiate,
			Desc: "Inicia una solicitud de devolución enviando un email de confirmación al cliente. " +
				"Usar solo después de verificar elegibilidad con returns.evaluate.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id":       {Type: schema.String, Desc: "ID del pedido (ej: 'O0001')", Required: true},
				"customer_email": {Type: schema.String, Desc: "Email del cliente", Required: true},
				"reason":         {Type: schema.String, Desc: "Motivo de la devolución", Required: true},
			}),
		},
	}
}

// Gateway dispatches tool requests per agent type. It is the
// contract.ToolGateway the assistants talk to.
type Gateway struct {
	executors map[contractx.AgentType]Executor
}

func NewGateway(deps Deps) (*Gateway, error) {
	executors := make(map[contractx.AgentType]Executor, 3)
	for _, at := range []contractx.AgentType{
		contractx.AgentTypeReturns,
		contractx.AgentTypeOrders,
		contractx.AgentTypeFAQ,
	} {
		executor, err := NewExecutor(at, deps)
		if err != nil {
			return nil, err
		}
		executors[at] = executor
	}
	return &Gateway{executors: executors}, nil
}

func (g *Gateway) Execute(ctx context.Context, agentType contractx.AgentType, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	executor, ok := g.executors[agentType]
	if !ok {
		executor = DefaultExecutor(agentType)
	}

	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		res, err := executor(ctx, req.Tool, req.Args)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

var _ contractx.ToolGateway = (*Gateway)(nil)
