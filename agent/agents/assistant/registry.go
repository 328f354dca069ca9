package assistant

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	"github.com/boterol/ecomarket-assistant/agent/knowledge"
	llmx "github.com/boterol/ecomarket-assistant/agent/llm"
	promptx "github.com/boterol/ecomarket-assistant/agent/prompt"
)

// Registry holds the constructed assistants by agent type.
type Registry struct {
	returns contractx.Assistant
	pedidos contractx.Assistant
	faq     contractx.Assistant
}

func (r *Registry) Returns() contractx.Assistant { return r.returns }
func (r *Registry) Pedidos() contractx.Assistant { return r.pedidos }
func (r *Registry) FAQ() contractx.Assistant     { return r.faq }

// ForType resolves an assistant by agent type.
func (r *Registry) ForType(agentType contractx.AgentType) (contractx.Assistant, bool) {
	switch agentType {
	case contractx.AgentTypeReturns:
		return r.returns, true
	case contractx.AgentTypeOrders:
		return r.pedidos, true
	case contractx.AgentTypeFAQ:
		return r.faq, true
	}
	return nil, false
}

// NewRegistry builds the three assistants: the returns agent with its tool
// catalog, and the pedidos/faq agents answering from the retrieval index.
// Each agent gets its own model so the per-agent overrides apply.
func NewRegistry(
	ctx context.Context,
	cfg llmx.Config,
	tools []*schema.ToolInfo,
	gateway contractx.ToolGateway,
	retriever contractx.Retriever,
) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	returnsModel, err := newModel(ctx, cfg, contractx.AgentTypeReturns)
	if err != nil {
		return nil, err
	}
	returnsAgent, err := New(ctx, contractx.AgentTypeReturns, returnsModel, prompts.Devoluciones, tools, gateway)
	if err != nil {
		return nil, err
	}

	pedidosModel, err := newModel(ctx, cfg, contractx.AgentTypeOrders)
	if err != nil {
		return nil, err
	}
	pedidosAgent, err := NewRetrieval(
		ctx, contractx.AgentTypeOrders, pedidosModel, prompts.Pedidos,
		retriever, knowledge.CollectionOrders, knowledge.FormatOrderHit,
	)
	if err != nil {
		return nil, err
	}

	faqModel, err := newModel(ctx, cfg, contractx.AgentTypeFAQ)
	if err != nil {
		return nil, err
	}
	faqAgent, err := NewRetrieval(
		ctx, contractx.AgentTypeFAQ, faqModel, prompts.FAQ,
		retriever, knowledge.CollectionFAQ, nil,
	)
	if err != nil {
		return nil, err
	}

	return &Registry{
		returns: returnsAgent,
		pedidos: pedidosAgent,
		faq:     faqAgent,
	}, nil
}

func newModel(ctx context.Context, cfg llmx.Config, agentType contractx.AgentType) (einomodel.ToolCallingChatModel, error) {
	modelCfg := cfg.OpenRouterFor(agentType)
	m, err := modelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrModelInvoke, agentType, err)
	}
	return m, nil
}
