package contract

import "context"

// Assistant is one conversational agent: user text in, reply text out.
type Assistant interface {
	Handle(ctx context.Context, message string) (string, error)
}

// ToolGateway executes tool requests on behalf of an agent, enforcing which
// tools the agent may call.
type ToolGateway interface {
	Execute(ctx context.Context, agentType AgentType, reqs []ToolRequest) ([]ToolResult, error)
}

// Retriever is the external vector-index collaborator. Index internals are
// out of scope here; the assistant only depends on this contract.
type Retriever interface {
	Retrieve(ctx context.Context, collection, query string, topK int) ([]Document, error)
}
