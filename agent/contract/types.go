package contract

type AgentType string

const (
	// AgentTypeReturns runs the return-eligibility tools.
	AgentTypeReturns AgentType = "devoluciones"
	// AgentTypeOrders answers order lookups over the retrieval index.
	AgentTypeOrders AgentType = "pedidos"
	// AgentTypeFAQ answers general store questions over the FAQ index.
	AgentTypeFAQ AgentType = "faq"
)

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult carries a tool outcome back to the agent. Result holds the
// rendered text for the conversational layer; Error is a tool-level problem
// stated as a value, not a Go error.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Document is one retrievable unit handed to the external vector index.
type Document struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
