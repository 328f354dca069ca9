package assistant

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
)

const retrievalTopK = 3

// RetrievalAssistant answers from indexed documents: retrieve context for the
// user's question, then let the model answer grounded on that context. The
// pedidos and faq agents are both instances of it, differing only in
// collection and hit formatting.
type RetrievalAssistant struct {
	agentType  contractx.AgentType
	runner     compose.Runnable[map[string]any, *schema.Message]
	retriever  contractx.Retriever
	collection string
	topK       int
	formatHit  func(contractx.Document) string
}

var _ contractx.Assistant = (*RetrievalAssistant)(nil)

// NewRetrieval builds a retrieval-grounded assistant. A nil formatHit renders
// hits as their raw text.
func NewRetrieval(
	ctx context.Context,
	agentType contractx.AgentType,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	retriever contractx.Retriever,
	collection string,
	formatHit func(contractx.Document) string,
) (*RetrievalAssistant, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: system prompt for agent=%s", contractx.ErrPromptMissing, agentType)
	}
	if retriever == nil {
		return nil, fmt.Errorf("%w: retriever is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("%w: retrieval collection is required", contractx.ErrValidation)
	}
	if formatHit == nil {
		formatHit = func(doc contractx.Document) string { return doc.Text }
	}

	runner, err := compileMessageGraph(ctx, chatModel, systemPrompt, string(agentType)+".retrieval_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile retrieval graph: %v", contractx.ErrModelInvoke, err)
	}

	return &RetrievalAssistant{
		agentType:  agentType,
		runner:     runner,
		retriever:  retriever,
		collection: collection,
		topK:       retrievalTopK,
		formatHit:  formatHit,
	}, nil
}

// Handle answers one user message from the retrieved context. Zero hits still
// reach the model, with the context stating nothing relevant was found, so
// the agent can answer honestly instead of guessing.
func (a *RetrievalAssistant) Handle(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	docs, err := a.retriever.Retrieve(ctx, a.collection, message, a.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context for agent=%s: %w", a.agentType, err)
	}

	hits := make([]string, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, a.formatHit(doc))
	}
	contextText := strings.Join(hits, "\n\n")
	if contextText == "" {
		contextText = "No se encontró información relevante en la base de conocimiento."
	}

	msg, err := invokeRunner(ctx, a.runner, a.agentType, map[string]any{
		"mode":         "answer",
		"user_message": message,
		"context":      contextText,
	})
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty retrieval reply", contractx.ErrSchemaViolation)
	}
	return content, nil
}
