// Package assistant runs the conversational agents. The returns assistant
// plans tool calls with a tool-bound model, executes them through the tool
// gateway, and finalizes the reply from the tool results. Business outcomes
// always come from the tools; the model only narrates them.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
)

type Assistant struct {
	agentType      contractx.AgentType
	toolRunner     compose.Runnable[map[string]any, *schema.Message]
	finalizeRunner compose.Runnable[map[string]any, *schema.Message]
	gateway        contractx.ToolGateway
	allowedTools   map[string]struct{}
}

var _ contractx.Assistant = (*Assistant)(nil)

func New(
	ctx context.Context,
	agentType contractx.AgentType,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	tools []*schema.ToolInfo,
	gateway contractx.ToolGateway,
) (*Assistant, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: system prompt for agent=%s", contractx.ErrPromptMissing, agentType)
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: tool gateway is required", contractx.ErrValidation)
	}

	planModel := einomodel.BaseChatModel(chatModel)
	if len(tools) > 0 {
		bound, err := chatModel.WithTools(tools)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, agentType, err)
		}
		planModel = bound
	}

	toolRunner, err := compileMessageGraph(ctx, planModel, systemPrompt, string(agentType)+".tool_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool graph: %v", contractx.ErrModelInvoke, err)
	}

	finalizeRunner, err := compileMessageGraph(ctx, chatModel, systemPrompt, string(agentType)+".finalize_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile finalize graph: %v", contractx.ErrModelInvoke, err)
	}

	allowed := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowed[t.Name] = struct{}{}
	}

	return &Assistant{
		agentType:      agentType,
		toolRunner:     toolRunner,
		finalizeRunner: finalizeRunner,
		gateway:        gateway,
		allowedTools:   allowed,
	}, nil
}

// Handle answers one user message. First the tool-bound model plans; when it
// requests tools they are executed through the gateway and the plain model
// turns the results into the final reply. A plan without tool calls is
// already the reply.
func (a *Assistant) Handle(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	msg, err := invokeRunner(ctx, a.toolRunner, a.agentType, map[string]any{
		"mode":         "plan",
		"user_message": message,
	})
	if err != nil {
		return "", err
	}

	toolReqs, err := toToolRequests(msg.ToolCalls)
	if err != nil {
		return "", err
	}

	if len(toolReqs) == 0 {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return "", fmt.Errorf("%w: empty reply without tool calls", contractx.ErrSchemaViolation)
		}
		return content, nil
	}

	for _, tr := range toolReqs {
		if _, ok := a.allowedTools[tr.Tool]; !ok {
			return "", fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contractx.ErrSchemaViolation, tr.Tool, a.agentType)
		}
	}

	results, err := a.gateway.Execute(ctx, a.agentType, toolReqs)
	if err != nil {
		return "", fmt.Errorf("%w: execute tools: %v", contractx.ErrModelInvoke, err)
	}

	final, err := invokeRunner(ctx, a.finalizeRunner, a.agentType, map[string]any{
		"mode":         "finalize",
		"user_message": message,
		"tool_results": results,
	})
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(final.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty finalized reply", contractx.ErrSchemaViolation)
	}
	return content, nil
}

// invokeRunner marshals one payload into the graph's {input} slot and runs
// it. Shared by the tool, finalize and retrieval paths.
func invokeRunner(
	ctx context.Context,
	runner compose.Runnable[map[string]any, *schema.Message],
	agentType contractx.AgentType,
	payload map[string]any,
) (*schema.Message, error) {
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload: %v", contractx.ErrValidation, err)
	}

	msg, err := runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: agent=%s invoke: %v", contractx.ErrModelInvoke, agentType, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: nil model response", contractx.ErrSchemaViolation)
	}
	return msg, nil
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
