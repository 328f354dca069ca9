package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/boterol/ecomarket-assistant/agent/contract"
	orderx "github.com/boterol/ecomarket-assistant/agent/order"
)

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is empty", key)
	}
	return value, nil
}

func executeEvaluate(deps Deps, tool string, args map[string]any) (contractx.ToolResult, error) {
	orderID, err := stringArg(args, "order_id")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	rec, err := deps.Store.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, orderx.ErrOrderNotFound) {
			return contractx.ToolResult{Tool: tool, Result: renderOrderNotFound(orderID)}, nil
		}
		return contractx.ToolResult{}, err
	}

	verdict := deps.Policy.Evaluate(rec, deps.Now())
	return contractx.ToolResult{Tool: tool, Result: renderVerdict(verdict, deps.Policy.WindowDays())}, nil
}

func executeSearch(deps Deps, tool string, args map[string]any) (contractx.ToolResult, error) {
	customerID, err := stringArg(args, "customer_id")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	summaries, err := deps.Store.SummarizeOrders(customerID, deps.Now())
	if err != nil {
		if errors.Is(err, orderx.ErrNoOrders) {
			return contractx.ToolResult{Tool: tool, Result: renderNoOrders(customerID)}, nil
		}
		return contractx.ToolResult{}, err
	}

	return contractx.ToolResult{Tool: tool, Result: renderSummaries(customerID, summaries)}, nil
}

func executeInitiate(ctx context.Context, deps Deps, tool string, args map[string]any) (contractx.ToolResult, error) {
	orderID, err := stringArg(args, "order_id")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	customerEmail, err := stringArg(args, "customer_email")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	reason, err := stringArg(args, "reason")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	outcome, err := deps.Initiator.Initiate(ctx, orderID, customerEmail, reason, deps.Now())
	if err != nil {
		if errors.Is(err, orderx.ErrOrderNotFound) {
			return contractx.ToolResult{Tool: tool, Result: renderOrderNotFound(orderID)}, nil
		}
		return contractx.ToolResult{}, err
	}

	return contractx.ToolResult{Tool: tool, Result: renderOutcome(outcome, deps.Policy.WindowDays())}, nil
}
