package contract

import "errors"

// Failure classes of the conversational machinery. Business rejections
// (ineligible returns, unknown orders) are values on ToolResult and the
// policy verdicts, never these errors.
var (
	// ErrModelInvoke marks a chat model that could not be built or called.
	ErrModelInvoke = errors.New("model invoke failed")
	// ErrSchemaViolation marks a model reply that breaks the agent contract:
	// an empty reply, a tool outside the agent's catalog, malformed tool
	// arguments.
	ErrSchemaViolation = errors.New("model response violates schema")
	// ErrPromptMissing marks an agent constructed without its system prompt.
	ErrPromptMissing = errors.New("required prompt is missing")
	// ErrValidation marks invalid caller input or configuration.
	ErrValidation = errors.New("validation failed")
)
