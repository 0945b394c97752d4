package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the fraud scoring MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolScoreTransaction = mcp.NewTool("score_transaction",
	mcp.WithDescription(
		"Score a credit card transaction for fraud. "+
			"Takes the 28 anonymized signal features V1..V28 plus the transaction amount, "+
			"and returns the fraud probability, risk tier (VERY_LOW to VERY_HIGH), "+
			"and a recommended action (APPROVE or BLOCK)."),
	mcp.WithObject("transaction",
		mcp.Required(),
		mcp.Description("Transaction payload: JSON object with numeric fields V1..V28 and a non-negative Amount")),
)

var ToolCheckHealth = mcp.NewTool("check_health",
	mcp.WithDescription(
		"Check whether the fraud scoring service and its model are healthy. "+
			"Reports degraded status when the model is not loaded or fails its smoke test."),
)

var ToolModelInfo = mcp.NewTool("model_info",
	mcp.WithDescription(
		"Get metadata about the loaded fraud model: model type, version, "+
			"training date, feature layout, and held-out test metrics."),
)

var ToolRunSelfTest = mcp.NewTool("run_self_test",
	mcp.WithDescription(
		"Run the service's built-in self-test against a fixed reference transaction. "+
			"The 'normal' scenario is expected to score NORMAL, the 'fraud' scenario FRAUDE."),
	mcp.WithString("scenario",
		mcp.Description("Which reference transaction to score: 'normal' (default) or 'fraud'"),
		mcp.Enum("normal", "fraud")),
)
