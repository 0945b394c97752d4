package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates a configured MCP server with all scoring tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("fraudscore", "1.0.0")
	client := NewFraudscoreClient(cfg)
	h := NewHandlers(client)

	s.AddTool(ToolScoreTransaction, h.HandleScoreTransaction)
	s.AddTool(ToolCheckHealth, h.HandleCheckHealth)
	s.AddTool(ToolModelInfo, h.HandleModelInfo)
	s.AddTool(ToolRunSelfTest, h.HandleRunSelfTest)

	return s
}
