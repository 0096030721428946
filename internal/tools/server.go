package tools

import (
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "mindvault"

const instructions = `MindVault task manager. Route messages starting with 'MV' to these tools.

Tasks have a name, a status (NotStarted, Pending, InProgress, Completed),
a priority (Normal, High) and an optional due date. Call get_current_date
before turning relative dates into due dates. Deleted tasks are hidden from
every list and search.`

// NewServer creates an MCP server with every task tool registered.
func NewServer(version string, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	h.Register(s)
	return s
}
