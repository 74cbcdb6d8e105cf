// Package mcp provides a Model Context Protocol server for dailylog.
// It exposes reading and writing daily records as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/record"
)

// Service is what the tools operate on: the record store and the publish
// settings.
type Service struct {
	Store  *record.Store
	Remote string
	// Exec runs git; nil means git.Capture.
	Exec git.ExecFunc
}

// NewServer creates an MCP server with all dailylog tools registered.
func NewServer(version string, svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dailylog",
		Version: version,
	}, nil)
	registerTools(server, svc)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func registerTools(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "show",
		Description: "Read the daily record for a date (YYYY-MM-DD, default today). Returns each field and whether it is present.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:   true,
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, handleShow(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name: "log",
		Description: "Write the daily record for a date. Empty fields keep the value already recorded for that date. " +
			"Set publish to stage, commit and push the record with git.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint:  true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, handleLog(svc))
}
