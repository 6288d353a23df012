package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"journey/internal/application"
	"journey/internal/application/commands"
)

// RegisterWriteTools adds all journal-modifying tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, journal *application.Journal, now Clock) {
	s.AddTool(saveTool(), saveHandler(journal, now))
	s.AddTool(importTool(), importHandler(journal))
}

// --- save_entry ---

func saveTool() mcp.Tool {
	return mcp.NewTool("save_entry",
		mcp.WithDescription("Write the entry for a date, replacing any existing text. Empty text deletes the entry."),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("text",
			mcp.Description("Entry text"),
			mcp.Required(),
		),
		withSource(),
	)
}

func saveHandler(journal *application.Journal, now Clock) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(req, now)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewSaveEntryCommand(journal, date, req.GetString("text", ""))
		cmd.Source = sourceArg(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- import_document ---

func importTool() mcp.Tool {
	return mcp.NewTool("import_document",
		mcp.WithDescription("Merge a markdown (\"# YYYY-MM-DD\" headers) or line-dated document into a source. Entries on the same date are overwritten."),
		mcp.WithString("text",
			mcp.Description("Document text"),
			mcp.Required(),
		),
		withSource(),
	)
}

func importHandler(journal *application.Journal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewImportCommand(journal, req.GetString("text", ""))
		cmd.Source = sourceArg(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			if result != nil {
				return toolError(fmt.Errorf("%s: %w", result.Message, err))
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
