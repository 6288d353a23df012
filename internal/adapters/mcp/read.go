package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"journey/internal/application"
	"journey/internal/application/commands"
	"journey/internal/domain"
)

// Clock returns the current time
type Clock func() time.Time

// RegisterReadTools adds all read-only journal tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, journal *application.Journal, now Clock) {
	s.AddTool(getEntryTool(), getEntryHandler(journal, now))
	s.AddTool(similarTool(), similarHandler(journal, now))
	s.AddTool(pastTool(), pastHandler(journal, now))
	s.AddTool(listSourcesTool(), listSourcesHandler(journal))
	s.AddTool(listPeriodsTool(), listPeriodsHandler(journal))
	s.AddTool(exportTool(), exportHandler(journal, now))
}

// --- get_entry ---

func getEntryTool() mcp.Tool {
	return mcp.NewTool("get_entry",
		mcp.WithDescription("Read the journal entry for a date."),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD. Defaults to today."),
		),
		withSource(),
	)
}

func getEntryHandler(journal *application.Journal, now Clock) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(req, now)
		if err != nil {
			return toolError(err)
		}
		body, ok, err := journal.EntryIn(sourceArg(req), date)
		if err != nil {
			return toolError(err)
		}
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("No entry for %s.", date)), nil
		}
		return mcp.NewToolResultText(body), nil
	}
}

// --- similar_entries ---

func similarTool() mcp.Tool {
	return mcp.NewTool("similar_entries",
		mcp.WithDescription("Find past entries that share keywords with the given text."),
		mcp.WithString("query",
			mcp.Description("Text being written"),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("Date being written (excluded from results). Defaults to today."),
		),
		withSource(),
	)
}

func similarHandler(journal *application.Journal, now Clock) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if strings.TrimSpace(query) == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		date, err := dateArg(req, now)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewSimilarCommand(journal, query, date)
		cmd.Source = sourceArg(req)
		candidates, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(candidates) == 0 {
			return mcp.NewToolResultText("No similar entries found."), nil
		}

		var sb strings.Builder
		for _, c := range candidates {
			fmt.Fprintf(&sb, "%s  %3.0f%%  %s\n", c.Date, c.Score*100, domain.Truncate(c.Body, 120))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- past_entry ---

func pastTool() mcp.Tool {
	return mcp.NewTool("past_entry",
		mcp.WithDescription("Show what was written one period before a date (e.g. last week, a year ago)."),
		mcp.WithString("date",
			mcp.Description("Reference date as YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("period_id",
			mcp.Description("Period to look back by (see list_periods). Omit to use the active period."),
		),
		withSource(),
	)
}

func pastHandler(journal *application.Journal, now Clock) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(req, now)
		if err != nil {
			return toolError(err)
		}
		ref, _ := domain.FromKey(date)

		cmd := commands.NewPastCommand(journal, ref, req.GetString("period_id", ""))
		cmd.Source = sourceArg(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("%s (%s): no entry.", result.Period.Label, result.Target)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s)\n\n", result.Period.Label, result.Target)
		for _, e := range result.Entries {
			sb.WriteString(e.Body)
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_sources ---

func listSourcesTool() mcp.Tool {
	return mcp.NewTool("list_sources",
		mcp.WithDescription("List the open journal sources. The active one is marked with *."),
	)
}

func listSourcesHandler(journal *application.Journal) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return formatEntities(journal.Sources(), formatSource)
	}
}

// --- list_periods ---

func listPeriodsTool() mcp.Tool {
	return mcp.NewTool("list_periods",
		mcp.WithDescription("List the look-back periods. The active one is marked with *."),
	)
}

func listPeriodsHandler(journal *application.Journal) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		active := journal.ActivePeriod().ID
		return formatEntities(journal.Periods(), func(p domain.Period) string {
			return fmt.Sprintf("%s %s  %s  (%s)", marker(p.ID == active), p.ID, p.Label, p)
		})
	}
}

// --- export_document ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_document",
		mcp.WithDescription("Render a source as a markdown document."),
		withSource(),
	)
}

func exportHandler(journal *application.Journal, now Clock) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewExportCommand(journal, now())
		cmd.Source = sourceArg(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Entries == 0 {
			return mcp.NewToolResultText("No entries to export."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("<!-- %s -->\n%s", result.Filename, result.Text)), nil
	}
}

// --- helpers ---

func withSource() mcp.ToolOption {
	return mcp.WithString("source",
		mcp.Description("Source key to read or write (see list_sources). Omit to use the active source."),
	)
}

func sourceArg(req mcp.CallToolRequest) string {
	return strings.TrimSpace(req.GetString("source", ""))
}

func dateArg(req mcp.CallToolRequest, now Clock) (string, error) {
	date := strings.TrimSpace(req.GetString("date", ""))
	if date == "" {
		return domain.Today(now()), nil
	}
	date = domain.NormalizeDateToken(date)
	if err := application.ValidateDate("date", date); err != nil {
		return "", err
	}
	return date, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSource(s application.SourceInfo) string {
	kind := "local"
	if s.File {
		kind = "file"
		if !s.Writable {
			kind = "file, read-only"
		}
	}
	return fmt.Sprintf("%s %d  %s  %s  %d entries (%s)", marker(s.Active), s.Index, s.Key, s.Name, s.Entries, kind)
}

func marker(active bool) string {
	if active {
		return "*"
	}
	return " "
}
