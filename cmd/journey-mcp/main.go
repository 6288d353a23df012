package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "journey/internal/adapters/mcp"
	"journey/internal/bootstrap"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default is $HOME/.journey.yaml)")
	logLevel := flag.String("loglevel", "", "log level: debug, info, warn, error")
	flag.Parse()

	ctx := context.Background()
	env, err := bootstrap.Open(ctx, bootstrap.Options{ConfigFile: *cfgFile, LogLevel: *logLevel})
	if err != nil {
		log.Fatalf("journey-mcp: %v", err)
	}
	defer env.Close()

	if env.Journal.Directory().Directory != "" {
		if err := env.Watch(ctx, nil); err != nil {
			env.Log.WithError(err).Warn("not watching the document directory")
		}
	}

	mcpServer := server.NewMCPServer(
		"journey-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, env.Journal, time.Now)
	mcpadapter.RegisterWriteTools(mcpServer, env.Journal, time.Now)

	if err := server.ServeStdio(mcpServer); err != nil {
		env.Log.WithError(err).Error("server stopped")
	}
}
