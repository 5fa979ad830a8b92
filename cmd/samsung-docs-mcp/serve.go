package main

import (
	"github.com/mallendeo/samsung-docs-mcp/mcp"
	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// Run executes the serve command: the MCP server on stdio plus the populate
// schedule in the background.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server, err := mcp.NewServer(&mcp.Ports{Docs: deps.Service})
	if err != nil {
		return err
	}

	if !c.NoSchedule {
		scheduler := deps.Service.NewScheduler(populate.DefaultPopulateInterval)
		go scheduler.Run(deps.Ctx)
	}

	deps.Logger.Info("mcp server starting", "cache", deps.CacheDir)
	return server.Run(deps.Ctx)
}
