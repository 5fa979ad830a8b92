package main

import (
	"fmt"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// Run executes the populate command.
func (c *PopulateCmd) Run(deps *Dependencies) error {
	result, err := deps.Service.Populate(deps.Ctx, populate.Options{
		Section: samsungdocs.Section(c.Section),
		Force:   c.Force,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", samsungdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Discovered %d pages, fetched %d, fresh %d, errored %d\n",
		result.Discovered, result.Fetched, result.Fresh, result.Errored)
	return nil
}
