package main

import (
	"fmt"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status, err := deps.Service.Status(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", samsungdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cache directory: %s\n", status.CacheDir)
	if status.Populated {
		fmt.Fprintf(deps.Stdout, "Last populate:   %s\n", status.PopulatedAt.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Fprintln(deps.Stdout, "Last populate:   never")
	}
	fmt.Fprintf(deps.Stdout, "Pages cached:    %d of %d known\n", status.CachedPages, status.TotalPages)
	return nil
}
