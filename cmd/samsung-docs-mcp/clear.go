package main

import (
	"fmt"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stdout, "This deletes the whole cache. Re-run with --force to confirm.")
		return nil
	}

	removed, err := deps.Service.Clear(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", samsungdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %d cached pages.\n", removed)
	return nil
}
