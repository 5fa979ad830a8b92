package main

import (
	"fmt"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	pages, err := deps.Service.List(deps.Ctx, c.Patterns)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", samsungdocs.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages known. Run 'samsung-docs-mcp populate' first.")
		return nil
	}

	for _, page := range pages {
		fmt.Fprintf(deps.Stdout, "%-7s  %s  %s\n", page.Status, page.Path, page.Title)
	}
	return nil
}
