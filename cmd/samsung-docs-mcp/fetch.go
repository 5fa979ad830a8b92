package main

import (
	"fmt"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	doc, err := deps.Service.FetchPage(deps.Ctx, c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", samsungdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, doc.Markdown)
	return nil
}
