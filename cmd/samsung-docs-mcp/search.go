package main

import (
	"fmt"
	"strings"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.Search(deps.Ctx, populate.SearchOptions{
		Text:     c.Query,
		Limit:    c.Limit,
		Patterns: c.Patterns,
		Version:  c.Version,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", samsungdocs.ErrorMessage(err))
		return err
	}

	for _, note := range out.Notes {
		fmt.Fprintf(deps.Stderr, "note: %s\n", note)
	}

	if len(out.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, result := range out.Results {
		fmt.Fprintf(deps.Stdout, "%d. %s (%.2f)\n   %s\n", i+1, result.Title, result.Score, result.URL)
		if len(result.Snippet) > 0 {
			fmt.Fprintf(deps.Stdout, "   %s\n", strings.Join(result.Snippet, "\n   "))
		}
	}
	return nil
}
