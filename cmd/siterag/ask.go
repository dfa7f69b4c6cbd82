package main

import (
	"fmt"

	"github.com/tanakrit-d/siterag"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	result, err := deps.Assembler.Answer(deps.Ctx, c.Question, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Answer)
	printSources(deps, result.Sources)
	return nil
}

func printSources(deps *Dependencies, sources []siterag.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, "\nSources:")
	for _, s := range sources {
		fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", s.Title, s.URL)
	}
}
