package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/tanakrit-d/siterag"
)

// historyLimit bounds the rolling chat history kept by the REPL.
const historyLimit = 4

// Run executes the chat command as a read-answer loop on stdin.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Chat session started. Type 'exit' or 'quit' to leave.")

	var history []siterag.ChatTurn
	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		result, err := deps.Assembler.Answer(deps.Ctx, question, history)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
			continue
		}

		fmt.Fprintln(deps.Stdout, result.Answer)
		printSources(deps, result.Sources)
		fmt.Fprintln(deps.Stdout)

		history = append(history,
			siterag.ChatTurn{Role: siterag.RoleUser, Content: question},
			siterag.ChatTurn{Role: siterag.RoleAssistant, Content: result.Answer},
		)
		if len(history) > historyLimit {
			history = history[len(history)-historyLimit:]
		}
	}

	return scanner.Err()
}
