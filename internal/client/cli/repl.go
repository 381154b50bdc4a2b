package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb. run receives the words after the verb.
type command struct {
	usage   string
	minArgs int
	run     func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// Shell satisfies it; tests can provide a lightweight stub.
type execIface interface {
	commands() map[string]command
	helpText() string
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches it through a.commands(). Unknown commands and
// missing arguments are reported back to the user. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues, so
// a failed backend call never ends the session. Commands that prompt read
// from the same reader, so the loop never buffers past the current line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	cmds := a.commands()
	for {
		fmt.Fprintf(out, "cycleshop%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			fmt.Fprintln(out, a.helpText())
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		cmd, ok := cmds[name]
		if !ok {
			fmt.Fprintln(out, "Unknown command:", name)
			continue
		}
		if len(args) < cmd.minArgs {
			fmt.Fprintln(out, "Usage:", cmd.usage)
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}
