package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Root runs the REPL until EOF or "exit". Command errors are printed and
// the loop goes on.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to the accounts CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "accounts %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(a.out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			if err := a.exec(ctx, parts); err != nil {
				fmt.Fprintln(a.out, "Error:", err)
			}
		}

		if ctx.Err() != nil {
			return
		}
	}
}
