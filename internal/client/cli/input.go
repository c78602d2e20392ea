package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal hooks, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// ReadLine prints prompt followed by "> " and returns one trimmed line from
// reader. A final line without a newline is accepted.
func ReadLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s\n> ", prompt)

	line, err := reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret prints prompt and reads a secret. On a terminal the input is not
// echoed; otherwise a line is taken from reader so passwords can be piped in.
// The caller owns the returned slice and should wipe it.
func ReadSecret(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := ReadLine(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	fmt.Fprintf(w, "%s: ", prompt)
	secret, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return secret, nil
}
