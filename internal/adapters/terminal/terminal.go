package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Adapter handles the command line's standard streams.
type Adapter struct {
	stdin  io.Reader
	stdout io.Writer
}

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stdout io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stdout: stdout,
	}
}

// ReadInput reads all of stdin. It refuses to block on an interactive
// terminal, since content is expected to be piped in.
func (a *Adapter) ReadInput(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if a.IsInteractive() {
		return nil, errors.New("no input: stdin is a terminal, use --data or --file")
	}

	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// IsInteractive returns true if stdin is a terminal.
func (a *Adapter) IsInteractive() bool {
	return isTerminal(a.stdin)
}

// IsOutputTerminal returns true if stdout is a terminal.
func (a *Adapter) IsOutputTerminal() bool {
	return isTerminal(a.stdout)
}

func isTerminal(stream any) bool {
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
