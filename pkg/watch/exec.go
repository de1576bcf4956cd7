package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Hook runs a command after each successful compile. The command is
// executed directly, never through a shell.
type Hook struct {
	// Command is the program followed by its arguments.
	Command []string

	// Stdout and Stderr receive the command's output. Nil means the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the hook and waits for it to finish. An empty hook is a no-op.
func (h *Hook) Run(ctx context.Context) error {
	if h == nil || len(h.Command) == 0 {
		return nil
	}
	if h.Command[0] == "" {
		return errors.New("hook command is empty")
	}

	cmd := exec.CommandContext(ctx, h.Command[0], h.Command[1:]...)
	cmd.Stdout = h.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = h.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hook %q failed: %w", h.Command[0], err)
	}
	return nil
}
