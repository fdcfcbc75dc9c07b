package shell

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

const (
	// DefaultCommandTimeout bounds every external query a resolver makes.
	DefaultCommandTimeout = 2 * time.Second
	// MaxOutputSize caps captured output from external tools.
	MaxOutputSize = 1 << 20 // 1MB
)

// execWithTimeout executes a tool with a timeout and returns its output.
// This prevents hanging on slow or blocked commands.
func execWithTimeout(ctx context.Context, tool string, args ...string) ([]byte, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, tool, args...)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command timeout after %v: %w", DefaultCommandTimeout, err)
		}
		return nil, err
	}

	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}

	return output, nil
}
