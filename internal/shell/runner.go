// Package shell runs platform audio scripting commands (powershell,
// osascript, pactl) with timeouts and an allow-list of binaries.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single scripting call. PowerShell cold starts
// are slow enough that anything much shorter trips on first use.
const DefaultTimeout = 30 * time.Second

// Command describes one invocation of a platform scripting binary.
type Command struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

// Result captures the outcome of a completed command.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes scripting commands. Backends depend on this interface
// so tests can substitute canned output for the real subprocess.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner is the real Runner backed by os/exec.
type ExecRunner struct {
	allowed map[string]bool
	log     *zap.Logger

	// Timeout applies to commands that do not set their own. Zero
	// falls back to DefaultTimeout.
	Timeout time.Duration
}

// NewExecRunner returns a runner limited to the audio scripting binaries
// this program is expected to call.
func NewExecRunner(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{
		allowed: map[string]bool{
			"powershell": true,
			"osascript":  true,
			"pactl":      true,
		},
		log: log,
	}
}

// Run executes cmd, enforcing the allow-list and a timeout. Stdout and
// stderr are captured separately; stderr is reported on failure because
// PowerShell writes its error records there.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if !r.allowed[cmd.Binary] {
		return nil, fmt.Errorf("binary not allowed: %s", cmd.Binary)
	}

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = r.Timeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	r.log.Debug("shell command finished",
		zap.String("binary", cmd.Binary),
		zap.Duration("duration", res.Duration),
		zap.Bool("ok", err == nil))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, fmt.Errorf("%s timed out after %s", cmd.Binary, timeout)
		}
		if execErr, ok := err.(*exec.Error); ok {
			return res, fmt.Errorf("%s not found on PATH: %w", cmd.Binary, execErr.Err)
		}
		return res, fmt.Errorf("%s failed: %w: %s", cmd.Binary, err, firstLine(res.Stderr))
	}
	return res, nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
