package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 10 * time.Minute
)

// SafeBuilder builds external commands with validated arguments and a bounded
// run time. Commands are never run through a shell.
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// WithDefaultTimeout changes the timeout applied to every built command.
func (sb *SafeBuilder) WithDefaultTimeout(timeout time.Duration) *SafeBuilder {
	sb.defaultTimeout = clampTimeout(timeout)
	return sb
}

func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"path":       validatePath,
		"executable": validateExecutable,
	}
}

// validatePath accepts any non-empty path without control characters.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	if strings.ContainsAny(path, "\x00\n\r") {
		return fmt.Errorf("file path contains invalid characters")
	}
	return nil
}

// validateExecutable requires a bare program name or an absolute path.
func validateExecutable(name string) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if strings.ContainsAny(name, "\x00\n\r ;|&$`") {
		return fmt.Errorf("invalid command name: %q", name)
	}
	if strings.ContainsRune(name, os.PathSeparator) && !filepath.IsAbs(name) {
		return fmt.Errorf("command path must be absolute: %s", name)
	}
	return nil
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}
	return validator(value)
}

// Command is a validated command ready to run.
type Command struct {
	parent   context.Context
	name     string
	args     []string
	env      []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command after validating the executable and arguments.
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	if err := validateExecutable(name); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if strings.ContainsRune(arg, '\x00') {
			return nil, fmt.Errorf("argument contains NUL byte")
		}
	}

	return &Command{
		parent:   ctx,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	c.timeout = clampTimeout(timeout)
	return c
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func (c *Command) WithEnv(kv ...string) *Command {
	c.env = append(c.env, kv...)
	return c
}

// Exec creates the exec.Cmd bound to ctx. The caller owns ctx's lifetime.
func (c *Command) Exec(ctx context.Context) *exec.Cmd {
	cmd := c.executor.CommandContext(ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}
	return cmd
}

// CombinedOutput runs the command to completion within its timeout.
func (c *Command) CombinedOutput() ([]byte, error) {
	ctx, cancel := context.WithTimeout(c.parent, c.timeout)
	defer cancel()

	out, err := c.Exec(ctx).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("%s timed out after %s", c.name, c.timeout)
	}
	return out, err
}

// String renders the command line for logs.
func (c *Command) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

func clampTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultTimeout
	}
	if timeout > MaxTimeout {
		return MaxTimeout
	}
	return timeout
}
