// Package command builds and runs external helper programs such as the
// document extractor.
package command

import (
	"context"
	"os/exec"
)

// Executor creates exec.Cmd instances. Tests swap it to observe or redirect
// what would be run.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor creates commands with os/exec.
type RealExecutor struct{}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
