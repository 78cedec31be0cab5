package adapters

import (
	"context"
	"os/exec"
	"strings"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/ports"
)

// MakeRunnerAdapter runs build invocations directly, without a shell.
type MakeRunnerAdapter struct{}

func NewMakeRunnerAdapter() MakeRunnerAdapter {
	return MakeRunnerAdapter{}
}

func (a MakeRunnerAdapter) Run(ctx context.Context, component string, inv core.Invocation) (ports.ToolResult, error) {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	result := ports.ToolResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return result, core.NewToolFailure(component, result.Stderr, err)
	}
	return result, nil
}

var _ ports.ToolRunnerPort = MakeRunnerAdapter{}
