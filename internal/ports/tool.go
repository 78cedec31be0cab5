package ports

import (
	"context"

	"cos-mkimg/internal/core"
)

// ToolResult is what a finished invocation printed.
type ToolResult struct {
	Stdout string
	Stderr string
}

// ToolRunnerPort runs one build invocation and blocks until it has exited.
// A non-zero exit is reported as a core tool failure error alongside the
// captured output.
type ToolRunnerPort interface {
	Run(ctx context.Context, component string, inv core.Invocation) (ToolResult, error)
}
