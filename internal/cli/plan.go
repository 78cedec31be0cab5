package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cos-mkimg/internal/app"
)

type planOptions struct {
	System systemOptions
	Tool   toolOptions
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the build invocations without running them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd, opts)
		},
	}
	addSystemFlags(cmd, &opts.System)
	addToolFlags(cmd, &opts.Tool)
	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions) error {
	sys := opts.System.resolve(cmd)
	tool := opts.Tool.resolve(cmd)
	result, err := newAppService().Plan(ctx, app.PlanRequest{
		SpecPath:    sys.Spec,
		Booter:      sys.Booter,
		SourceRoot:  sys.SourceRoot,
		CheckLayout: sys.CheckLayout,
		MakeProgram: tool.MakeProgram,
		MakeRoot:    tool.MakeRoot,
		BuildDir:    tool.BuildDir,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# build directory: %s\n", result.BuildDir)
	for _, step := range result.Steps {
		fmt.Fprintf(out, "# %s\n%s\n", step.Component, step.Invocation.String())
	}
	return nil
}
