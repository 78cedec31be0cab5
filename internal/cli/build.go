package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cos-mkimg/internal/app"
)

type buildOptions struct {
	System systemOptions
	Tool   toolOptions
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every component, bundle them and build the booter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}
	addSystemFlags(cmd, &opts.System)
	addToolFlags(cmd, &opts.Tool)
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	sys := opts.System.resolve(cmd)
	tool := opts.Tool.resolve(cmd)
	result, err := newAppService().Build(ctx, app.BuildRequest{
		SpecPath:    sys.Spec,
		Booter:      sys.Booter,
		SourceRoot:  sys.SourceRoot,
		CheckLayout: sys.CheckLayout,
		MakeProgram: tool.MakeProgram,
		MakeRoot:    tool.MakeRoot,
		BuildDir:    tool.BuildDir,
	})
	out := cmd.OutOrStdout()
	for _, outcome := range result.Components {
		status := "ok"
		if outcome.Err != nil {
			status = "failed"
		}
		fmt.Fprintf(out, "%-8s %s\n", status, outcome.Name)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "bundle: %s (%d components)\n", result.TarPath, len(result.Bundle))
	fmt.Fprintf(out, "booter: %s\n", result.BooterObject)
	return nil
}
