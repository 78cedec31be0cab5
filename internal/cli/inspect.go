package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cos-mkimg/internal/app"
)

type inspectOptions struct {
	Tarball string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [tarball]",
		Short: "List the components stored in a booter bundle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tarball := resolveString(cmd, opts.Tarball, "tarball", "tarball")
			if len(args) == 1 {
				tarball = args[0]
			}
			return runInspect(cmd.Context(), cmd, tarball)
		},
	}
	cmd.Flags().StringVar(&opts.Tarball, "tarball", "", "Bundle produced by build (<booter object>_initfs.tar)")
	_ = viper.BindPFlag("tarball", cmd.Flags().Lookup("tarball"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, tarball string) error {
	result, err := newAppService().Inspect(ctx, app.InspectRequest{TarPath: tarball})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, entry := range result.Entries {
		fmt.Fprintf(out, "%s %10d %s\n", entry.Digest, entry.Size, entry.Name)
	}
	fmt.Fprintf(out, "%d entries, %d bytes\n", len(result.Entries), result.TotalSize)
	return nil
}
