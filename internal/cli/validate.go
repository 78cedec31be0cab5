package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cos-mkimg/internal/app"
)

func newValidateCommand() *cobra.Command {
	opts := systemOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a system spec and its component dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addSystemFlags(cmd, &opts)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts systemOptions) error {
	sys := opts.resolve(cmd)
	result, err := newAppService().Validate(ctx, app.ValidateRequest{
		SpecPath:    sys.Spec,
		Booter:      sys.Booter,
		SourceRoot:  sys.SourceRoot,
		CheckLayout: sys.CheckLayout,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated: %d components, booter %s\n", len(result.Components), result.Booter)
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", strings.Join(result.Components, ", "))
	return nil
}
