package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// systemOptions are the flags shared by every command that loads a system.
type systemOptions struct {
	Spec        string
	Booter      string
	SourceRoot  string
	CheckLayout bool
}

// toolOptions configure how components are sealed.
type toolOptions struct {
	MakeProgram string
	MakeRoot    string
	BuildDir    string
}

func addSystemFlags(cmd *cobra.Command, opts *systemOptions) {
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "System spec path (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&opts.Booter, "booter", "", "Booter component, overriding the spec")
	cmd.Flags().StringVar(&opts.SourceRoot, "source-root", "", "Source tree root holding components/ (defaults to ../)")
	cmd.Flags().BoolVar(&opts.CheckLayout, "check-layout", false, "Check that every implementation and interface exists in the source tree")
	_ = viper.BindPFlag("spec", cmd.Flags().Lookup("spec"))
	_ = viper.BindPFlag("booter", cmd.Flags().Lookup("booter"))
	_ = viper.BindPFlag("source_root", cmd.Flags().Lookup("source-root"))
	_ = viper.BindPFlag("check_layout", cmd.Flags().Lookup("check-layout"))
}

func addToolFlags(cmd *cobra.Command, opts *toolOptions) {
	cmd.Flags().StringVar(&opts.MakeProgram, "make", "", "Build tool program (defaults to make)")
	cmd.Flags().StringVar(&opts.MakeRoot, "make-root", "", "Directory the build tool runs in (defaults to ../)")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build directory (defaults to ./cos_build_<pid>)")
	_ = viper.BindPFlag("make_program", cmd.Flags().Lookup("make"))
	_ = viper.BindPFlag("make_root", cmd.Flags().Lookup("make-root"))
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))
}

func (o systemOptions) resolve(cmd *cobra.Command) systemOptions {
	return systemOptions{
		Spec:        resolveString(cmd, o.Spec, "spec", "spec"),
		Booter:      resolveString(cmd, o.Booter, "booter", "booter"),
		SourceRoot:  resolveString(cmd, o.SourceRoot, "source_root", "source-root"),
		CheckLayout: resolveBool(cmd, o.CheckLayout, "check_layout", "check-layout"),
	}
}

func (o toolOptions) resolve(cmd *cobra.Command) toolOptions {
	return toolOptions{
		MakeProgram: resolveString(cmd, o.MakeProgram, "make_program", "make"),
		MakeRoot:    resolveString(cmd, o.MakeRoot, "make_root", "make-root"),
		BuildDir:    resolveString(cmd, o.BuildDir, "build_dir", "build-dir"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
