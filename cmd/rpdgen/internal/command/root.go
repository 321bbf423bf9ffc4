package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func NewRootCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpdgen",
		Short: "Convert DOE-2 BDL models into an ASHRAE 229 RPD",
		Long: "rpdgen reads eQUEST/DOE-2.3 building description files and writes\n" +
			"a Ruleset Project Description (RPD) JSON document per ASHRAE 229.\n\n" +
			"Configuration is read from RPDGEN_* environment variables, then the\n" +
			"--config file, then command flags.",
		Version:       cli.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&cli.ConfigFile, "config", "c", "", "Config file (json, yaml or toml)")
	cmd.PersistentFlags().StringVar(&cli.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVarP(&cli.Output, "output", "o", OutputText, "Report format for inspect and enums: text, json or yaml")
	return cmd
}

// AddCommands registers all subcommands to the root command.
func AddCommands(root *cobra.Command, cli *CLI) {
	root.AddCommand(
		NewConvertCommand(cli),
		NewInspectCommand(cli),
		NewEnumsCommand(cli),
		NewServeCommand(cli),
		NewVersionCommand(cli),
	)
}

// Execute runs the CLI and returns the process exit code. SIGINT and
// SIGTERM cancel the command context.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := NewCLI(os.Stdout, os.Stderr, version)
	root := NewRootCommand(cli)
	AddCommands(root, cli)

	if err := root.ExecuteContext(ctx); err != nil {
		cli.Warnf("Error: %v\n", err)
		return 1
	}
	return 0
}
