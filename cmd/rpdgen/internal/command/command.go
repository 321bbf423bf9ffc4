package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/logging"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// Output formats for the reporting commands.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// CLI is the state shared by every subcommand. Global flags bind to it.
type CLI struct {
	Out     io.Writer
	Err     io.Writer
	Version string

	ConfigFile string
	LogLevel   string
	Output     string
}

func NewCLI(out, errOut io.Writer, version string) *CLI {
	return &CLI{Out: out, Err: errOut, Version: version, Output: OutputText}
}

// Config loads the environment and the --config file, then applies the
// global flags.
func (c *CLI) Config() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}
	return cfg, nil
}

// Logger builds the zap logger described by cfg, writing to the diagnostic
// stream.
func (c *CLI) Logger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Writer:      c.Err,
	})
}

// Printf writes to the command output.
func (c *CLI) Printf(format string, a ...any) {
	fmt.Fprintf(c.Out, format, a...)
}

// Warnf writes to the diagnostic stream.
func (c *CLI) Warnf(format string, a ...any) {
	fmt.Fprintf(c.Err, format, a...)
}

// Render writes v as JSON or YAML. It reports false for the text format so
// the caller prints its own table.
func (c *CLI) Render(v any) (bool, error) {
	switch strings.ToLower(c.Output) {
	case OutputJSON:
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		c.Printf("%s\n", data)
		return true, nil
	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		c.Printf("%s", data)
		return true, nil
	case OutputText, "":
		return false, nil
	}
	return true, fmt.Errorf("invalid output format %q", c.Output)
}

// MaxArgs returns an error if there are more than number args.
func MaxArgs(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) <= number {
			return nil
		}
		return fmt.Errorf("expected at most %d arguments, got %d", number, len(args))
	}
}
