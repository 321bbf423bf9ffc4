package command

import (
	"runtime"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/spf13/cobra"
)

// VersionInfo is reported by the version command.
type VersionInfo struct {
	Version       string `json:"version" yaml:"version"`
	SchemaVersion string `json:"schema_version" yaml:"schema_version"`
	GoVersion     string `json:"go_version" yaml:"go_version"`
	Platform      string `json:"platform" yaml:"platform"`
}

func NewVersionCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   cli.Version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if set, err := schema.LoadEmbedded(); err == nil {
				info.SchemaVersion = set.Version
			}
			if done, err := cli.Render(info); done {
				return err
			}
			cli.Printf("rpdgen %s\nschema %s\n%s %s\n", info.Version, info.SchemaVersion, info.GoVersion, info.Platform)
			return nil
		},
	}
}
