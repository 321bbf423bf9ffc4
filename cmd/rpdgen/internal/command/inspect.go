package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/bdl"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/pipeline"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/spf13/cobra"
)

// ModelInfo summarizes one parsed BDL file.
type ModelInfo struct {
	Path        string         `json:"path" yaml:"path"`
	Version     string         `json:"version" yaml:"version"`
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Counts      map[string]int `json:"counts" yaml:"counts"`
}

func NewInspectCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATH...",
		Short: "Report the version and command counts of BDL files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := fsutil.Discover(args...)
			if err != nil {
				return err
			}
			infos := make([]ModelInfo, 0, len(files))
			for _, path := range files {
				info, err := inspectFile(path)
				if err != nil {
					return err
				}
				infos = append(infos, info)
			}

			if done, err := cli.Render(infos); done {
				return err
			}
			w := tabwriter.NewWriter(cli.Out, 0, 4, 2, ' ', 0)
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Path, info.Version, info.Fingerprint[:12])
				for _, name := range sortedKeys(info.Counts) {
					fmt.Fprintf(w, "  %s\t%d\t\n", name, info.Counts[name])
				}
			}
			return w.Flush()
		},
	}
}

func inspectFile(path string) (ModelInfo, error) {
	text, err := fsutil.ReadText(path)
	if err != nil {
		return ModelInfo{}, err
	}
	file, err := bdl.Parse(text)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return ModelInfo{
		Path:        path,
		Version:     file.Version,
		Fingerprint: pipeline.Fingerprint(text),
		Counts:      file.Counts(),
	}, nil
}
