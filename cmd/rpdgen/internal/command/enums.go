package command

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/spf13/cobra"
)

// Enumeration sources.
const (
	SourceSchema = "schema"
	SourceBDL    = "bdl"
)

func NewEnumsCommand(cli *CLI) *cobra.Command {
	source := SourceSchema

	cmd := &cobra.Command{
		Use:   "enums [NAME]",
		Short: "List enumerations or the members of one",
		Long: "Without NAME, list the enumeration names. With NAME, list its members.\n" +
			"--source schema reads the RPD schema enumerations; --source bdl reads\n" +
			"the BDL keyword tokens.\n",
		Args: MaxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup, names, err := enumSource(cmd, cli, source)
			if err != nil {
				return err
			}

			out := names
			if len(args) == 1 {
				members, ok := lookup(args[0])
				if !ok {
					return fmt.Errorf("enumeration %q not found in %s", args[0], source)
				}
				out = members
			}
			if done, err := cli.Render(out); done {
				return err
			}
			for _, s := range out {
				cli.Printf("%s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", source, "Enumeration source: schema or bdl")
	return cmd
}

func enumSource(cmd *cobra.Command, cli *CLI, source string) (func(string) ([]string, bool), []string, error) {
	switch source {
	case SourceBDL:
		lookup := func(name string) ([]string, bool) {
			e, ok := bdlenum.Lookup(name)
			if !ok {
				return nil, false
			}
			return e.Members(), true
		}
		return lookup, bdlenum.Names(), nil
	case SourceSchema:
		cfg, err := cli.Config()
		if err != nil {
			return nil, nil, err
		}
		set, err := schema.Load(cmd.Context(), cfg.Schema.Source)
		if err != nil {
			return nil, nil, err
		}
		reg := set.Enums()
		lookup := func(name string) ([]string, bool) {
			e, ok := reg.Lookup(name)
			if !ok {
				return nil, false
			}
			return e.Members(), true
		}
		return lookup, reg.Names(), nil
	}
	return nil, nil, fmt.Errorf("unknown enumeration source %q", source)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
