package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/pipeline"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/rpd"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"github.com/spf13/cobra"
)

// StageWrite times document serialization.
const StageWrite = "write"

// ConvertOptions holds the options for the convert command.
type ConvertOptions struct {
	Models  []string
	Type    string
	Outputs string
	Out     string

	Units         string
	Compression   string
	Indent        int
	Concurrency   int
	Strict        bool
	Schema        string
	ReportingName string
	Notes         string
	Quiet         bool
}

func NewConvertCommand(cli *CLI) *cobra.Command {
	opts := ConvertOptions{Type: pipeline.TypeProposed}

	cmd := &cobra.Command{
		Use:   "convert [flags] [PATH...]",
		Short: "Convert BDL models into an RPD document",
		Long: "Convert one or more BDL models into a single RPD document.\n\n" +
			"Each --model flag takes TYPE=PATH where PATH may be a file, a glob\n" +
			"pattern or a directory. Positional paths are converted as --type.\n",
		Example: "  rpdgen convert --model PROPOSED=prop.inp --model BASELINE_0=base/*.inp -O project.json.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.Config()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return runConvert(cmd, cli, cfg, &opts, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.Models, "model", "m", nil, "Model to convert as TYPE=PATH (repeatable)")
	f.StringVarP(&opts.Type, "type", "t", opts.Type, "Model type for positional paths")
	f.StringVar(&opts.Outputs, "outputs", "", "Simulation outputs fixture (json, yaml or toml)")
	f.StringVarP(&opts.Out, "out", "O", "", "Output path; .gz or .zst compresses. Default stdout")
	f.StringVar(&opts.Units, "units", "", "Output units: si or ip")
	f.StringVar(&opts.Compression, "compression", "", "Output compression: none, gzip or zstd")
	f.IntVar(&opts.Indent, "indent", 0, "JSON indent width; 0 writes compact output")
	f.IntVarP(&opts.Concurrency, "concurrency", "j", 0, "Models converted in parallel")
	f.BoolVar(&opts.Strict, "strict", false, "Fail models with missing simulation outputs")
	f.StringVar(&opts.Schema, "schema", "", "Schema source: embedded, a directory or an http(s) URL")
	f.StringVar(&opts.ReportingName, "reporting-name", "", "Project reporting name")
	f.StringVar(&opts.Notes, "notes", "", "Project notes")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Do not print warnings")
	return cmd
}

// apply overlays the flags the user set on cfg.
func (o *ConvertOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("units") {
		cfg.Output.Units = strings.ToLower(o.Units)
	}
	if f.Changed("compression") {
		cfg.Output.Compression = o.Compression
	}
	if f.Changed("indent") {
		cfg.Output.Indent = o.Indent
	}
	if f.Changed("concurrency") {
		cfg.Pipeline.Concurrency = o.Concurrency
	}
	if f.Changed("strict") {
		cfg.Pipeline.StrictOutputs = o.Strict
	}
	if f.Changed("schema") {
		cfg.Schema.Source = o.Schema
	}
	if f.Changed("reporting-name") {
		cfg.Output.ReportingName = o.ReportingName
	}
	if f.Changed("notes") {
		cfg.Output.Notes = o.Notes
	}
	return cfg.Validate()
}

func runConvert(cmd *cobra.Command, cli *CLI, cfg *config.Config, opts *ConvertOptions, args []string) error {
	ctx := cmd.Context()
	inputs, err := collectInputs(opts.Models, args, opts.Type)
	if err != nil {
		return err
	}

	logger, err := cli.Logger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	set, err := schema.Load(ctx, cfg.Schema.Source)
	if err != nil {
		return err
	}
	popts := pipeline.OptionsFrom(cfg, set)
	popts.Logger = logger
	popts.Metrics = monitoring.NewMetrics()
	if opts.Outputs != "" {
		if popts.Outputs, err = simoutput.LoadFile(opts.Outputs); err != nil {
			return err
		}
	}
	p, err := pipeline.New(popts)
	if err != nil {
		return err
	}

	res, err := p.ConvertProject(ctx, inputs)
	if res != nil && !opts.Quiet {
		for _, d := range res.Warnings() {
			cli.Warnf("warning: %s\n", d)
		}
	}
	if err != nil {
		return err
	}

	timer := monitoring.NewTimer(popts.Metrics, StageWrite)
	indent := strings.Repeat(" ", cfg.Output.Indent)
	if opts.Out == "" || opts.Out == "-" {
		err = rpd.Write(cli.Out, res.Document, indent)
	} else {
		err = rpd.WriteFile(opts.Out, cfg.Output.Compression, res.Document, indent)
	}
	if err != nil {
		return err
	}
	popts.Metrics.IncDocumentsWritten()
	timer.Stop()

	if !opts.Quiet {
		dest := opts.Out
		if dest == "" {
			dest = "stdout"
		}
		cli.Warnf("converted %d model(s) with %d warning(s) to %s\n", len(res.Models), len(res.Warnings()), dest)
	}
	return nil
}

// collectInputs expands TYPE=PATH specs and positional paths.
func collectInputs(specs, paths []string, defaultType string) ([]pipeline.Input, error) {
	var inputs []pipeline.Input
	add := func(typ string, patterns ...string) error {
		files, err := fsutil.Discover(patterns...)
		if err != nil {
			return err
		}
		for _, f := range files {
			inputs = append(inputs, pipeline.Input{Type: typ, Path: f})
		}
		return nil
	}

	for _, spec := range specs {
		typ, path, ok := strings.Cut(spec, "=")
		if !ok || typ == "" || path == "" {
			return nil, fmt.Errorf("invalid --model %q: expected TYPE=PATH", spec)
		}
		if err := add(strings.ToUpper(typ), path); err != nil {
			return nil, err
		}
	}
	if len(paths) > 0 {
		if err := add(strings.ToUpper(defaultType), paths...); err != nil {
			return nil, err
		}
	}
	if len(inputs) == 0 {
		return nil, errors.New("no models given: pass --model TYPE=PATH or a path")
	}
	return inputs, nil
}
