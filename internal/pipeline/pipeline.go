// Package pipeline converts a set of BDL models into one RPD document:
// read → instantiate → derive → shape → attach per model, then assemble,
// make identifiers unique and convert to the schema's units.
package pipeline

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/bdl"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/logging"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model/commands"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/rpd"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/id"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrModelFailed wraps every per-model failure.
	ErrModelFailed = errors.New("pipeline: model conversion failed")
	ErrNoModels    = errors.New("pipeline: no models to convert")
	ErrModelType   = errors.New("pipeline: unknown model type")
)

const modelTypeEnum = "RulesetModelOptions"

// Stages timed outside the model lifecycle.
const (
	StageRead     = "read"
	StageAssemble = "assemble"
	StageUnits    = "units"
)

// Input is one model to convert. Text wins over Path when both are set.
type Input struct {
	Type string
	Path string
	Name string
	Text string
}

func (in Input) label() string {
	switch {
	case in.Name != "":
		return in.Name
	case in.Path != "":
		return filepath.Base(in.Path)
	}
	return strings.ToLower(in.Type)
}

// Options configures a Pipeline.
type Options struct {
	Schema  *schema.Set
	Outputs simoutput.Source

	Units         string
	Ruleset       string
	Concurrency   int
	StrictOutputs bool

	DataVersion   string
	ReportingName string
	Notes         string

	Logger  *logging.Logger
	Metrics *monitoring.Metrics
	Clock   func() time.Time
}

// OptionsFrom fills the configurable options from cfg.
func OptionsFrom(cfg *config.Config, set *schema.Set) Options {
	return Options{
		Schema:        set,
		Units:         cfg.Output.Units,
		Ruleset:       cfg.Pipeline.Ruleset,
		Concurrency:   cfg.Pipeline.Concurrency,
		StrictOutputs: cfg.Pipeline.StrictOutputs,
		DataVersion:   cfg.Schema.Version,
		ReportingName: cfg.Output.ReportingName,
		Notes:         cfg.Output.Notes,
	}
}

// Pipeline converts projects. It holds no per-run state and may be shared.
type Pipeline struct {
	opts      Options
	factories model.Factories
	converter *rpd.Converter
	types     []string
}

// New validates that the schema declares every enumeration member the
// derivation units emit and prepares the unit pass.
func New(opts Options) (*Pipeline, error) {
	if opts.Schema == nil {
		return nil, errors.New("pipeline: schema set is required")
	}
	if err := opts.Schema.Enums().Require(commands.Required()); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if opts.Outputs == nil {
		opts.Outputs = simoutput.Empty
	}
	if opts.Units == "" {
		opts.Units = config.UnitsSI
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Pipeline{
		opts:      opts,
		factories: commands.Factories(),
		converter: rpd.NewConverter(opts.Schema.Units(), rpd.Overrides(commands.InternalUnits())),
		types:     opts.Schema.Enums().Enum(modelTypeEnum).Members(),
	}, nil
}

// WithOutputs returns a pipeline sharing p's settings that reads simulation
// outputs from src.
func (p *Pipeline) WithOutputs(src simoutput.Source) *Pipeline {
	if src == nil {
		src = simoutput.Empty
	}
	cp := *p
	cp.opts.Outputs = src
	return &cp
}

// Options returns the effective options.
func (p *Pipeline) Options() Options { return p.opts }

// ModelResult reports one model of a run.
type ModelResult struct {
	Label       string
	Type        string
	Fingerprint string
	Version     string
	Counts      map[string]int
	Diagnostics []model.Diagnostic
	Err         error
}

// Result is the outcome of ConvertProject.
type Result struct {
	RunID    id.RunID
	Document map[string]any
	Models   []ModelResult
	// Diagnostics holds project-level findings; per-model ones live in Models.
	Diagnostics []model.Diagnostic
	Renames     []rpd.Rename
}

// Warnings returns every warning of the run, project findings first.
func (r *Result) Warnings() []model.Diagnostic {
	var out []model.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Level == model.LevelWarning {
			out = append(out, d)
		}
	}
	for _, m := range r.Models {
		for _, d := range m.Diagnostics {
			if d.Level == model.LevelWarning {
				out = append(out, d)
			}
		}
	}
	return out
}

// ConvertProject converts every input and assembles the RPD. Models are
// independent; with Concurrency > 1 they run in parallel. When any model
// fails the result still lists every model and the returned error joins all
// failures.
func (p *Pipeline) ConvertProject(ctx context.Context, inputs []Input) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoModels
	}
	runID := id.NewRunID()
	logger := p.opts.Logger.ForRun(runID.String())
	res := &Result{RunID: runID, Models: make([]ModelResult, len(inputs))}
	docs := make([]*model.Document, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Models[i] = ModelResult{Label: in.label(), Type: in.Type, Err: err}
				return nil
			}
			res.Models[i], docs[i] = p.convertModel(in, logger)
			return nil
		})
	}
	_ = g.Wait()

	var failures []error
	var models []rpd.Model
	for i, m := range res.Models {
		status := monitoring.StatusConverted
		if m.Err != nil {
			status = monitoring.StatusFailed
			failures = append(failures, m.Err)
		} else {
			models = append(models, rpd.Model{ID: m.Label, Type: m.Type, Document: docs[i]})
		}
		p.opts.Metrics.RecordModel(status, m.Counts)
		p.recordDiagnostics(m.Diagnostics)
	}
	if len(failures) > 0 {
		logger.Error("project conversion failed", zap.Int("failed", len(failures)))
		return res, errors.Join(failures...)
	}

	res.Diagnostics = p.validateProject(res.Models)
	p.recordDiagnostics(res.Diagnostics)
	for _, d := range res.Diagnostics {
		logger.Warn(d.Message, logging.Model(d.Model))
	}

	start := time.Now()
	res.Document = rpd.Assemble(rpd.Project{
		ID:            id.DocumentID(fingerprints(res.Models)...),
		Timestamp:     p.opts.Clock(),
		DataVersion:   p.opts.DataVersion,
		ReportingName: p.opts.ReportingName,
		Notes:         p.opts.Notes,
	}, models)
	res.Renames = rpd.UniqueIDs(res.Document)
	p.opts.Metrics.ObserveStage(StageAssemble, time.Since(start))
	for _, r := range res.Renames {
		logger.Debug("renamed duplicate id", logging.Model(r.Model), zap.String("from", r.From), zap.String("to", r.To))
	}

	if p.opts.Units == config.UnitsSI {
		start = time.Now()
		if err := p.converter.Convert(res.Document); err != nil {
			return res, fmt.Errorf("pipeline: unit conversion: %w", err)
		}
		p.opts.Metrics.ObserveStage(StageUnits, time.Since(start))
	}

	logger.Info("project converted",
		zap.Int("models", len(models)),
		zap.Int("warnings", len(res.Warnings())),
		zap.Int("renamed_ids", len(res.Renames)),
	)
	return res, nil
}

// convertModel runs one model through read and the lifecycle. Failures are
// reported on the result, wrapped in ErrModelFailed.
func (p *Pipeline) convertModel(in Input, logger *zap.Logger) (ModelResult, *model.Document) {
	res := ModelResult{Label: in.label(), Type: in.Type}
	logger = logger.With(logging.Model(res.Label))
	fail := func(err error) (ModelResult, *model.Document) {
		res.Err = fmt.Errorf("%w: %s: %w", ErrModelFailed, res.Label, err)
		logger.Error("model failed", zap.Error(err))
		return res, nil
	}

	if !slices.Contains(p.types, in.Type) {
		return fail(fmt.Errorf("%w %q", ErrModelType, in.Type))
	}

	start := time.Now()
	text := in.Text
	if text == "" && in.Path != "" {
		var err error
		if text, err = fsutil.ReadText(in.Path); err != nil {
			return fail(err)
		}
	}
	file, err := bdl.NewReader(bdl.WithLogger(logger)).Read(strings.NewReader(text))
	if err != nil {
		return fail(err)
	}
	p.opts.Metrics.ObserveStage(StageRead, time.Since(start))
	res.Fingerprint = Fingerprint(text)
	res.Version = file.Version

	rmd := model.New(file, model.Config{
		Type:          in.Type,
		Label:         res.Label,
		Enums:         p.opts.Schema.Enums(),
		Outputs:       p.opts.Outputs,
		Factories:     p.factories,
		Logger:        logger,
		StageObserver: p.opts.Metrics.ObserveStage,
	})
	doc, err := rmd.Build()
	res.Counts = rmd.Counts()
	res.Diagnostics = rmd.Diagnostics.All()
	if err != nil {
		return fail(err)
	}
	if p.opts.StrictOutputs {
		if missing := missingOutputs(res.Diagnostics); len(missing) > 0 {
			return fail(fmt.Errorf("simulation outputs missing for %s", strings.Join(missing, ", ")))
		}
	}

	logger.Debug("instance counts", zap.Any("counts", res.Counts))
	logger.Info("model converted",
		zap.String("type", in.Type),
		zap.String("version", res.Version),
		zap.Int("diagnostics", len(res.Diagnostics)),
	)
	return res, doc
}

func (p *Pipeline) recordDiagnostics(ds []model.Diagnostic) {
	var warnings, errs int
	for _, d := range ds {
		if d.Level == model.LevelError {
			errs++
		} else {
			warnings++
		}
	}
	p.opts.Metrics.RecordDiagnostics(string(model.LevelWarning), warnings)
	p.opts.Metrics.RecordDiagnostics(string(model.LevelError), errs)
}

// Fingerprint identifies model text: the hex BLAKE2b-256 digest.
func Fingerprint(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func fingerprints(models []ModelResult) []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		out = append(out, m.Type+":"+m.Fingerprint)
	}
	return out
}

func missingOutputs(ds []model.Diagnostic) []string {
	var out []string
	for _, d := range ds {
		if d.Message == commands.MissingOutputs {
			out = append(out, fmt.Sprintf("%s %q", d.Command, d.Instance))
		}
	}
	return out
}
