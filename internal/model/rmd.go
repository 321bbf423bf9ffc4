// Package model is the object graph built from one BDL file: typed instances
// with structural parents, name references resolved through the owning model,
// and the derive / shape / attach lifecycle that produces one model
// description.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/bdl"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/schedule"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/schemaenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"go.uber.org/zap"
)

// ErrUnresolved reports a reference that must resolve but does not.
var ErrUnresolved = errors.New("model: unresolved reference")

// DefaultYear is simulated when no run period names one.
const DefaultYear = 2019

// ProcessingOrder is the fixed order command types are derived in. A type
// may resolve references to any type earlier in the list.
var ProcessingOrder = []string{
	bdlenum.CmdRunPeriod,
	bdlenum.CmdHolidays,
	bdlenum.CmdSiteParameters,
	bdlenum.CmdBuildParameters,
	bdlenum.CmdFuelMeter,
	bdlenum.CmdElecMeter,
	bdlenum.CmdSteamMeter,
	bdlenum.CmdChwMeter,
	bdlenum.CmdMasterMeters,
	bdlenum.CmdDaySchedule,
	bdlenum.CmdWeekSchedule,
	bdlenum.CmdSchedule,
	bdlenum.CmdCurveFit,
	bdlenum.CmdPolygon,
	bdlenum.CmdMaterial,
	bdlenum.CmdLayers,
	bdlenum.CmdConstruction,
	bdlenum.CmdGlassType,
	bdlenum.CmdLoop,
	bdlenum.CmdPump,
	bdlenum.CmdEquipCtrl,
	bdlenum.CmdGroundLoopHX,
	bdlenum.CmdBoiler,
	bdlenum.CmdChiller,
	bdlenum.CmdHeatRejection,
	bdlenum.CmdDWHeater,
	bdlenum.CmdFloor,
	bdlenum.CmdSpace,
	bdlenum.CmdExteriorWall,
	bdlenum.CmdInteriorWall,
	bdlenum.CmdUndergroundWall,
	bdlenum.CmdWindow,
	bdlenum.CmdDoor,
	bdlenum.CmdSystem,
	bdlenum.CmdZone,
}

// Lifecycle stage names reported to StageObserver.
const (
	StageInstantiate = "instantiate"
	StageDerive      = "derive"
	StageShape       = "shape"
	StageAttach      = "attach"
)

// Config carries what a model needs besides its parsed file.
type Config struct {
	// Type is the ruleset model type (USER, PROPOSED, BASELINE_0, ...).
	Type string
	// Label names the model in diagnostics and ids, usually the file name.
	Label string

	Enums     *schemaenum.Registry
	Outputs   simoutput.Source
	Factories Factories
	Logger    *zap.Logger

	// StageObserver, when set, receives the duration of each lifecycle stage.
	StageObserver func(stage string, d time.Duration)
}

// RMD is the aggregate root of one model: it owns the name map, the
// simulation calendar and the diagnostics of a single conversion.
type RMD struct {
	Type    string
	Label   string
	Version string

	Enums       *schemaenum.Registry
	Outputs     simoutput.Source
	Diagnostics *Diagnostics
	Logger      *zap.Logger

	// Calendar is replaced by the run period and holidays during derivation.
	Calendar *schedule.Calendar

	file      *bdl.File
	factories Factories
	observe   func(string, time.Duration)

	names     map[string]Instance
	order     []Instance
	byCommand map[string][]Instance
}

// New creates the model for a parsed file. Nothing is instantiated yet.
func New(file *bdl.File, cfg Config) *RMD {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	outputs := cfg.Outputs
	if outputs == nil {
		outputs = simoutput.Empty
	}
	observe := cfg.StageObserver
	if observe == nil {
		observe = func(string, time.Duration) {}
	}
	return &RMD{
		Type:        cfg.Type,
		Label:       cfg.Label,
		Version:     file.Version,
		Enums:       cfg.Enums,
		Outputs:     outputs,
		Diagnostics: NewDiagnostics(cfg.Label),
		Logger:      logger.With(zap.String("model", cfg.Label)),
		Calendar:    schedule.ForYear(DefaultYear),
		file:        file,
		factories:   cfg.Factories,
		observe:     observe,
		names:       make(map[string]Instance),
		byCommand:   make(map[string][]Instance),
	}
}

// Resolve returns the instance with the given name.
func (r *RMD) Resolve(name string) (Instance, bool) {
	inst, ok := r.names[name]
	return inst, ok
}

// MustResolve is Resolve for references that must exist.
func (r *RMD) MustResolve(command, owner, keyword, name string) (Instance, error) {
	inst, ok := r.names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q %s = %q", ErrUnresolved, command, owner, keyword, name)
	}
	return inst, nil
}

// Instances returns the instances of one command type in declaration order.
func (r *RMD) Instances(command string) []Instance {
	return append([]Instance(nil), r.byCommand[command]...)
}

// Names returns the instance names of one command type.
func (r *RMD) Names(command string) []string {
	out := make([]string, 0, len(r.byCommand[command]))
	for _, inst := range r.byCommand[command] {
		out = append(out, inst.Base().Name)
	}
	return out
}

// Counts returns the number of instances per command type.
func (r *RMD) Counts() map[string]int {
	out := make(map[string]int, len(r.byCommand))
	for cmd, list := range r.byCommand {
		out[cmd] = len(list)
	}
	return out
}

// Build runs the whole lifecycle and returns the shaped document. An error
// means the model could not be interpreted; diagnostics never cause one.
func (r *RMD) Build() (*Document, error) {
	if err := r.timed(StageInstantiate, r.Instantiate); err != nil {
		return nil, err
	}
	if err := r.timed(StageDerive, r.Derive); err != nil {
		return nil, err
	}
	_ = r.timed(StageShape, func() error { r.Shape(); return nil })

	doc := NewDocument()
	_ = r.timed(StageAttach, func() error { r.Attach(doc); return nil })
	return doc, nil
}

func (r *RMD) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.observe(stage, time.Since(start))
	return err
}

// Instantiate creates one instance per record with a factory and links
// structural parents. Names are unique per model; a repeated name keeps the
// first instance and is reported.
func (r *RMD) Instantiate() error {
	if len(r.order) > 0 {
		return errors.New("model: already instantiated")
	}
	for _, rec := range r.file.Records {
		factory, ok := r.factories[rec.Command]
		if !ok {
			continue
		}
		inst := factory(NewNode(rec, r))
		if inst == nil {
			continue
		}
		if _, dup := r.names[rec.Name]; dup {
			r.Diagnostics.Warn(rec.Command, rec.Name, "duplicate name; later declaration ignored")
			continue
		}
		r.names[rec.Name] = inst
		r.order = append(r.order, inst)
		r.byCommand[rec.Command] = append(r.byCommand[rec.Command], inst)
	}

	for _, inst := range r.order {
		rec := inst.Base().Record
		if rec.Parent == "" {
			continue
		}
		child, ok := inst.(HasParent)
		if !ok {
			continue
		}
		parent, ok := r.names[rec.Parent].(HasChildren)
		if !ok {
			continue
		}
		child.SetParent(parent.(Instance))
		parent.AddChild(inst)
	}

	for cmd, list := range r.byCommand {
		r.Logger.Debug("instantiated", zap.String("command", cmd), zap.Int("count", len(list)))
	}
	return nil
}

// Derive runs Derive for every instance, one command type at a time in
// ProcessingOrder.
func (r *RMD) Derive() error {
	for _, cmd := range ProcessingOrder {
		list := r.byCommand[cmd]
		if len(list) == 0 {
			continue
		}
		start := time.Now()
		for _, inst := range list {
			if err := inst.Derive(); err != nil {
				return fmt.Errorf("derive %s %q: %w", cmd, inst.Base().Name, err)
			}
		}
		r.Logger.Debug("derived",
			zap.String("command", cmd),
			zap.Int("count", len(list)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return nil
}

// Shape stores the shaped structure of every non-omitted instance.
func (r *RMD) Shape() {
	for _, cmd := range ProcessingOrder {
		for _, inst := range r.byCommand[cmd] {
			n := inst.Base()
			if n.Omit {
				continue
			}
			n.Data = inst.Shape()
		}
	}
}

// Attach walks each structural tree in post-order, roots in processing
// order. Omitted instances and everything below them are skipped.
func (r *RMD) Attach(doc *Document) {
	for _, cmd := range ProcessingOrder {
		for _, inst := range r.byCommand[cmd] {
			if c, ok := inst.(HasParent); ok && c.Parent() != nil {
				continue
			}
			r.attach(inst, doc)
		}
	}
}

func (r *RMD) attach(inst Instance, doc *Document) {
	if inst.Base().Omit {
		return
	}
	if p, ok := inst.(HasChildren); ok {
		for _, child := range p.Children() {
			r.attach(child, doc)
		}
	}
	inst.Attach(doc)
}
