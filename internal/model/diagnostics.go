package model

import "fmt"

// Level of a diagnostic.
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Diagnostic is one validation finding. It never stops processing.
type Diagnostic struct {
	Level    Level  `json:"level"`
	Model    string `json:"model,omitempty"`
	Command  string `json:"command,omitempty"`
	Instance string `json:"instance,omitempty"`
	Message  string `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Instance != "":
		return fmt.Sprintf("%s %s %q: %s", d.Level, d.Command, d.Instance, d.Message)
	case d.Model != "":
		return fmt.Sprintf("%s %s: %s", d.Level, d.Model, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Level, d.Message)
}

// Diagnostics accumulates findings for one model or project. It is owned by
// a single run and not safe for concurrent use.
type Diagnostics struct {
	model string
	items []Diagnostic
}

// NewDiagnostics returns a collector tagging findings with model.
func NewDiagnostics(model string) *Diagnostics {
	return &Diagnostics{model: model}
}

// Warn records a warning.
func (d *Diagnostics) Warn(command, instance, format string, args ...any) {
	d.add(LevelWarning, command, instance, fmt.Sprintf(format, args...))
}

// Error records a non-fatal error.
func (d *Diagnostics) Error(command, instance, format string, args ...any) {
	d.add(LevelError, command, instance, fmt.Sprintf(format, args...))
}

func (d *Diagnostics) add(level Level, command, instance, msg string) {
	d.items = append(d.items, Diagnostic{
		Level:    level,
		Model:    d.model,
		Command:  command,
		Instance: instance,
		Message:  msg,
	})
}

// All returns every finding in record order.
func (d *Diagnostics) All() []Diagnostic {
	return append([]Diagnostic(nil), d.items...)
}

// Warnings returns the warnings.
func (d *Diagnostics) Warnings() []Diagnostic { return d.filter(LevelWarning) }

// Errors returns the non-fatal errors.
func (d *Diagnostics) Errors() []Diagnostic { return d.filter(LevelError) }

func (d *Diagnostics) filter(level Level) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.items {
		if item.Level == level {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of findings.
func (d *Diagnostics) Len() int { return len(d.items) }
