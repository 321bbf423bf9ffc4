package pipeline

import (
	"slices"
	"strings"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

// Ruleset model types.
const (
	TypeUser        = "USER"
	TypeProposed    = "PROPOSED"
	TypeBaseline0   = "BASELINE_0"
	TypeBaseline90  = "BASELINE_90"
	TypeBaseline180 = "BASELINE_180"
	TypeBaseline270 = "BASELINE_270"
)

var rotatedBaselines = []string{TypeBaseline90, TypeBaseline180, TypeBaseline270}

// validateProject checks the model composition the ruleset expects.
// Findings are warnings; conversion continues.
func (p *Pipeline) validateProject(models []ModelResult) []model.Diagnostic {
	if p.opts.Ruleset != config.RulesetASHRAE9012019 {
		return nil
	}
	d := model.NewDiagnostics("")

	types := make([]string, 0, len(models))
	for _, m := range models {
		if slices.Contains(types, m.Type) {
			d.Warn("", "", "more than one %s model", m.Type)
			continue
		}
		types = append(types, m.Type)
	}

	if slices.Contains(types, TypeBaseline0) {
		var missing []string
		for _, t := range rotatedBaselines {
			if !slices.Contains(types, t) {
				missing = append(missing, t)
			}
		}
		if len(missing) > 0 {
			d.Warn("", "", "missing companion model: %s", strings.Join(missing, ", "))
		}
	}
	if !slices.Contains(types, TypeProposed) {
		d.Warn("", "", "no %s model in project", TypeProposed)
	}
	return d.All()
}
