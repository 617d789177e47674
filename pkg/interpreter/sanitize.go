package interpreter

import "github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"

const (
	maxDelta      = 20
	defaultReason = "AI assessment of scenario impact."
)

// interventionMap suggests one mitigation measure per aspect.
var interventionMap = map[string]string{
	"Economic Stability":                        "stabilize trade flows and secure fiscal buffers",
	"Defense & Strategic Security":              "strengthen emergency readiness and regional coordination",
	"Healthcare & Biological Readiness":         "expand surge capacity and public health logistics",
	"Cyber Resilience & Digital Infrastructure": "harden critical infrastructure and response playbooks",
	"Demographic & Social Stability":            "increase social support and risk communication",
	"Energy Security":                           "diversify energy supply and protect energy infrastructure",
	"Debt & Fiscal Sustainability":              "restructure liabilities and preserve fiscal headroom",
}

// sanitizeImpacts clamps deltas to [-20, 20], coerces zero deltas to -1,
// fills missing reasons, and drops records referencing unknown countries or
// aspects.
func sanitizeImpacts(impacts []model.ImpactRecord) (valid, dropped []model.ImpactRecord) {
	for _, impact := range impacts {
		if !impact.Valid() {
			dropped = append(dropped, impact)
			continue
		}

		if impact.Delta == 0 {
			impact.Delta = -1
		}
		if impact.Delta > maxDelta {
			impact.Delta = maxDelta
		}
		if impact.Delta < -maxDelta {
			impact.Delta = -maxDelta
		}
		if impact.Reason == "" {
			impact.Reason = defaultReason
		}
		valid = append(valid, impact)
	}
	return valid, dropped
}

// ensureCountryCoverage backfills a mild economic spillover impact for any
// country the model left out, sized from the average magnitude and dominant
// direction of the impacts it did return.
func ensureCountryCoverage(impacts []model.ImpactRecord) []model.ImpactRecord {
	covered := make(map[string]struct{}, len(impacts))
	sum, sumAbs := 0, 0
	for _, impact := range impacts {
		covered[impact.Country] = struct{}{}
		sum += impact.Delta
		if impact.Delta < 0 {
			sumAbs -= impact.Delta
		} else {
			sumAbs += impact.Delta
		}
	}

	magnitude := 2
	if len(impacts) > 0 {
		avgAbs := float64(sumAbs) / float64(len(impacts))
		if m := int(avgAbs*0.3 + 0.5); m > magnitude {
			magnitude = m
		}
	}
	direction := -1
	if len(impacts) > 0 && sum >= 0 {
		direction = 1
	}

	for _, country := range model.Countries {
		if _, ok := covered[country]; ok {
			continue
		}
		impacts = append(impacts, model.ImpactRecord{
			Country: country,
			Aspect:  "Economic Stability",
			Delta:   direction * magnitude,
			Reason:  "Global spillovers from the scenario affect trade, investment, and confidence.",
		})
	}
	return impacts
}

// suggestInterventions maps each country's impacted aspects to at most three
// distinct mitigation measures.
func suggestInterventions(impacts []model.ImpactRecord) map[string][]string {
	suggestions := make(map[string][]string, len(model.Countries))
	seen := make(map[string]map[string]struct{}, len(model.Countries))
	for _, country := range model.Countries {
		suggestions[country] = nil
		seen[country] = make(map[string]struct{})
	}

	for _, impact := range impacts {
		measure, ok := interventionMap[impact.Aspect]
		if !ok {
			continue
		}
		if _, dup := seen[impact.Country][measure]; dup {
			continue
		}
		if len(suggestions[impact.Country]) >= 3 {
			continue
		}
		suggestions[impact.Country] = append(suggestions[impact.Country], measure)
		seen[impact.Country][measure] = struct{}{}
	}

	for _, country := range model.Countries {
		if len(suggestions[country]) == 0 {
			suggestions[country] = []string{"maintain monitoring and contingency planning"}
		}
	}
	return suggestions
}
