// Package aggregator turns a baseline score table plus interpreter-asserted
// impact deltas into final scores, rankings, and summaries. It is a pure
// computation: no I/O, no shared state, safe to call concurrently.
package aggregator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

const topN = 3

const defaultAspectReason = "no significant change"

type groupKey struct {
	country string
	aspect  string
}

type group struct {
	delta  int
	reason string
}

// Aggregate combines the baseline table with the given impacts and returns
// the full analysis bundle. Impacts referencing an unknown country or aspect
// are dropped and returned in the second value so the caller can log them.
// Deltas for the same (country, aspect) pair are summed before a single
// clamp; when several such impacts carry reasons, the first non-empty reason
// wins. The only error is an incomplete baseline table.
func Aggregate(baseline *model.BaselineTable, impacts []model.ImpactRecord) (*model.AnalysisResult, []model.ImpactRecord, error) {
	if err := baseline.Complete(); err != nil {
		return nil, nil, err
	}

	var valid, dropped []model.ImpactRecord
	groups := make(map[groupKey]*group)
	for _, impact := range impacts {
		if !impact.Valid() {
			dropped = append(dropped, impact)
			continue
		}
		valid = append(valid, impact)
		key := groupKey{impact.Country, impact.Aspect}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.delta += impact.Delta
		if g.reason == "" {
			g.reason = impact.Reason
		}
	}

	scenarioAspects := make(map[string]map[string]int, len(model.Countries))
	aspectDeltas := make(map[string]map[string]int, len(model.Countries))
	aspectReasons := make(map[string]map[string]string, len(model.Countries))
	scenarioScores := make(map[string]int, len(model.Countries))

	for _, country := range model.Countries {
		scores := make(map[string]int, len(model.Aspects))
		deltas := make(map[string]int, len(model.Aspects))
		reasons := make(map[string]string, len(model.Aspects))
		for _, aspect := range model.Aspects {
			base := baseline.AspectScores[country][aspect]
			score := base
			reason := defaultAspectReason
			if g, ok := groups[groupKey{country, aspect}]; ok {
				score = model.Clamp(base + g.delta)
				if g.reason != "" {
					reason = g.reason
				}
			}
			scores[aspect] = score
			// Effective delta: what actually moved after clamping,
			// so charts reconcile with the score table.
			deltas[aspect] = score - base
			reasons[aspect] = reason
		}
		scenarioAspects[country] = scores
		aspectDeltas[country] = deltas
		aspectReasons[country] = reasons
		scenarioScores[country] = model.TotalScore(scores)
	}

	rankChanges := buildRankChanges(baseline.CountryScores, scenarioScores)
	summary := summarize(rankChanges, aspectDeltas)

	result := &model.AnalysisResult{
		Impacts:               valid,
		CountryScores:         scenarioScores,
		AspectScores:          scenarioAspects,
		BaselineCountryScores: baseline.CountryScores,
		BaselineAspectScores:  baseline.AspectScores,
		AspectDeltas:          aspectDeltas,
		AspectReasons:         aspectReasons,
		RankChanges:           rankChanges,
		ImpactSummary:         summary,
		Explanations:          buildExplanations(valid),
	}
	return result, dropped, nil
}

// rankCountries orders countries by score descending. Ties keep the fixed
// enumeration order in model.Countries, so identical inputs always rank
// identically.
func rankCountries(scores map[string]int) map[string]int {
	order := make([]string, len(model.Countries))
	copy(order, model.Countries)
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	positions := make(map[string]int, len(order))
	for idx, country := range order {
		positions[country] = idx + 1
	}
	return positions
}

func buildRankChanges(baselineScores, scenarioScores map[string]int) []model.RankChange {
	basePos := rankCountries(baselineScores)
	newPos := rankCountries(scenarioScores)

	changes := make([]model.RankChange, 0, len(model.Countries))
	for _, country := range model.Countries {
		changes = append(changes, model.RankChange{
			Country:      country,
			Rank:         newPos[country],
			PreviousRank: basePos[country],
			RankChange:   basePos[country] - newPos[country],
			Score:        scenarioScores[country],
			ScoreChange:  scenarioScores[country] - baselineScores[country],
		})
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Rank < changes[j].Rank
	})
	return changes
}

func summarize(rankChanges []model.RankChange, aspectDeltas map[string]map[string]int) model.ImpactSummary {
	byGain := make([]model.RankChange, len(rankChanges))
	copy(byGain, rankChanges)
	sort.SliceStable(byGain, func(i, j int) bool {
		return byGain[i].ScoreChange > byGain[j].ScoreChange
	})

	var risers, fallers []model.RankChange
	for _, entry := range byGain {
		if entry.ScoreChange > 0 && len(risers) < topN {
			risers = append(risers, entry)
		}
	}
	for i := len(byGain) - 1; i >= 0; i-- {
		if byGain[i].ScoreChange < 0 && len(fallers) < topN {
			fallers = append(fallers, byGain[i])
		}
	}

	var aspects []model.AspectImpact
	for _, aspect := range model.Aspects {
		sum, sumAbs := 0, 0
		for _, country := range model.Countries {
			delta := aspectDeltas[country][aspect]
			sum += delta
			if delta < 0 {
				delta = -delta
			}
			sumAbs += delta
		}
		if sumAbs == 0 {
			continue
		}
		n := float64(len(model.Countries))
		aspects = append(aspects, model.AspectImpact{
			Aspect:       aspect,
			Delta:        round2(float64(sum) / n),
			MeanAbsDelta: round2(float64(sumAbs) / n),
		})
	}
	sort.SliceStable(aspects, func(i, j int) bool {
		return aspects[i].MeanAbsDelta > aspects[j].MeanAbsDelta
	})
	if len(aspects) > topN {
		aspects = aspects[:topN]
	}

	return model.ImpactSummary{
		TopRisers:  risers,
		TopFallers: fallers,
		TopAspects: aspects,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func buildExplanations(impacts []model.ImpactRecord) map[string]string {
	lines := make(map[string][]string, len(model.Countries))
	for _, impact := range impacts {
		reason := impact.Reason
		if reason == "" {
			reason = "impact applied"
		}
		lines[impact.Country] = append(lines[impact.Country],
			fmt.Sprintf("%s: %+d points because %s.", impact.Aspect, impact.Delta, strings.TrimSuffix(reason, ".")))
	}

	explanations := make(map[string]string, len(model.Countries))
	for _, country := range model.Countries {
		if entries := lines[country]; len(entries) > 0 {
			explanations[country] = strings.Join(entries, " ")
		} else {
			explanations[country] = "No significant changes."
		}
	}
	return explanations
}

// BuildNarrative renders the free-text analysis shown in the chat panel.
func BuildNarrative(scenarioSummary string, summary model.ImpactSummary) string {
	var lines []string
	if scenarioSummary != "" {
		lines = append(lines, "Scenario: "+scenarioSummary)
	}
	if names := countryNames(summary.TopRisers); len(names) > 0 {
		lines = append(lines, "Top risers: "+strings.Join(names, ", "))
	}
	if names := countryNames(summary.TopFallers); len(names) > 0 {
		lines = append(lines, "Top fallers: "+strings.Join(names, ", "))
	}
	if len(summary.TopAspects) > 0 {
		names := make([]string, 0, len(summary.TopAspects))
		for _, entry := range summary.TopAspects {
			names = append(names, entry.Aspect)
		}
		lines = append(lines, "Most affected aspects: "+strings.Join(names, ", "))
	}
	if len(lines) == 0 {
		return "Scenario analyzed. No significant changes detected."
	}
	return strings.Join(lines, "\n")
}

func countryNames(entries []model.RankChange) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Country)
	}
	return names
}
