package model

import "errors"

// Countries tracked by the resilience model. The slice order is the fixed
// tie-break order used when ranking countries with equal scores, and the
// strings are the exact literals the frontend indexes by.
var Countries = []string{
	"India",
	"China",
	"Pakistan",
	"Nepal",
	"Bangladesh",
	"Sri Lanka",
	"USA",
	"Russia",
	"Japan",
	"UK",
}

// Aspects are the seven resilience dimensions scored per country.
var Aspects = []string{
	"Economic Stability",
	"Defense & Strategic Security",
	"Healthcare & Biological Readiness",
	"Cyber Resilience & Digital Infrastructure",
	"Demographic & Social Stability",
	"Energy Security",
	"Debt & Fiscal Sustainability",
}

var (
	// ErrEmptyBaseline means the baseline table is missing a required
	// (country, aspect) cell. Scoring cannot proceed on partial data.
	ErrEmptyBaseline = errors.New("baseline table is incomplete")

	// ErrInterpretation means the upstream scenario interpreter failed.
	// Callers recover by treating the scenario as having no impacts.
	ErrInterpretation = errors.New("scenario interpretation failed")
)

var (
	countrySet = toSet(Countries)
	aspectSet  = toSet(Aspects)
)

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// ValidCountry reports whether name is one of the ten tracked countries.
func ValidCountry(name string) bool {
	_, ok := countrySet[name]
	return ok
}

// ValidAspect reports whether name is one of the seven scored aspects.
func ValidAspect(name string) bool {
	_, ok := aspectSet[name]
	return ok
}

// Clamp bounds a score to the [0, 100] scale.
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TotalScore averages a country's aspect scores, rounded to the nearest
// integer and clamped to [0, 100].
func TotalScore(aspectScores map[string]int) int {
	if len(aspectScores) == 0 {
		return 0
	}
	total := 0
	for _, score := range aspectScores {
		total += score
	}
	mean := float64(total) / float64(len(aspectScores))
	return Clamp(int(mean + 0.5))
}

// ImpactRecord is one delta asserted by the interpreter against a
// (country, aspect) pair.
type ImpactRecord struct {
	Country string `json:"country"`
	Aspect  string `json:"aspect"`
	Delta   int    `json:"delta"`
	Reason  string `json:"reason"`
}

// Valid reports whether the record references a known country and aspect.
func (r ImpactRecord) Valid() bool {
	return ValidCountry(r.Country) && ValidAspect(r.Aspect)
}

// Interpretation is the structured output of the scenario interpreter.
type Interpretation struct {
	Summary       string              `json:"summary"`
	Impacts       []ImpactRecord      `json:"impacts"`
	Interventions map[string][]string `json:"interventions"`
}

// BaselineTable is the immutable pre-scenario score table. It must cover
// every Country x Aspect pair.
type BaselineTable struct {
	AspectScores  map[string]map[string]int `json:"baseline_aspect_scores"`
	CountryScores map[string]int            `json:"baseline_country_scores"`
}

// Complete verifies every Country x Aspect cell is present and in range.
func (t *BaselineTable) Complete() error {
	if t == nil {
		return ErrEmptyBaseline
	}
	for _, country := range Countries {
		aspects, ok := t.AspectScores[country]
		if !ok {
			return ErrEmptyBaseline
		}
		for _, aspect := range Aspects {
			score, ok := aspects[aspect]
			if !ok || score < 0 || score > 100 {
				return ErrEmptyBaseline
			}
		}
		if _, ok := t.CountryScores[country]; !ok {
			return ErrEmptyBaseline
		}
	}
	return nil
}

// RankChange describes a country's position in the scenario ranking
// relative to the baseline ranking.
type RankChange struct {
	Country      string `json:"country"`
	Rank         int    `json:"rank"`
	PreviousRank int    `json:"previous_rank"`
	RankChange   int    `json:"rank_change"`
	Score        int    `json:"score"`
	ScoreChange  int    `json:"score_change"`
}

// AspectImpact summarizes how strongly one aspect moved across all
// countries.
type AspectImpact struct {
	Aspect       string  `json:"aspect"`
	Delta        float64 `json:"delta"`
	MeanAbsDelta float64 `json:"mean_abs_delta"`
}

// ImpactSummary is the derived digest of an analysis: biggest score gains,
// biggest losses, and the aspects that moved the most.
type ImpactSummary struct {
	TopRisers  []RankChange   `json:"top_risers"`
	TopFallers []RankChange   `json:"top_fallers"`
	TopAspects []AspectImpact `json:"top_aspects"`
}

// ModelMetadata documents how the baseline was derived.
type ModelMetadata struct {
	Indicators    []string                      `json:"indicators"`
	AspectWeights map[string]map[string]float64 `json:"aspect_weights"`
	Methodology   string                        `json:"methodology"`
}

// AnalysisResult is the full output bundle for one scenario.
type AnalysisResult struct {
	Analysis              string                       `json:"analysis"`
	ScenarioSummary       string                       `json:"scenario_summary"`
	Impacts               []ImpactRecord               `json:"impacts"`
	CountryScores         map[string]int               `json:"country_scores"`
	AspectScores          map[string]map[string]int    `json:"aspect_scores"`
	BaselineCountryScores map[string]int               `json:"baseline_country_scores"`
	BaselineAspectScores  map[string]map[string]int    `json:"baseline_aspect_scores"`
	AspectDeltas          map[string]map[string]int    `json:"aspect_deltas"`
	AspectReasons         map[string]map[string]string `json:"aspect_reasons"`
	RankChanges           []RankChange                 `json:"rank_changes"`
	ImpactSummary         ImpactSummary                `json:"impact_summary"`
	Explanations          map[string]string            `json:"explanations"`
	Interventions         map[string][]string          `json:"interventions,omitempty"`
	ModelMetadata         *ModelMetadata               `json:"model_metadata,omitempty"`
}
