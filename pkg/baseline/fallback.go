package baseline

import "github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"

// fallbackAspectScores is a checked-in snapshot of the baseline table, used
// when the World Bank API is unreachable and no cache file exists.
var fallbackAspectScores = map[string]map[string]int{
	"India":      {"Economic Stability": 55, "Defense & Strategic Security": 70, "Healthcare & Biological Readiness": 55, "Cyber Resilience & Digital Infrastructure": 50, "Demographic & Social Stability": 50, "Energy Security": 60, "Debt & Fiscal Sustainability": 50},
	"China":      {"Economic Stability": 78, "Defense & Strategic Security": 85, "Healthcare & Biological Readiness": 70, "Cyber Resilience & Digital Infrastructure": 80, "Demographic & Social Stability": 60, "Energy Security": 75, "Debt & Fiscal Sustainability": 60},
	"Pakistan":   {"Economic Stability": 40, "Defense & Strategic Security": 65, "Healthcare & Biological Readiness": 45, "Cyber Resilience & Digital Infrastructure": 40, "Demographic & Social Stability": 45, "Energy Security": 45, "Debt & Fiscal Sustainability": 35},
	"Nepal":      {"Economic Stability": 45, "Defense & Strategic Security": 50, "Healthcare & Biological Readiness": 50, "Cyber Resilience & Digital Infrastructure": 35, "Demographic & Social Stability": 55, "Energy Security": 40, "Debt & Fiscal Sustainability": 40},
	"Bangladesh": {"Economic Stability": 50, "Defense & Strategic Security": 55, "Healthcare & Biological Readiness": 50, "Cyber Resilience & Digital Infrastructure": 40, "Demographic & Social Stability": 50, "Energy Security": 45, "Debt & Fiscal Sustainability": 45},
	"Sri Lanka":  {"Economic Stability": 35, "Defense & Strategic Security": 55, "Healthcare & Biological Readiness": 60, "Cyber Resilience & Digital Infrastructure": 45, "Demographic & Social Stability": 50, "Energy Security": 40, "Debt & Fiscal Sustainability": 30},
	"USA":        {"Economic Stability": 75, "Defense & Strategic Security": 90, "Healthcare & Biological Readiness": 75, "Cyber Resilience & Digital Infrastructure": 85, "Demographic & Social Stability": 65, "Energy Security": 80, "Debt & Fiscal Sustainability": 60},
	"Russia":     {"Economic Stability": 60, "Defense & Strategic Security": 85, "Healthcare & Biological Readiness": 65, "Cyber Resilience & Digital Infrastructure": 70, "Demographic & Social Stability": 55, "Energy Security": 85, "Debt & Fiscal Sustainability": 70},
	"Japan":      {"Economic Stability": 80, "Defense & Strategic Security": 75, "Healthcare & Biological Readiness": 85, "Cyber Resilience & Digital Infrastructure": 85, "Demographic & Social Stability": 70, "Energy Security": 65, "Debt & Fiscal Sustainability": 50},
	"UK":         {"Economic Stability": 75, "Defense & Strategic Security": 80, "Healthcare & Biological Readiness": 80, "Cyber Resilience & Digital Infrastructure": 80, "Demographic & Social Stability": 70, "Energy Security": 65, "Debt & Fiscal Sustainability": 70},
}

func fallbackProvider() (*Provider, error) {
	aspectScores := make(map[string]map[string]int, len(model.Countries))
	countryScores := make(map[string]int, len(model.Countries))
	for _, country := range model.Countries {
		scores := make(map[string]int, len(model.Aspects))
		for aspect, score := range fallbackAspectScores[country] {
			scores[aspect] = score
		}
		aspectScores[country] = scores
		countryScores[country] = model.TotalScore(scores)
	}

	table := &model.BaselineTable{AspectScores: aspectScores, CountryScores: countryScores}
	if err := table.Complete(); err != nil {
		return nil, err
	}
	return &Provider{
		table:      table,
		normalized: map[string]map[string]int{},
		raw:        map[string]map[string]observation{},
		fallback:   true,
	}, nil
}
