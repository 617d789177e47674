// Package baseline computes the pre-scenario resilience score table from
// public World Bank indicators. The table is loaded once at process start
// and never mutated afterwards; requests only read it.
package baseline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/logger"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

// IndicatorSpec names a World Bank series and its scoring direction.
type IndicatorSpec struct {
	Code           string
	HigherIsBetter bool
}

// IndicatorSpecs are the raw series feeding the aspect scores.
var IndicatorSpecs = map[string]IndicatorSpec{
	"gdp_per_capita":          {Code: "NY.GDP.PCAP.CD", HigherIsBetter: true},
	"gdp_growth":              {Code: "NY.GDP.MKTP.KD.ZG", HigherIsBetter: true},
	"inflation":               {Code: "FP.CPI.TOTL.ZG", HigherIsBetter: false},
	"debt_gdp":                {Code: "GC.DOD.TOTL.GD.ZS", HigherIsBetter: false},
	"military_spend_gdp":      {Code: "MS.MIL.XPND.GD.ZS", HigherIsBetter: true},
	"health_spend_per_capita": {Code: "SH.XPD.CHEX.PC.CD", HigherIsBetter: true},
	"internet_users":          {Code: "IT.NET.USER.ZS", HigherIsBetter: true},
	"gini":                    {Code: "SI.POV.GINI", HigherIsBetter: false},
	"energy_imports":          {Code: "EG.IMP.CONS.ZS", HigherIsBetter: false},
	"life_expectancy":         {Code: "SP.DYN.LE00.IN", HigherIsBetter: true},
}

// Indicators lists the indicator names in a stable order.
var Indicators = []string{
	"gdp_per_capita",
	"gdp_growth",
	"inflation",
	"debt_gdp",
	"military_spend_gdp",
	"health_spend_per_capita",
	"internet_users",
	"gini",
	"energy_imports",
	"life_expectancy",
}

// AspectWeights blends normalized indicators into each aspect score.
var AspectWeights = map[string]map[string]float64{
	"Economic Stability": {
		"gdp_per_capita": 0.4,
		"gdp_growth":     0.3,
		"inflation":      0.3,
	},
	"Defense & Strategic Security": {
		"military_spend_gdp": 0.6,
		"gdp_per_capita":     0.4,
	},
	"Healthcare & Biological Readiness": {
		"health_spend_per_capita": 0.7,
		"life_expectancy":         0.3,
	},
	"Cyber Resilience & Digital Infrastructure": {
		"internet_users": 0.7,
		"gdp_per_capita": 0.3,
	},
	"Demographic & Social Stability": {
		"gini":            0.5,
		"life_expectancy": 0.3,
		"gdp_per_capita":  0.2,
	},
	"Energy Security": {
		"energy_imports": 0.7,
		"gdp_per_capita": 0.3,
	},
	"Debt & Fiscal Sustainability": {
		"debt_gdp":  0.7,
		"inflation": 0.3,
	},
}

var countryCodes = map[string]string{
	"India":      "IND",
	"China":      "CHN",
	"Pakistan":   "PAK",
	"Nepal":      "NPL",
	"Bangladesh": "BGD",
	"Sri Lanka":  "LKA",
	"USA":        "USA",
	"Russia":     "RUS",
	"Japan":      "JPN",
	"UK":         "GBR",
}

// Methodology documents how the baseline is derived, surfaced to clients as
// model metadata.
const Methodology = "Baseline scores are computed from public World Bank indicators covering economic " +
	"performance, fiscal pressure, defense effort, health capacity, digital access, social " +
	"inequality, energy dependence, and longevity. Each resilience aspect is a weighted " +
	"blend of normalized indicators. Indicators are normalized to a 0-100 scale across the " +
	"tracked countries and aggregated as a simple average across the 7 aspects."

// Config controls indicator loading.
type Config struct {
	CacheDir string
	TTL      time.Duration
	Timeout  time.Duration
	Workers  int
	// Offline skips the World Bank fetch and serves the built-in snapshot.
	Offline bool
}

func (c Config) withDefaults() Config {
	if c.CacheDir == "" {
		c.CacheDir = "data"
	}
	if c.TTL <= 0 {
		c.TTL = 24 * time.Hour
	}
	if c.Timeout <= 0 {
		c.Timeout = 6 * time.Second
	}
	if c.Workers <= 0 {
		c.Workers = 12
	}
	return c
}

// Provider holds the immutable baseline table and the intermediate data
// needed for the audit endpoint.
type Provider struct {
	table      *model.BaselineTable
	normalized map[string]map[string]int
	raw        map[string]map[string]observation
	fallback   bool
}

// Audit exposes the raw indicator values behind the baseline for
// verification.
type Audit struct {
	IndicatorCodes        map[string]string             `json:"indicator_codes"`
	RawIndicators         map[string]map[string]*float64 `json:"raw_indicators"`
	IndicatorYears        map[string]map[string]string  `json:"indicator_years"`
	NormalizedIndicators  map[string]map[string]int     `json:"normalized_indicators"`
	BaselineAspectScores  map[string]map[string]int     `json:"baseline_aspect_scores"`
	BaselineCountryScores map[string]int                `json:"baseline_country_scores"`
	Indicators            []string                      `json:"indicators"`
	AspectWeights         map[string]map[string]float64 `json:"aspect_weights"`
	Methodology           string                        `json:"methodology"`
	Fallback              bool                          `json:"fallback"`
}

// Load fetches indicators (or reads the cache), normalizes them, and builds
// the baseline table. When the World Bank API is unreachable and no cache
// exists it falls back to a built-in snapshot so the process can still serve.
func Load(ctx context.Context, cfg Config) (*Provider, error) {
	cfg = cfg.withDefaults()

	if cfg.Offline {
		logger.Log.Info("baseline: offline mode, using built-in snapshot")
		return fallbackProvider()
	}

	raw, global, err := loadIndicatorData(ctx, cfg)
	if err != nil {
		logger.Log.Warnf("baseline: indicator fetch failed, using built-in snapshot: %v", err)
		return fallbackProvider()
	}

	normalized := normalizeAll(raw, global)
	table, err := buildTable(normalized)
	if err != nil {
		return nil, err
	}
	return &Provider{table: table, normalized: normalized, raw: raw}, nil
}

// Table returns the immutable baseline score table.
func (p *Provider) Table() *model.BaselineTable { return p.table }

// FromFallback reports whether the built-in snapshot is being served.
func (p *Provider) FromFallback() bool { return p.fallback }

// Metadata describes the scoring model for clients.
func (p *Provider) Metadata() *model.ModelMetadata {
	return &model.ModelMetadata{
		Indicators:    Indicators,
		AspectWeights: AspectWeights,
		Methodology:   Methodology,
	}
}

// Audit returns raw values, reporting years, and normalized scores.
func (p *Provider) Audit() *Audit {
	codes := make(map[string]string, len(IndicatorSpecs))
	for name, spec := range IndicatorSpecs {
		codes[name] = spec.Code
	}

	rawValues := make(map[string]map[string]*float64, len(model.Countries))
	years := make(map[string]map[string]string, len(model.Countries))
	for country := range countryCodes {
		rawValues[country] = make(map[string]*float64, len(Indicators))
		years[country] = make(map[string]string, len(Indicators))
		for _, name := range Indicators {
			if obs, ok := p.raw[name][country]; ok {
				rawValues[country][name] = obs.Value
				years[country][name] = obs.Year
			}
		}
	}

	return &Audit{
		IndicatorCodes:        codes,
		RawIndicators:         rawValues,
		IndicatorYears:        years,
		NormalizedIndicators:  p.normalized,
		BaselineAspectScores:  p.table.AspectScores,
		BaselineCountryScores: p.table.CountryScores,
		Indicators:            Indicators,
		AspectWeights:         AspectWeights,
		Methodology:           Methodology,
		Fallback:              p.fallback,
	}
}

// loadIndicatorData returns per-country observations keyed by indicator name
// plus the global value distribution per indicator.
func loadIndicatorData(ctx context.Context, cfg Config) (map[string]map[string]observation, map[string][]float64, error) {
	client := newWBClient(cfg.Timeout)

	cachePath := filepath.Join(cfg.CacheDir, "world_bank_cache.json")
	globalCachePath := filepath.Join(cfg.CacheDir, "world_bank_global_cache.json")

	raw := make(map[string]map[string]observation)
	if !readCache(cachePath, cfg.TTL, &raw) {
		raw = fetchCountryIndicators(ctx, client, cfg.Workers)
		if err := writeCache(cachePath, raw); err != nil {
			logger.Log.Warnf("baseline: cache write failed: %v", err)
		}
	}

	globalByCode := make(map[string]map[string]float64)
	if !readCache(globalCachePath, cfg.TTL, &globalByCode) {
		globalByCode = fetchGlobalIndicators(ctx, client, cfg.Workers)
		if err := writeCache(globalCachePath, globalByCode); err != nil {
			logger.Log.Warnf("baseline: global cache write failed: %v", err)
		}
	}

	found := 0
	for _, byCountry := range raw {
		for _, obs := range byCountry {
			if obs.Value != nil {
				found++
			}
		}
	}
	if found == 0 {
		return nil, nil, fmt.Errorf("no indicator values available")
	}

	global := make(map[string][]float64, len(Indicators))
	for _, name := range Indicators {
		values := globalByCode[IndicatorSpecs[name].Code]
		list := make([]float64, 0, len(values))
		for _, v := range values {
			list = append(list, v)
		}
		global[name] = list
	}
	return raw, global, nil
}

func fetchCountryIndicators(ctx context.Context, client *wbClient, workers int) map[string]map[string]observation {
	raw := make(map[string]map[string]observation, len(Indicators))
	for _, name := range Indicators {
		raw[name] = make(map[string]observation, len(countryCodes))
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, name := range Indicators {
		for country, code := range countryCodes {
			wg.Add(1)
			go func(name, country, code string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				obs, err := client.latest(ctx, code, IndicatorSpecs[name].Code)
				if err != nil {
					logger.Log.Debugf("baseline: fetch %s/%s failed: %v", country, name, err)
				}
				mu.Lock()
				raw[name][country] = obs
				mu.Unlock()
			}(name, country, code)
		}
	}
	wg.Wait()
	return raw
}

func fetchGlobalIndicators(ctx context.Context, client *wbClient, workers int) map[string]map[string]float64 {
	global := make(map[string]map[string]float64, len(Indicators))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, name := range Indicators {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			code := IndicatorSpecs[name].Code
			values, err := client.allLatest(ctx, code)
			if err != nil {
				logger.Log.Debugf("baseline: global fetch %s failed: %v", name, err)
				values = map[string]float64{}
			}
			mu.Lock()
			global[code] = values
			mu.Unlock()
		}(name)
	}
	wg.Wait()
	return global
}

func normalizeAll(raw map[string]map[string]observation, global map[string][]float64) map[string]map[string]int {
	normalized := make(map[string]map[string]int, len(model.Countries))
	for country := range countryCodes {
		normalized[country] = make(map[string]int, len(Indicators))
	}

	for _, name := range Indicators {
		values := make(map[string]*float64, len(countryCodes))
		for country := range countryCodes {
			values[country] = raw[name][country].Value
		}

		var scores map[string]int
		if dist := global[name]; len(dist) > 0 {
			scores = normalizeGlobal(values, dist, IndicatorSpecs[name].HigherIsBetter)
		} else {
			scores = normalizeMinMax(values, IndicatorSpecs[name].HigherIsBetter)
		}
		for country, score := range scores {
			normalized[country][name] = score
		}
	}
	return normalized
}

// buildTable blends normalized indicators into aspect and country scores.
func buildTable(normalized map[string]map[string]int) (*model.BaselineTable, error) {
	aspectScores := make(map[string]map[string]int, len(model.Countries))
	countryScores := make(map[string]int, len(model.Countries))

	for _, country := range model.Countries {
		indicators := normalized[country]
		scores := make(map[string]int, len(model.Aspects))
		for _, aspect := range model.Aspects {
			blended := 0.0
			for indicator, weight := range AspectWeights[aspect] {
				blended += float64(indicators[indicator]) * weight
			}
			scores[aspect] = model.Clamp(int(blended + 0.5))
		}
		aspectScores[country] = scores
		countryScores[country] = model.TotalScore(scores)
	}

	table := &model.BaselineTable{AspectScores: aspectScores, CountryScores: countryScores}
	if err := table.Complete(); err != nil {
		return nil, err
	}
	return table, nil
}
