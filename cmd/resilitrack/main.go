// Command resilitrack is the offline companion CLI: it dumps the baseline
// score table and runs one-shot scenario analyses without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/aggregator"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/baseline"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/config"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/interpreter"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/logger"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

var (
	flagConf    string
	flagOffline bool
	flagJSON    bool
	flagHead    string
)

func main() {
	root := &cobra.Command{
		Use:           "resilitrack",
		Short:         "Score country resilience against hypothetical scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConf, "conf", "configs/config.yaml", "config file path")
	root.PersistentFlags().BoolVar(&flagOffline, "offline", false, "skip the World Bank fetch and use the built-in snapshot")

	baselineCmd := &cobra.Command{
		Use:   "baseline",
		Short: "Print the baseline resilience score table",
		RunE:  runBaseline,
	}
	baselineCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the full audit payload as JSON")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one scenario analysis and print the outcome",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&flagHead, "headline", "", "scenario headline to analyze (required)")
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the full analysis result as JSON")
	_ = analyzeCmd.MarkFlagRequired("headline")

	root.AddCommand(baselineCmd, analyzeCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadProvider(ctx context.Context, cfg *config.Config) (*baseline.Provider, error) {
	return baseline.Load(ctx, baseline.Config{
		CacheDir: cfg.Baseline.CacheDir,
		TTL:      time.Duration(cfg.Baseline.TTLHours) * time.Hour,
		Timeout:  time.Duration(cfg.Baseline.TimeoutSeconds) * time.Second,
		Workers:  cfg.Baseline.Workers,
		Offline:  cfg.Baseline.Offline || flagOffline,
	})
}

func setup() (*config.Config, error) {
	cfg, err := config.Load(flagConf)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", flagConf, err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		_ = logger.Init("info", "")
	}
	return cfg, nil
}

func runBaseline(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	provider, err := loadProvider(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(provider.Audit())
	}

	if provider.FromFallback() {
		color.Yellow("Serving the built-in snapshot; World Bank data was unavailable.")
	}
	printScoreTable(provider.Table().AspectScores, provider.Table().CountryScores)
	return nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	provider, err := loadProvider(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	itp, err := interpreter.NewLLM(cmd.Context(), interpreter.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		QPS:     cfg.Limits.QPS,
		RPM:     cfg.Limits.RPM,
	})
	if err != nil {
		return err
	}

	interp, err := itp.Interpret(cmd.Context(), flagHead)
	if err != nil {
		color.Yellow("Interpretation failed (%v); showing baseline-only scores.", err)
		interp = &model.Interpretation{Summary: "Scenario interpretation unavailable; scores reflect baseline conditions."}
	}

	result, dropped, err := aggregator.Aggregate(provider.Table(), interp.Impacts)
	if err != nil {
		return err
	}
	if len(dropped) > 0 {
		color.Yellow("Dropped %d impact(s) naming unknown countries or aspects.", len(dropped))
	}
	result.ScenarioSummary = interp.Summary
	result.Analysis = aggregator.BuildNarrative(interp.Summary, result.ImpactSummary)
	result.Interventions = interp.Interventions
	result.ModelMetadata = provider.Metadata()

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Println(result.Analysis)
	fmt.Println()
	printScoreTable(result.AspectScores, result.CountryScores)
	return nil
}

// printScoreTable renders one row per country in ranking order.
func printScoreTable(aspectScores map[string]map[string]int, countryScores map[string]int) {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Country", "Total"}
	headers = append(headers, model.Aspects...)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	ranked := make([]string, len(model.Countries))
	copy(ranked, model.Countries)
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if countryScores[ranked[j]] > countryScores[ranked[i]] {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	var data [][]string
	for _, country := range ranked {
		row := []string{country, colorScore(countryScores[country])}
		for _, aspect := range model.Aspects {
			row = append(row, strconv.Itoa(aspectScores[country][aspect]))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err == nil {
		_ = table.Render()
	}
}

func colorScore(score int) string {
	switch {
	case score >= 70:
		return color.GreenString("%d", score)
	case score >= 40:
		return color.YellowString("%d", score)
	default:
		return color.RedString("%d", score)
	}
}
