package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/baseline"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

// mockInterpreter counts calls and returns a canned interpretation or error.
type mockInterpreter struct {
	calls   int
	impacts []model.ImpactRecord
	err     error
}

func (m *mockInterpreter) Interpret(ctx context.Context, scenario string) (*model.Interpretation, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &model.Interpretation{
		Summary: "Canned summary.",
		Impacts: m.impacts,
	}, nil
}

func newTestUseCase(t *testing.T, itp *mockInterpreter) *AnalysisUseCase {
	t.Helper()
	provider, err := baseline.Load(context.Background(), baseline.Config{Offline: true})
	if err != nil {
		t.Fatalf("load baseline: %v", err)
	}
	return NewAnalysisUseCase(provider, itp, nil, log.DefaultLogger)
}

func TestAnalyzeEmptyHeadline(t *testing.T) {
	uc := newTestUseCase(t, &mockInterpreter{})

	if _, err := uc.Analyze(context.Background(), 1, "   "); err == nil {
		t.Fatal("Analyze() expected error for empty headline")
	}
}

func TestAnalyzeAppliesImpacts(t *testing.T) {
	itp := &mockInterpreter{impacts: []model.ImpactRecord{
		{Country: "India", Aspect: "Energy Security", Delta: -10, Reason: "supply cut"},
	}}
	uc := newTestUseCase(t, itp)

	result, err := uc.Analyze(context.Background(), 1, "Oil embargo")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	base := result.BaselineAspectScores["India"]["Energy Security"]
	got := result.AspectScores["India"]["Energy Security"]
	if got != base-10 {
		t.Errorf("Energy Security = %d, want %d", got, base-10)
	}
	if result.ScenarioSummary != "Canned summary." {
		t.Errorf("ScenarioSummary = %q", result.ScenarioSummary)
	}
	if result.Analysis == "" {
		t.Error("Analysis narrative is empty")
	}
	if result.ModelMetadata == nil {
		t.Error("ModelMetadata is nil")
	}
}

func TestAnalyzeCachesPerHeadline(t *testing.T) {
	itp := &mockInterpreter{impacts: []model.ImpactRecord{
		{Country: "India", Aspect: "Energy Security", Delta: -10, Reason: "supply cut"},
	}}
	uc := newTestUseCase(t, itp)

	first, err := uc.Analyze(context.Background(), 1, "Oil Embargo")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	// Same headline, different case: served from the cache.
	second, err := uc.Analyze(context.Background(), 1, "oil embargo")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if first != second {
		t.Error("expected cached result for repeated headline")
	}
	if itp.calls != 1 {
		t.Errorf("interpreter calls = %d, want 1", itp.calls)
	}

	// Another user misses the cache.
	if _, err := uc.Analyze(context.Background(), 2, "oil embargo"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if itp.calls != 2 {
		t.Errorf("interpreter calls = %d, want 2", itp.calls)
	}
}

func TestAnalyzeInterpreterFailureFallsBack(t *testing.T) {
	itp := &mockInterpreter{err: errors.New("model unavailable")}
	uc := newTestUseCase(t, itp)

	result, err := uc.Analyze(context.Background(), 1, "Unknown crisis")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, country := range model.Countries {
		if result.CountryScores[country] != result.BaselineCountryScores[country] {
			t.Errorf("%s score = %d, want baseline %d",
				country, result.CountryScores[country], result.BaselineCountryScores[country])
		}
	}
	if result.ScenarioSummary == "" {
		t.Error("expected a fallback scenario summary")
	}
}

func TestLastResultAndForget(t *testing.T) {
	itp := &mockInterpreter{impacts: []model.ImpactRecord{
		{Country: "India", Aspect: "Energy Security", Delta: -4, Reason: "supply cut"},
	}}
	uc := newTestUseCase(t, itp)

	if _, ok := uc.LastResult(1); ok {
		t.Error("LastResult() before any analysis should miss")
	}

	want, err := uc.Analyze(context.Background(), 1, "Oil embargo")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	got, ok := uc.LastResult(1)
	if !ok || got != want {
		t.Error("LastResult() did not return the latest analysis")
	}

	uc.Forget(1)
	if _, ok := uc.LastResult(1); ok {
		t.Error("LastResult() after Forget should miss")
	}
}
