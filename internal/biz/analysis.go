package biz

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/conf"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/aggregator"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/baseline"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/interpreter"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

const defaultInterpreterTimeout = 60 * time.Second

// userAnalyses caches results per user: one entry per normalized headline
// plus the most recent result for the /api/results route.
type userAnalyses struct {
	byHeadline map[string]*model.AnalysisResult
	last       *model.AnalysisResult
}

// AnalysisUseCase orchestrates one scenario analysis: validate, interpret
// under a timeout, aggregate, cache.
type AnalysisUseCase struct {
	baseline *baseline.Provider
	interp   interpreter.Interpreter
	timeout  time.Duration
	log      *log.Helper

	mu    sync.Mutex
	users map[int]*userAnalyses
}

// NewAnalysisUseCase wires the analysis flow. The baseline provider must
// already hold a complete table.
func NewAnalysisUseCase(bp *baseline.Provider, itp interpreter.Interpreter, ce *conf.Engine, logger log.Logger) *AnalysisUseCase {
	timeout := defaultInterpreterTimeout
	if ce != nil && ce.Timeout != "" {
		if d, err := time.ParseDuration(ce.Timeout); err == nil && d > 0 {
			timeout = d
		}
	}
	return &AnalysisUseCase{
		baseline: bp,
		interp:   itp,
		timeout:  timeout,
		log:      log.NewHelper(logger),
		users:    make(map[int]*userAnalyses),
	}
}

// Analyze scores a scenario for all countries and aspects. Interpreter
// failures and timeouts degrade to a baseline-only result instead of
// failing the request; only an empty headline or a broken baseline table
// produce errors.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, userID int, headline string) (*model.AnalysisResult, error) {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		return nil, errors.BadRequest("VALIDATION", "headline cannot be empty")
	}

	key := strings.ToLower(headline)
	if cached := uc.lookup(userID, key); cached != nil {
		return cached, nil
	}

	ictx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	interp, err := uc.interp.Interpret(ictx, headline)
	if err != nil {
		uc.log.Warnf("interpretation failed, serving baseline-only scores: %v", err)
		interp = &model.Interpretation{Summary: "Scenario interpretation unavailable; scores reflect baseline conditions."}
	}

	result, dropped, err := aggregator.Aggregate(uc.baseline.Table(), interp.Impacts)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		uc.log.Warnf("dropped %d impact(s) with invalid references", len(dropped))
	}

	result.ScenarioSummary = interp.Summary
	result.Analysis = aggregator.BuildNarrative(interp.Summary, result.ImpactSummary)
	result.Interventions = interp.Interventions
	result.ModelMetadata = uc.baseline.Metadata()

	uc.remember(userID, key, result)
	return result, nil
}

// LastResult returns the user's most recent analysis, if any.
func (uc *AnalysisUseCase) LastResult(userID int) (*model.AnalysisResult, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	bucket, ok := uc.users[userID]
	if !ok || bucket.last == nil {
		return nil, false
	}
	return bucket.last, true
}

// Forget drops a user's cached results, used when the account is deleted.
func (uc *AnalysisUseCase) Forget(userID int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.users, userID)
}

func (uc *AnalysisUseCase) lookup(userID int, key string) *model.AnalysisResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	bucket, ok := uc.users[userID]
	if !ok {
		return nil
	}
	return bucket.byHeadline[key]
}

func (uc *AnalysisUseCase) remember(userID int, key string, result *model.AnalysisResult) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	bucket, ok := uc.users[userID]
	if !ok {
		bucket = &userAnalyses{byHeadline: make(map[string]*model.AnalysisResult)}
		uc.users[userID] = bucket
	}
	bucket.byHeadline[key] = result
	bucket.last = result
}
