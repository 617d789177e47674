package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/conf"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/baseline"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/interpreter"
)

// NewBaselineProvider loads the indicator snapshot at startup. The process
// refuses to start only if even the built-in snapshot is unusable.
func NewBaselineProvider(c *conf.Baseline, logger log.Logger) (*baseline.Provider, error) {
	cfg := baseline.Config{}
	if c != nil {
		cfg.CacheDir = c.CacheDir
		cfg.TTL = time.Duration(c.TtlHours) * time.Hour
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
		cfg.Workers = int(c.Workers)
		cfg.Offline = c.Offline
	}

	provider, err := baseline.Load(context.Background(), cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("failed to load baseline: %v", err)
		return nil, err
	}
	if provider.FromFallback() {
		log.NewHelper(logger).Warn("baseline: serving built-in snapshot, scores are not live")
	}
	return provider, nil
}

// NewInterpreter builds the chat-model scenario interpreter.
func NewInterpreter(c *conf.Engine, logger log.Logger) (interpreter.Interpreter, error) {
	cfg := interpreter.Config{}
	if c != nil && c.Llm != nil {
		cfg.BaseURL = c.Llm.BaseUrl
		cfg.APIKey = c.Llm.ApiKey
		cfg.Model = c.Llm.Model
	}
	if c != nil && c.Limits != nil {
		cfg.QPS = int(c.Limits.Qps)
		cfg.RPM = int(c.Limits.Rpm)
	}

	itp, err := interpreter.NewLLM(context.Background(), cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("failed to init interpreter: %v", err)
		return nil, err
	}
	return itp, nil
}
