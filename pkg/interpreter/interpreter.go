// Package interpreter translates a free-text scenario into structured
// per-country impact records using an OpenAI-compatible chat model. The
// model output is untrusted: everything it returns is validated against the
// fixed country/aspect enumerations before it reaches the aggregator.
package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/logger"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

// Interpreter maps a scenario to impact records. Implementations may be
// slow or unavailable; callers should bound calls with a context timeout
// and fall back to an empty impact list on error.
type Interpreter interface {
	Interpret(ctx context.Context, scenario string) (*model.Interpretation, error)
}

// Config holds the chat model endpoint and rate limits.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	RPM     int
	QPS     int
}

// LLMInterpreter is the production Interpreter backed by a chat model.
type LLMInterpreter struct {
	chatModel einomodel.ChatModel
	limiter   *rate.Limiter
}

// NewLLM builds the chat-model interpreter.
func NewLLM(ctx context.Context, cfg Config) (*LLMInterpreter, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	rpm := cfg.RPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	return &LLMInterpreter{chatModel: chatModel, limiter: limiter}, nil
}

const maxRetries = 1

const retryBaseDelay = 2 * time.Second

// Interpret asks the model for structured impacts and sanitizes the answer.
func (l *LLMInterpreter) Interpret(ctx context.Context, scenario string) (*model.Interpretation, error) {
	scenario = expandURLScenario(scenario)

	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Output only a JSON object, no markdown, no prose."},
		{Role: schema.User, Content: buildImpactPrompt(scenario)},
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := l.chatModel.Generate(ctx, messages)
		if err != nil {
			lastErr = err
			if isRateLimited(err) && attempt < maxRetries {
				select {
				case <-time.After(retryBaseDelay << attempt):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				continue
			}
			if attempt < maxRetries {
				continue
			}
			break
		}

		payload, err := parseImpactsPayload(resp.Content)
		if err != nil {
			logger.Log.Warnf("interpreter: bad model payload: %v", err)
			lastErr = err
			continue
		}
		return finishInterpretation(payload), nil
	}
	return nil, fmt.Errorf("%w: %v", model.ErrInterpretation, lastErr)
}

func finishInterpretation(payload *impactsPayload) *model.Interpretation {
	valid, dropped := sanitizeImpacts(payload.Impacts)
	if len(dropped) > 0 {
		logger.Log.Warnf("interpreter: dropped %d impact(s) with unknown references", len(dropped))
	}
	valid = ensureCountryCoverage(valid)

	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		summary = "Scenario analyzed."
	}
	return &model.Interpretation{
		Summary:       summary,
		Impacts:       valid,
		Interventions: suggestInterventions(valid),
	}
}

type impactsPayload struct {
	Summary string               `json:"summary"`
	Impacts []model.ImpactRecord `json:"impacts"`
}

// parseImpactsPayload strips markdown fences and extracts the first JSON
// object from the model response.
func parseImpactsPayload(content string) (*impactsPayload, error) {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var payload impactsPayload
	if err := json.Unmarshal([]byte(clean[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal impacts: %w", err)
	}
	if len(payload.Impacts) == 0 {
		return nil, fmt.Errorf("model returned no impacts")
	}
	return &payload, nil
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

// expandURLScenario fetches and cleans the article body when the scenario is
// a bare link, so the model sees the story rather than the URL.
func expandURLScenario(scenario string) string {
	trimmed := strings.TrimSpace(scenario)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return scenario
	}
	if strings.ContainsAny(trimmed, " \t\n") {
		return scenario
	}

	article, err := readability.FromURL(trimmed, 30*time.Second)
	if err != nil {
		logger.Log.Warnf("interpreter: could not fetch scenario URL: %v", err)
		return scenario
	}
	content := strings.TrimSpace(article.TextContent)
	if len(content) > 5000 {
		content = content[:5000]
	}
	if content == "" {
		return scenario
	}
	if article.Title != "" {
		return article.Title + "\n\n" + content
	}
	return content
}

func buildImpactPrompt(scenario string) string {
	return fmt.Sprintf(`You are a resilience analyst. Interpret this scenario and return only valid JSON:
%q

Return JSON in this exact structure:
{
    "summary": "1-2 sentence causal summary of the shock",
    "impacts": [
        {
            "country": "India",
            "aspect": "Economic Stability",
            "delta": -12,
            "reason": "short causal chain explaining the change"
        }
    ]
}

Rules:
- Use only these countries: %s.
- Use only these aspects: %s.
- Deltas are integers from -20 to +20 based on severity and relevance. Do not use 0.
- Include at least one impact for each of the 10 countries.
- Provide multiple impacts if the scenario is multi-sector or multi-country.
- Reasons must be 8-18 words, causal, and mention at least one transmission channel.`,
		scenario,
		strings.Join(model.Countries, ", "),
		strings.Join(model.Aspects, ", "))
}
