package twinny

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

const (
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMBaseURL = "https://api.openai.com/v1"
	llmMaxRetries     = 1
)

type LLMConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      Cache
	CacheTTL   time.Duration
}

// LLMNarrator rewrites the rule based summary text and recommendations with a chat
// completion. Risk level, evidence and triggers always come from the rule engine.
type LLMNarrator struct {
	client   openaigo.Client
	model    string
	cache    Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewLLMNarrator(cfg LLMConfig, baseLog *logger.Logger) (*LLMNarrator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("llm narrator: api key is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultLLMBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultLLMModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}

	client := openaigo.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(llmMaxRetries),
		option.WithRequestTimeout(timeout),
	)
	return &LLMNarrator{
		client:   client,
		model:    model,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		log:      baseLog.With("narrator", "LLMNarrator"),
	}, nil
}

type llmNarrative struct {
	SummaryText     string   `json:"summary_text"`
	Recommendations []string `json:"recommendations"`
}

func (n *LLMNarrator) Narrate(ctx context.Context, in Input) (Summary, error) {
	base := Generate(in)
	key := CacheKey(in.UserID, in.Date, base.Triggers)

	if n.cache != nil {
		raw, ok, err := n.cache.Get(ctx, key)
		if err != nil {
			n.log.Warn("narrative cache get failed", "error", err)
		} else if ok {
			var cached llmNarrative
			if err := json.Unmarshal(raw, &cached); err == nil && cached.valid() {
				return merge(base, cached), nil
			}
		}
	}

	out, err := n.complete(ctx, base, in)
	if err != nil {
		return Summary{}, err
	}

	if n.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := n.cache.Set(ctx, key, raw, n.cacheTTL); err != nil {
				n.log.Warn("narrative cache set failed", "error", err)
			}
		}
	}
	return merge(base, out), nil
}

func (n *LLMNarrator) complete(ctx context.Context, base Summary, in Input) (llmNarrative, error) {
	system := `You are Twinny, a warm and concise personal life coach.
Rewrite the given daily summary for the user in 1-2 friendly sentences and give exactly 2 short, concrete recommendations.
Stay consistent with the risk level and the evidence. Do not invent numbers.
Return ONLY a JSON object like {"summary_text": "...", "recommendations": ["...", "..."]}.`

	facts, err := json.Marshal(map[string]any{
		"date":            in.Date.UTC().Format("2006-01-02"),
		"scores":          in.Today,
		"risk_level":      base.RiskLevel,
		"triggers":        base.Triggers,
		"evidence":        base.Evidence,
		"summary_text":    base.SummaryText,
		"recommendations": base.Recommendations,
	})
	if err != nil {
		return llmNarrative{}, err
	}

	resp, err := n.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(n.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(system),
			openaigo.UserMessage("Today's analysis:\n" + string(facts)),
		},
	})
	if err != nil {
		return llmNarrative{}, fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return llmNarrative{}, errors.New("llm returned empty choices")
	}

	var out llmNarrative
	raw := extractJSONObject(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return llmNarrative{}, fmt.Errorf("llm narrative invalid json: %w", err)
	}
	out.SummaryText = strings.TrimSpace(out.SummaryText)
	recs := make([]string, 0, len(out.Recommendations))
	for _, r := range out.Recommendations {
		if r = strings.TrimSpace(r); r != "" {
			recs = append(recs, r)
		}
	}
	out.Recommendations = recs
	if !out.valid() {
		return llmNarrative{}, errors.New("llm narrative missing summary or recommendations")
	}
	return out, nil
}

func (l llmNarrative) valid() bool {
	return l.SummaryText != "" && len(l.Recommendations) > 0
}

func merge(base Summary, l llmNarrative) Summary {
	base.SummaryText = l.SummaryText
	base.Recommendations = append([]string(nil), l.Recommendations...)
	base.Source = SourceLLM
	return base
}

// extractJSONObject trims code fences and surrounding prose around a JSON object.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
