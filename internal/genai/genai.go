// Package genai provides the narrative-analysis client backed by the OpenAI API.
//
// The generative service is treated as an opaque, rate-limited, occasionally
// wrong black box: its output is returned as an untyped JSON value for the
// normalization engine to validate, and call failures surface as errors the
// caller absorbs into the deterministic fallback path.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

// Defaults for the narrative call. The retry budget is deliberately small:
// a failed call falls back to rule-based synthesis rather than retrying
// indefinitely.
const (
	DefaultModel        = openai.ChatModelGPT4o
	DefaultTimeout      = 30 * time.Second
	DefaultMaxAttempts  = 2
	maxCompletionTokens = 2048
)

// ErrNoChoicesReturned indicates the API responded without any completion choices.
var ErrNoChoicesReturned = errors.New("no choices returned")

const systemPrompt = "You are a clinical psychologist AI providing professional psychometric analysis. Always respond with valid JSON. Be thorough but compassionate in your analysis."

// chatService defines the minimal interface for chat completions.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type completionService struct {
	svc *openai.ChatCompletionService
}

func (s completionService) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return s.svc.New(ctx, params)
}

// Opts holds configuration for the GenAI client.
type Opts struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
}

// Option configures the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithBaseURL sets an alternative API base URL.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithModel overrides the default completion model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithTimeout sets the hard per-attempt timeout for the narrative call.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithMaxAttempts sets the fixed retry budget for the narrative call.
func WithMaxAttempts(n int) Option {
	return func(o *Opts) { o.MaxAttempts = n }
}

// Client wraps the OpenAI chat completion service for narrative analysis.
type Client struct {
	chat        chatService
	model       openai.ChatModel
	timeout     time.Duration
	maxAttempts int
}

// NewClient initializes a GenAI client. The API key falls back to the
// OPENAI_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{
		Model:       string(DefaultModel),
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := openai.NewClient(reqOpts...)
	slog.Debug("genai.NewClient: client initialized", "model", cfg.Model, "base_url_set", cfg.BaseURL != "", "timeout", cfg.Timeout)
	return &Client{
		chat:        completionService{svc: &cli.Chat.Completions},
		model:       openai.ChatModel(cfg.Model),
		timeout:     cfg.Timeout,
		maxAttempts: cfg.MaxAttempts,
	}, nil
}

// GenerateAnalysis requests a stability analysis for the computed scores and
// returns the response body decoded as an untyped JSON value. A response
// that is not parseable JSON is reduced to an empty object; the caller's
// normalization engine handles everything else. An error is returned only
// when every attempt in the retry budget failed.
func (c *Client) GenerateAnalysis(ctx context.Context, hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) (any, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildAnalysisPrompt(hexaco, dass, teique)),
		},
		MaxCompletionTokens: openai.Int(maxCompletionTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.chat.New(attemptCtx, params)
		cancel()
		if err != nil {
			slog.Warn("genai.GenerateAnalysis: attempt failed", "attempt", attempt, "max_attempts", c.maxAttempts, "error", err)
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			slog.Warn("genai.GenerateAnalysis: no choices returned", "attempt", attempt)
			lastErr = ErrNoChoicesReturned
			continue
		}
		content := resp.Choices[0].Message.Content
		var raw any
		if err := json.Unmarshal([]byte(content), &raw); err != nil {
			slog.Warn("genai.GenerateAnalysis: response is not valid JSON, reducing to empty object", "error", err)
			return map[string]any{}, nil
		}
		slog.Debug("genai.GenerateAnalysis: analysis generated", "attempt", attempt)
		return raw, nil
	}
	return nil, fmt.Errorf("narrative analysis failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// buildAnalysisPrompt renders the computed scores into the generator prompt,
// including the severity band context for each DASS scale.
func buildAnalysisPrompt(hexaco models.HexacoScores, dass models.DassScores, teique *models.TeiqueScores) string {
	var b strings.Builder
	b.WriteString("You are a clinical psychologist AI assistant. Analyze the following psychometric assessment results and provide a comprehensive stability analysis.\n\n")

	fmt.Fprintf(&b, `## DASS-21 Scores (Depression, Anxiety, Stress Scale):
- Depression: %d (Normal: 0-9, Mild: 10-13, Moderate: 14-20, Severe: 21-27, Extremely Severe: 28+)
- Anxiety: %d (Normal: 0-7, Mild: 8-9, Moderate: 10-14, Severe: 15-19, Extremely Severe: 20+)
- Stress: %d (Normal: 0-14, Mild: 15-18, Moderate: 19-25, Severe: 26-33, Extremely Severe: 34+)

`, dass.Depression, dass.Anxiety, dass.Stress)

	fmt.Fprintf(&b, `## HEXACO-60 Personality Scores (1-5 scale):
- Honesty-Humility: %.2f
- Emotionality: %.2f
- Extraversion: %.2f
- Agreeableness: %.2f
- Conscientiousness: %.2f
- Openness to Experience: %.2f

`, hexaco.HonestyHumility, hexaco.Emotionality, hexaco.Extraversion, hexaco.Agreeableness, hexaco.Conscientiousness, hexaco.OpennessToExperience)

	if teique != nil {
		fmt.Fprintf(&b, `## TEIQue-SF Emotional Intelligence Scores (1-7 scale):
- Well-being: %.2f
- Self-Control: %.2f
- Emotionality: %.2f
- Sociability: %.2f
- Global EI: %.2f

`, teique.Wellbeing, teique.SelfControl, teique.Emotionality, teique.Sociability, teique.GlobalEI)
	}

	b.WriteString(`Please provide:
1. **Overall Stability Assessment**: Rate as "Stable", "At Risk", or "Critical"
2. **Risk Flags**: Identify any concerning patterns (e.g., Acute Reactive State, High-Functioning Burnout, Emotional Dysregulation)
3. **Personality-Mood Interaction Analysis**: How personality traits may influence or be influenced by current mental health state
4. **Emotional Intelligence Integration**: How EI factors relate to current symptomatology
5. **Recommendations**: Evidence-based suggestions for maintaining or improving psychological wellbeing
6. **Clinical Notes**: Any observations that would be relevant for a mental health professional

Format your response as a structured JSON object with the following schema:
{
  "overallStability": "Stable" | "At Risk" | "Critical",
  "riskFlags": {
    "acuteReactiveState": boolean,
    "highFunctioningBurnout": boolean,
    "emotionalDysregulation": boolean,
    "elevatedDepression": boolean,
    "elevatedAnxiety": boolean,
    "elevatedStress": boolean
  },
  "stabilityScore": number (0-100, where 100 is most stable),
  "personalityMoodInteraction": string,
  "emotionalIntelligenceInsights": string,
  "recommendations": string[],
  "clinicalNotes": string,
  "summary": string
}`)

	return b.String()
}
