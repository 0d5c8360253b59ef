package classifier

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	perr "vitalog/internal/platform/errors"
	"vitalog/internal/platform/logger"
)

const (
	defaultModel   = openai.GPT4oMini
	defaultTimeout = 20 * time.Second
)

const systemPrompt = `You classify one line of free-form health-log text into a structured event.
Reply with a single JSON object and nothing else:
{"event_type": "...", "event_data": {...}, "event_time": "RFC3339 or empty", "confidence": 0-100}
event_type is one of: food, glucose, insulin, activity, supplement, sauna, medication, symptom.
event_data fields by type:
  food: description (required); calories, carbs, protein, fat, serving_size
  glucose: value, units (required); context
  insulin: value, units, insulin_type (required); site
  activity: activity_type, duration (required); intensity, distance, calories_burned
  supplement: name, dosage (required); units
  sauna: duration, temperature (required); temperature_units
  medication: name, dosage (required); units, route
  symptom: description (required); severity, duration
If the user has logged similar products before they are listed under "previously logged",
prefer matching those names. confidence reflects how sure you are of the event_type.`

// OpenAIOptions configures the OpenAI-backed classifier
type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAI implements Classifier over a chat-completion endpoint
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

// NewOpenAI constructs the classifier with sane defaults
func NewOpenAI(o OpenAIOptions) *OpenAI {
	cfg := openai.DefaultConfig(o.APIKey)
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		model:   o.Model,
		timeout: o.Timeout,
		log:     *logger.Named("classifier"),
	}
}

// wire mirrors the strict reply contract before any further validation
type wire struct {
	EventType  string         `json:"event_type"`
	EventData  map[string]any `json:"event_data"`
	EventTime  string         `json:"event_time"`
	Confidence int            `json:"confidence"`
}

// Classify implements Classifier. The raw model reply never leaves this
// function, it is parsed and checked for the required top-level fields here
func (c *OpenAI) Classify(ctx context.Context, text string, history []string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, perr.InvalidArgf("classifier input text is empty")
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	user := text
	if len(history) > 0 {
		user = "previously logged:\n" + strings.Join(history, "\n") + "\n\ninput: " + text
	}

	resp, err := c.client.CreateChatCompletion(cctx, openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "classifier call failed")
	}
	if len(resp.Choices) == 0 {
		return Result{}, perr.Unavailablef("classifier returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	var w wire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		c.log.Warn().Err(err).Str("reply", truncate(raw, 200)).Msg("classifier reply is not json")
		return Result{}, perr.JSONErrf("classifier reply is not valid json")
	}
	if w.EventType == "" {
		return Result{}, perr.JSONErrf("classifier reply is missing event_type")
	}
	if w.EventData == nil {
		return Result{}, perr.JSONErrf("classifier reply is missing event_data")
	}

	out := Result{
		EventType:  w.EventType,
		EventData:  w.EventData,
		Confidence: w.Confidence,
	}
	if w.EventTime != "" {
		if t, err := time.Parse(time.RFC3339, w.EventTime); err == nil {
			out.EventTime = t
		}
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
