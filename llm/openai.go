package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/soartravel/soar/config"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/memory"
)

type (
	OpenAIClient struct {
		client openai.Client
		conf   config.OpenAIConfig
		logger *slog.Logger
		now    func() time.Time
	}

	Option func(*OpenAIClient, *[]option.RequestOption)

	// completionSettings are the per-operation request parameters. Zero values are omitted from the request.
	completionSettings struct {
		model       string
		temperature float64
		maxTokens   int64
	}
)

var (
	_ Client = (*OpenAIClient)(nil)

	classifySettings       = completionSettings{temperature: 0.1, maxTokens: 10}
	responseSettings       = completionSettings{temperature: 0.7, maxTokens: 500}
	acknowledgmentSettings = completionSettings{temperature: 0.7, maxTokens: 100}
	reformatSettings       = completionSettings{temperature: 0.7, maxTokens: 500}
)

func WithLogger(logger *slog.Logger) Option {
	return func(c *OpenAIClient, _ *[]option.RequestOption) {
		c.logger = logger
	}
}

// WithNow replaces the clock used for the dates embedded in prompts.
func WithNow(now func() time.Time) Option {
	return func(c *OpenAIClient, _ *[]option.RequestOption) {
		c.now = now
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(_ *OpenAIClient, opts *[]option.RequestOption) {
		*opts = append(*opts, option.WithHTTPClient(httpClient))
	}
}

func NewOpenAIClient(conf *config.OpenAIConfig, opts ...Option) (*OpenAIClient, error) {
	if conf == nil || conf.APIKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "openai api key is required")
	}

	c := &OpenAIClient{
		conf: *conf,
		now:  time.Now,
	}
	defaults := config.NewOpenAIConfig()
	if c.conf.ClassifierModel == "" {
		c.conf.ClassifierModel = defaults.ClassifierModel
	}
	if c.conf.ResponseModel == "" {
		c.conf.ResponseModel = defaults.ResponseModel
	}
	if c.conf.SearchModel == "" {
		c.conf.SearchModel = defaults.SearchModel
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(conf.APIKey),
		// failures are reported to the caller, never retried
		option.WithMaxRetries(0),
	}
	if conf.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(conf.BaseURL))
	}
	for _, opt := range opts {
		opt(c, &requestOpts)
	}
	if c.logger == nil {
		c.logger = mylog.Discard()
	}

	c.client = openai.NewClient(requestOpts...)
	return c, nil
}

func (c *OpenAIClient) Classify(ctx context.Context, message string) (MessageType, error) {
	prompt, err := ClassifyPrompt(message)
	if err != nil {
		return MessageTypeQuery, err
	}

	settings := classifySettings
	settings.model = c.conf.ClassifierModel
	reply, err := c.complete(ctx, settings, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(classifierSystemPrompt),
		openai.UserMessage(prompt),
	})
	if err != nil {
		return MessageTypeQuery, err
	}

	messageType := ParseMessageType(reply)
	c.logger.Debug("message classified", "reply", reply, "type", messageType)
	return messageType, nil
}

func (c *OpenAIClient) GenerateResponse(ctx context.Context, query string, memories []memory.Record) (string, error) {
	system, err := responseSystemPrompt()
	if err != nil {
		return "", err
	}
	prompt, err := ResponsePrompt(c.now(), query, memories)
	if err != nil {
		return "", err
	}

	settings := responseSettings
	settings.model = c.conf.ResponseModel
	return c.complete(ctx, settings, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(prompt),
	})
}

func (c *OpenAIClient) GenerateAcknowledgment(ctx context.Context, statement string) (string, error) {
	prompt, err := AcknowledgmentPrompt(statement)
	if err != nil {
		return "", err
	}

	settings := acknowledgmentSettings
	settings.model = c.conf.ResponseModel
	return c.complete(ctx, settings, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(acknowledgmentSystemPrompt),
		openai.UserMessage(prompt),
	})
}

// WebSearch asks the search-enabled model the raw user query. The search model rejects sampling parameters,
// so only web_search_options is sent alongside the message.
func (c *OpenAIClient) WebSearch(ctx context.Context, query string) (string, error) {
	return c.complete(ctx, completionSettings{model: c.conf.SearchModel}, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(query),
	}, option.WithJSONSet("web_search_options", map[string]any{}))
}

func (c *OpenAIClient) Reformat(ctx context.Context, rawResults string, query string) (string, error) {
	system, err := searchSystemPrompt()
	if err != nil {
		return "", err
	}
	prompt, err := ReformatPrompt(c.now(), rawResults, query)
	if err != nil {
		return "", err
	}

	settings := reformatSettings
	settings.model = c.conf.ResponseModel
	return c.complete(ctx, settings, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(prompt),
	})
}

func (c *OpenAIClient) complete(
	ctx context.Context,
	settings completionSettings,
	messages []openai.ChatCompletionMessageParamUnion,
	opts ...option.RequestOption,
) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    settings.model,
		Messages: messages,
	}
	if settings.temperature > 0 {
		params.Temperature = openai.Float(settings.temperature)
	}
	if settings.maxTokens > 0 {
		params.MaxTokens = openai.Int(settings.maxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		c.logger.Warn("chat completion failed", "model", settings.model, "error", err)
		return "", toCompletionError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Decode(nil, "chat completion from %s has no choices", settings.model)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.Decode(nil, "chat completion from %s has no content", settings.model)
	}
	return content, nil
}

func toCompletionError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return errors.HTTPStatus(apiErr.StatusCode, apiErr.Message)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return errors.Decode(err, "invalid chat completion response")
	}

	return errors.Transport(err, "failed to call chat completions")
}
