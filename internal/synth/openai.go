package synth

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ymorimoto/sekisan/internal/common"
)

// OpenAIClient drafts estimates through the chat completions API.
type OpenAIClient struct {
	cfg    Config
	client openai.Client
	logger *slog.Logger
}

var _ Synthesizer = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg Config, logger *slog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai client: %w", common.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	)
	return &OpenAIClient{cfg: cfg, client: client, logger: logger}, nil
}

func (c *OpenAIClient) Synthesize(ctx context.Context, req Request) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("synth.request.start",
		"req_id", rid,
		"provider", common.ProviderOpenAI,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"corpus_len", len(req.Corpus),
		"file_count", req.FileCount,
		"has_breakdown", req.Breakdown != "",
	)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Temperature: openai.Float(c.cfg.Temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt()),
			openai.UserMessage(UserPrompt(req)),
		},
	})
	if err != nil {
		c.logger.Error("synth.request.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("synth.request.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in openai response")
	}

	text := resp.Choices[0].Message.Content
	c.logger.Info("synth.request.ok",
		"req_id", rid,
		"result_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (c *OpenAIClient) Transcribe(ctx context.Context, jpeg []byte) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("synth.transcribe.start",
		"req_id", rid,
		"provider", common.ProviderOpenAI,
		"model", c.cfg.Model,
		"image_bytes", len(jpeg),
	)

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Temperature: openai.Float(c.cfg.Temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(TranscribeInstruction),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	})
	if err != nil {
		c.logger.Error("synth.transcribe.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}

	text := resp.Choices[0].Message.Content
	c.logger.Info("synth.transcribe.ok",
		"req_id", rid,
		"result_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
