package synth

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"github.com/ymorimoto/sekisan/internal/common"
)

// AnthropicClient drafts estimates through the Messages API.
type AnthropicClient struct {
	cfg    Config
	client anthropic.Client
	logger *slog.Logger
}

var _ Synthesizer = (*AnthropicClient)(nil)

func NewAnthropicClient(cfg Config, logger *slog.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic client: %w", common.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	)
	return &AnthropicClient{cfg: cfg, client: client, logger: logger}, nil
}

func (c *AnthropicClient) Synthesize(ctx context.Context, req Request) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("synth.request.start",
		"req_id", rid,
		"provider", common.ProviderAnthropic,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"corpus_len", len(req.Corpus),
		"file_count", req.FileCount,
		"has_breakdown", req.Breakdown != "",
	)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(c.cfg.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt(), CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(UserPrompt(req))),
		},
	})
	if err != nil {
		c.logger.Error("synth.request.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			c.logger.Info("synth.request.ok",
				"req_id", rid,
				"result_len", len(block.Text),
				"tokens_in", message.Usage.InputTokens,
				"tokens_out", message.Usage.OutputTokens,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}

func (c *AnthropicClient) Transcribe(ctx context.Context, jpeg []byte) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("synth.transcribe.start",
		"req_id", rid,
		"provider", common.ProviderAnthropic,
		"model", c.cfg.Model,
		"image_bytes", len(jpeg),
	)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(c.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/jpeg", base64.StdEncoding.EncodeToString(jpeg)),
				anthropic.NewTextBlock(TranscribeInstruction),
			),
		},
	})
	if err != nil {
		c.logger.Error("synth.transcribe.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("anthropic transcription: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			c.logger.Info("synth.transcribe.ok",
				"req_id", rid,
				"result_len", len(block.Text),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}
