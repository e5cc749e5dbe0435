// Package synth is the narrative-synthesis boundary: it hands the assembled
// corpus and project fields to a chat-completion provider and returns the
// drafted estimate unmodified. The cost arithmetic is never delegated here;
// when a precomputed breakdown is attached the model only formats it.
package synth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ymorimoto/sekisan/internal/common"
)

// Request carries everything the model needs to draft one estimate.
type Request struct {
	ProjectName string
	Location    string
	WorkItems   string // free-text description of the requested work
	Corpus      string // assembled reference text, may be empty
	FileCount   int    // files behind the corpus
	Breakdown   string // optional precomputed cost table (markdown)
}

// Synthesizer is the interface the command layer depends on. Transcribe
// serves the vision OCR strategy: it reads a rasterized page image back
// as text through the same provider.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (string, error)
	Transcribe(ctx context.Context, jpeg []byte) (string, error)
}

// Config for a provider client.
type Config struct {
	APIKey      string
	Model       string        // empty selects the provider default
	Temperature float64       // 0..2, near-zero for reproducible drafts
	Timeout     time.Duration // per-request timeout
}

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
	defaultTimeout        = 120 * time.Second
	maxTokens             = 4096
)

// New returns the client for the configured provider.
func New(cfg *common.Config, logger *slog.Logger) (Synthesizer, error) {
	sc := Config{
		APIKey:      cfg.LLM.APIKey(),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.Timeout),
	}
	switch cfg.LLM.Provider {
	case common.ProviderAnthropic:
		return NewAnthropicClient(sc, logger)
	case common.ProviderOpenAI:
		return NewOpenAIClient(sc, logger)
	default:
		return nil, common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("unknown llm provider %q", cfg.LLM.Provider), common.ErrInvalidConfig)
	}
}
