package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymorimoto/sekisan/internal/common"
)

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(Config{}, nil)
	require.ErrorIs(t, err, common.ErrMissingAPIKey)
}

func TestNewAnthropicClient_RequiresKey(t *testing.T) {
	_, err := NewAnthropicClient(Config{}, nil)
	require.ErrorIs(t, err, common.ErrMissingAPIKey)
}

func TestNewOpenAIClient_Defaults(t *testing.T) {
	c, err := NewOpenAIClient(Config{APIKey: "sk-test"}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, c.cfg.Model)
	assert.Equal(t, defaultTimeout, c.cfg.Timeout)
	assert.NotNil(t, c.logger)
}

func TestNewAnthropicClient_Defaults(t *testing.T) {
	c, err := NewAnthropicClient(Config{APIKey: "sk-ant-test", Timeout: 30 * time.Second}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicModel, c.cfg.Model)
	assert.Equal(t, 30*time.Second, c.cfg.Timeout)
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := &common.Config{}
	cfg.LLM.Provider = common.ProviderOpenAI
	cfg.LLM.OpenAIAPIKey = "sk-test"

	s, err := New(cfg, nil)
	require.NoError(t, err)
	_, ok := s.(*OpenAIClient)
	assert.True(t, ok)

	cfg.LLM.Provider = common.ProviderAnthropic
	cfg.LLM.AnthropicAPIKey = "sk-ant-test"
	s, err = New(cfg, nil)
	require.NoError(t, err)
	_, ok = s.(*AnthropicClient)
	assert.True(t, ok)

	cfg.LLM.Provider = "gemini"
	_, err = New(cfg, nil)
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestNew_MissingKeyForProvider(t *testing.T) {
	cfg := &common.Config{}
	cfg.LLM.Provider = common.ProviderAnthropic

	_, err := New(cfg, nil)
	require.ErrorIs(t, err, common.ErrMissingAPIKey)
}
