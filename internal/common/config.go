package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// OCR strategies for pages whose native text layer is too thin.
const (
	StrategyLocal  = "local"
	StrategyVision = "vision"
)

// Narrative synthesis providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Extract ExtractConfig `yaml:"extract"`
	OCR     OCRConfig     `yaml:"ocr"`
	LLM     LLMConfig     `yaml:"llm"`
}

// DataConfig locates the reference documents.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// ExtractConfig tunes corpus assembly.
type ExtractConfig struct {
	CorpusMaxChars    int `yaml:"corpus_max_chars"`
	PageTextThreshold int `yaml:"page_text_threshold"`
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Strategy  string `yaml:"strategy"`
	Lang      string `yaml:"lang"`
	DPI       int    `yaml:"dpi"`
	Pdftotext string `yaml:"pdftotext"`
	Pdftoppm  string `yaml:"pdftoppm"`
	Tesseract string `yaml:"tesseract"`
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider        string   `yaml:"provider"`
	Model           string   `yaml:"model"`
	Temperature     float64  `yaml:"temperature"`
	Timeout         Duration `yaml:"timeout"`
	OpenAIAPIKey    string   `yaml:"openai_api_key"`
	AnthropicAPIKey string   `yaml:"anthropic_api_key"`
}

// APIKey returns the credential for the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// Duration accepts Go duration strings ("90s", "2m") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfig reads the optional YAML file named by SEKISAN_CONFIG (default
// sekisan.yaml), then applies environment overrides and defaults. Environment
// variables win over the file.
func LoadConfig() (*Config, error) {
	var cfg Config

	path := getEnv("SEKISAN_CONFIG", "sekisan.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.Getenv("SEKISAN_CONFIG") != "" {
		// A file named explicitly must exist.
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.Data.Dir = getEnv("DATA_DIR", cfg.Data.Dir)
	cfg.Extract.CorpusMaxChars = getEnvAsInt("CORPUS_MAX_CHARS", cfg.Extract.CorpusMaxChars)
	cfg.Extract.PageTextThreshold = getEnvAsInt("PAGE_TEXT_THRESHOLD", cfg.Extract.PageTextThreshold)
	cfg.OCR.Strategy = getEnv("OCR_STRATEGY", cfg.OCR.Strategy)
	cfg.OCR.Lang = getEnv("OCR_LANG", cfg.OCR.Lang)
	cfg.OCR.DPI = getEnvAsInt("OCR_DPI", cfg.OCR.DPI)
	cfg.OCR.Pdftotext = getEnv("PDFTOTEXT", cfg.OCR.Pdftotext)
	cfg.OCR.Pdftoppm = getEnv("PDFTOPPM", cfg.OCR.Pdftoppm)
	cfg.OCR.Tesseract = getEnv("TESSERACT", cfg.OCR.Tesseract)
	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = getEnvAsFloat("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.Timeout = Duration(getEnvAsDuration("LLM_TIMEOUT", time.Duration(cfg.LLM.Timeout)))
	cfg.LLM.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.LLM.OpenAIAPIKey)
	cfg.LLM.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", cfg.LLM.AnthropicAPIKey)

	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "./data"
	}
	if cfg.Extract.CorpusMaxChars == 0 {
		cfg.Extract.CorpusMaxChars = 100000
	}
	if cfg.Extract.PageTextThreshold == 0 {
		cfg.Extract.PageTextThreshold = 50
	}
	if cfg.OCR.Strategy == "" {
		cfg.OCR.Strategy = StrategyLocal
	}
	if cfg.OCR.Lang == "" {
		cfg.OCR.Lang = "jpn"
	}
	if cfg.OCR.DPI == 0 {
		cfg.OCR.DPI = 300
	}
	if cfg.OCR.Pdftotext == "" {
		cfg.OCR.Pdftotext = "pdftotext"
	}
	if cfg.OCR.Pdftoppm == "" {
		cfg.OCR.Pdftoppm = "pdftoppm"
	}
	if cfg.OCR.Tesseract == "" {
		cfg.OCR.Tesseract = "tesseract"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderOpenAI
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = Duration(120 * time.Second)
	}

	return &cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	switch c.OCR.Strategy {
	case StrategyLocal, StrategyVision:
	default:
		return NewAppError("CONFIG_ERROR",
			fmt.Sprintf("OCR_STRATEGY must be %q or %q, got %q", StrategyLocal, StrategyVision, c.OCR.Strategy),
			ErrInvalidConfig)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrMissingAPIKey)
		}
	case ProviderAnthropic:
		if c.LLM.AnthropicAPIKey == "" {
			return NewAppError("CONFIG_ERROR", "ANTHROPIC_API_KEY is required", ErrMissingAPIKey)
		}
	default:
		return NewAppError("CONFIG_ERROR",
			fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderAnthropic, c.LLM.Provider),
			ErrInvalidConfig)
	}
	return nil
}

// CheckDataDir verifies the reference-document directory exists. A missing
// directory is reported before any extraction work begins.
func (c *Config) CheckDataDir() error {
	info, err := os.Stat(c.Data.Dir)
	if err != nil {
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("data directory %q", c.Data.Dir), ErrDataDirNotFound)
	}
	if !info.IsDir() {
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("%q is not a directory", c.Data.Dir), ErrDataDirNotFound)
	}
	return nil
}
