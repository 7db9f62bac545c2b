package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Pricing holds the per-token billing rates used to derive session costs.
// Rates are configuration, never logic: the formula library receives them as
// an argument and applies them without interpretation.
type Pricing struct {
	ChatTokenRate     decimal.Decimal `json:"chat_token_rate"`
	AnalysisTokenRate decimal.Decimal `json:"analysis_token_rate"`
}

// Application settings, populated by Load and read package-wide.
var (
	AppPort             = "3000"
	DBDriver            = "sqlite3" // sqlite3 or postgres
	DBDSN               = "storage/platform.db"
	OpenAIAPIKey        = ""
	MockFallbackEnabled = true
	Rates               = DefaultPricing()
)

// DefaultPricing returns the built-in token rates (USD per token).
func DefaultPricing() Pricing {
	return Pricing{
		ChatTokenRate:     decimal.RequireFromString("0.0000025"),
		AnalysisTokenRate: decimal.RequireFromString("0.00001"),
	}
}

type fileConfig struct {
	Port         string `yaml:"port"`
	DBDriver     string `yaml:"db_driver"`
	DBDSN        string `yaml:"db_dsn"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	MockFallback *bool  `yaml:"mock_fallback"`
	Pricing      struct {
		ChatTokenRate     string `yaml:"chat_token_rate"`
		AnalysisTokenRate string `yaml:"analysis_token_rate"`
	} `yaml:"pricing"`
}

// Load reads the YAML config file (if present) and then applies environment
// overrides. A missing file is not an error; defaults stand.
func Load(path string) error {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			applyFile(fc)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	applyEnv()
	return nil
}

func applyFile(fc fileConfig) {
	if fc.Port != "" {
		AppPort = fc.Port
	}
	if fc.DBDriver != "" {
		DBDriver = fc.DBDriver
	}
	if fc.DBDSN != "" {
		DBDSN = fc.DBDSN
	}
	if fc.OpenAIAPIKey != "" {
		OpenAIAPIKey = fc.OpenAIAPIKey
	}
	if fc.MockFallback != nil {
		MockFallbackEnabled = *fc.MockFallback
	}
	if fc.Pricing.ChatTokenRate != "" {
		if rate, err := decimal.NewFromString(fc.Pricing.ChatTokenRate); err == nil {
			Rates.ChatTokenRate = rate
		}
	}
	if fc.Pricing.AnalysisTokenRate != "" {
		if rate, err := decimal.NewFromString(fc.Pricing.AnalysisTokenRate); err == nil {
			Rates.AnalysisTokenRate = rate
		}
	}
}

func applyEnv() {
	if v := os.Getenv("APP_PORT"); v != "" {
		AppPort = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		DBDriver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		DBDSN = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		OpenAIAPIKey = v
	}
	if v := os.Getenv("MOCK_FALLBACK"); v != "" {
		MockFallbackEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("CHAT_TOKEN_RATE"); v != "" {
		if rate, err := decimal.NewFromString(v); err == nil {
			Rates.ChatTokenRate = rate
		}
	}
	if v := os.Getenv("ANALYSIS_TOKEN_RATE"); v != "" {
		if rate, err := decimal.NewFromString(v); err == nil {
			Rates.AnalysisTokenRate = rate
		}
	}
}
