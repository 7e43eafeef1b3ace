package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration parsed from environment variables and an optional .env file.
type Config struct {
	HTTPAddr         string
	ShutdownTimeout  time.Duration
	UpstreamTimeout  time.Duration
	CORSAllowOrigins []string
	Shopify          Shopify
	Pipedrive        Pipedrive
	Log              Log
	Telemetry        Telemetry
}

// Shopify holds the commerce platform credentials and endpoint.
type Shopify struct {
	APIKey      string
	APIPassword string
	StoreName   string
	APIVersion  string
	BaseURL     string
}

// Pipedrive holds the CRM credentials and endpoint.
type Pipedrive struct {
	APIToken string
	BaseURL  string
	Currency string
}

// Log configures the zap logger.
type Log struct {
	Level  string
	Format string
}

// Telemetry configures OpenTelemetry tracing.
type Telemetry struct {
	Enabled           bool
	CollectorEndpoint string
	Insecure          bool
	SamplingRatio     float64
	ServiceName       string
}

var defaults = map[string]interface{}{
	"http_addr":                   ":3000",
	"shutdown_timeout_seconds":    10,
	"upstream_timeout_seconds":    0,
	"cors_allow_origins":          "*",
	"shopify_api_version":         "2021-04",
	"pipedrive_base_url":          "https://api.pipedrive.com/v1",
	"pipedrive_currency":          "USD",
	"log_level":                   "info",
	"log_format":                  "console",
	"otel_enabled":                false,
	"otel_exporter_otlp_endpoint": "localhost:4317",
	"otel_insecure":               true,
	"otel_sampling_ratio":         1.0,
	"otel_service_name":           "commerce-crm-sync",
}

// Load reads .env from the working directory (if present) and the process environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. Environment variables win over the file.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		HTTPAddr:         v.GetString("http_addr"),
		ShutdownTimeout:  time.Duration(v.GetInt("shutdown_timeout_seconds")) * time.Second,
		UpstreamTimeout:  time.Duration(v.GetInt("upstream_timeout_seconds")) * time.Second,
		CORSAllowOrigins: splitList(v.GetString("cors_allow_origins")),
		Shopify: Shopify{
			APIKey:      v.GetString("shopify_api_key"),
			APIPassword: v.GetString("shopify_api_password"),
			StoreName:   v.GetString("shopify_store_name"),
			APIVersion:  v.GetString("shopify_api_version"),
			BaseURL:     strings.TrimRight(v.GetString("shopify_base_url"), "/"),
		},
		Pipedrive: Pipedrive{
			APIToken: v.GetString("pipedrive_api_token"),
			BaseURL:  strings.TrimRight(v.GetString("pipedrive_base_url"), "/"),
			Currency: strings.ToUpper(v.GetString("pipedrive_currency")),
		},
		Log: Log{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		Telemetry: Telemetry{
			Enabled:           v.GetBool("otel_enabled"),
			CollectorEndpoint: v.GetString("otel_exporter_otlp_endpoint"),
			Insecure:          v.GetBool("otel_insecure"),
			SamplingRatio:     v.GetFloat64("otel_sampling_ratio"),
			ServiceName:       v.GetString("otel_service_name"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if c.Shopify.APIKey == "" {
		missing = append(missing, "SHOPIFY_API_KEY")
	}
	if c.Shopify.APIPassword == "" {
		missing = append(missing, "SHOPIFY_API_PASSWORD")
	}
	if c.Shopify.StoreName == "" && c.Shopify.BaseURL == "" {
		missing = append(missing, "SHOPIFY_STORE_NAME")
	}
	if c.Pipedrive.APIToken == "" {
		missing = append(missing, "PIPEDRIVE_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be between 0 and 1, got %v", c.Telemetry.SamplingRatio)
	}
	return nil
}

// StoreURL returns the Shopify admin base URL, derived from the store name unless overridden.
func (s Shopify) StoreURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return "https://" + s.StoreName + ".myshopify.com"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
