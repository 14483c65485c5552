package source

import "time"

// Config holds configuration for the external API client.
type Config struct {
	// BaseURL is the root of the external API.
	BaseURL string `mapstructure:"base_url" default:"https://api.dofusdb.fr"`
	// Language is the preferred language of localized fields.
	Language string `mapstructure:"language" default:"fr"`
	// FallbackLanguage is used when a localized field lacks Language.
	FallbackLanguage string `mapstructure:"fallback_language" default:"en"`
	// APIKey is sent as a bearer token when set.
	APIKey string `mapstructure:"api_key" default:""`
	// UserAgent identifies the client to the API.
	UserAgent string `mapstructure:"user_agent" default:"scrapper/1.0"`
	// RequestsPerMinute is the request budget shared by all callers.
	RequestsPerMinute int `mapstructure:"requests_per_minute" default:"60"`
	// Burst is the number of requests allowed at once.
	Burst int `mapstructure:"burst" default:"1"`
	// MinDelay is the minimum gap between two consecutive requests.
	MinDelay time.Duration `mapstructure:"min_delay" default:"250ms"`
	// Timeout bounds a single HTTP request.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	// PageSize is the page size requested when the caller asks for everything.
	PageSize int `mapstructure:"page_size" default:"50"`
}

func (c Config) withDefaults() Config {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = 60
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	if c.UserAgent == "" {
		c.UserAgent = "scrapper/1.0"
	}
	return c
}
