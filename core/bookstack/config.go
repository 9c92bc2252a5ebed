package bookstack

// Config holds configuration for the BookStack API client.
type Config struct {
	// BaseURL is the root URL of the BookStack instance, without /api.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8080"`
	// TokenID is the API token ID used for authentication.
	TokenID string `mapstructure:"token_id" default:""`
	// TokenSecret is the API token secret used for authentication.
	TokenSecret string `mapstructure:"token_secret" default:""`
	// PageSize is the number of items requested per list page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// RetryAttempts is the number of attempts before a fetch fails.
	RetryAttempts int `mapstructure:"retry_attempts" default:"3"`
	// RetryDelayMs is the base backoff delay in milliseconds; attempt N waits N times this.
	RetryDelayMs int `mapstructure:"retry_delay_ms" default:"500"`
	// MinIntervalMs is the minimum delay between any two API requests in milliseconds.
	MinIntervalMs int `mapstructure:"min_interval_ms" default:"100"`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
