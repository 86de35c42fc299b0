package tableio

import (
	"net/http"
	"time"
)

// Config holds settings for fetching remote exports.
type Config struct {
	// HTTPTimeoutSeconds bounds a single download attempt.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" default:"60"`
	// Retries is the number of extra attempts after a failed download.
	Retries int `mapstructure:"retries" default:"2"`
	// RetryDelayMillis is the base delay between attempts, multiplied by the attempt number.
	RetryDelayMillis int `mapstructure:"retry_delay_millis" default:"500"`
}

// HTTPClient returns an HTTP client using the configured timeout.
func (c Config) HTTPClient() *http.Client {
	timeout := c.HTTPTimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}

// RetryDelay returns the base delay between download attempts.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}
