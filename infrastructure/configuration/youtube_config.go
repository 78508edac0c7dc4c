package configuration

import (
	"os"
	"strings"

	"channel-stats/domain/model"
)

// YouTubeConfig is what the API client needs to be built
type YouTubeConfig struct {
	APIKey   string
	Endpoint string
}

// GetYouTubeConfig returns the client settings, environment first.
func (c *Config) GetYouTubeConfig() *YouTubeConfig {
	return &YouTubeConfig{
		APIKey:   getConfigValue(c.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
		Endpoint: getConfigValue(c.YouTube.Endpoint, "YOUTUBE_ENDPOINT", ""),
	}
}

// MonthFilter turns the report settings into the domain filter.
func (c *Config) MonthFilter() model.MonthFilter {
	f := model.DefaultMonthFilter()
	if c.Report.MonthFilter == string(model.MonthFilterYear) {
		f.Mode = model.MonthFilterYear
	}
	if c.Report.MonthBound != "" {
		f.Bound = c.Report.MonthBound
	}
	if c.Report.Year != "" {
		f.Year = c.Report.Year
	}
	return f
}

// getConfigValue gets value from config first, then environment variable, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	// Environment variable takes precedence when provided
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	// Otherwise use config value if set and not a placeholder
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
