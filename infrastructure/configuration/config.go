package configuration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"channel-stats/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:"app"`
	YouTube  YouTube  `mapstructure:"youtube"`
	Report   Report   `mapstructure:"report"`
	Database Database `mapstructure:"database"`
}

type App struct {
	Port      int    `mapstructure:"port"`
	Serve     bool   `mapstructure:"serve"`
	OutputDir string `mapstructure:"outputDir"`

	// AllowOrigins restricts CORS in serve mode; empty allows any origin.
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

type YouTube struct {
	APIKey     string   `mapstructure:"apiKey"`
	Endpoint   string   `mapstructure:"endpoint"`
	ChannelIDs []string `mapstructure:"channelIds"`
}

// Report controls which playlist is collected and how it is charted.
type Report struct {
	// ChannelID overrides the default choice of the channel with most videos.
	ChannelID   string `mapstructure:"channelId"`
	MonthFilter string `mapstructure:"monthFilter"`
	MonthBound  string `mapstructure:"monthBound"`
	Year        string `mapstructure:"year"`
	TopN        int    `mapstructure:"topN"`
}

type Database struct {
	Psql Db `mapstructure:"psql"`
}

type Db struct {
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslMode"`
}

// Enabled reports whether a database host was configured.
func (d Db) Enabled() bool {
	return d.Host != ""
}

// DefaultChannelIDs are the artist channels the report was first built for.
var DefaultChannelIDs = []string{
	"UCqECaJ8Gagnn7YCbPEzWH6g", // Taylor Swift
	"UC9CoOnJkIBMdeijd9qYoT_g", // Ariana Grande
	"UCsRM0YB_dabtEPGPTKo-gcw", // Adele
	"UCByOQJjav0CUDwxCk-jVNRQ", // Drake
	"UCy3zgWom-5AGypGX_FVTKpg", // Olivia Rodrigo
	"UC-J-KZfRV8c13fOCkhXdLiQ", // Dua Lipa
	"UC0C-w0YjGpqDXGB8IHb662A", // Ed Sheeran
	"UCxMAbVFmxKUVGAll0WVGpFw", // Cardi B
	"UCurpiDXSkcUbgdMwHNZkrCg", // Mariah Carey
	"UCAvCL8hyXjSUHKEGuUPr1BA", // Shawn Mendes
}

var ErrMissingAPIKey = errors.New("YouTube API key is required")

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 10001)
	v.SetDefault("app.serve", false)
	v.SetDefault("app.outputDir", "output")
	v.SetDefault("app.allowOrigins", []string{})
	v.SetDefault("youtube.apiKey", "")
	v.SetDefault("youtube.endpoint", "")
	v.SetDefault("youtube.channelIds", DefaultChannelIDs)
	v.SetDefault("report.channelId", "")
	v.SetDefault("report.monthFilter", "lexical")
	v.SetDefault("report.monthBound", "2021-00")
	v.SetDefault("report.year", "2021")
	v.SetDefault("report.topN", 10)
	v.SetDefault("database.psql.name", "")
	v.SetDefault("database.psql.host", "")
	v.SetDefault("database.psql.port", "5432")
	v.SetDefault("database.psql.user", "")
	v.SetDefault("database.psql.password", "")
	v.SetDefault("database.psql.sslMode", "disable")
}

// LoadConfig reads config[-ENV].json when present and applies environment
// overrides. A missing file is not an error; every key has a default.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	name := getConfig()
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", name, err)
		}
		logger.GetLogger().WithField("config", name).Warn("Config file not found, using defaults and environment")
	} else {
		logger.GetLogger().WithField("config", v.ConfigFileUsed()).Info("Config set up successfully")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyEnvFallbacks(&c)
	return &c, nil
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// applyEnvFallbacks honours the conventional variable names that do not follow
// the section_key pattern.
func applyEnvFallbacks(c *Config) {
	c.YouTube.APIKey = getConfigValue(c.YouTube.APIKey, "YOUTUBE_API_KEY", "")
	c.YouTube.ChannelIDs = splitList(c.YouTube.ChannelIDs)
	c.App.AllowOrigins = splitList(c.App.AllowOrigins)
	if c.Database.Psql.Host == "" {
		c.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if c.Database.Psql.Name == "" {
		c.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if c.Database.Psql.User == "" {
		c.Database.Psql.User = os.Getenv("DB_USER")
	}
	if c.Database.Psql.Password == "" {
		c.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("APP_PORT") == "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
}

// splitList accepts both a JSON array and a single comma separated value,
// the latter being what an environment variable produces.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the settings the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("%w: set youtube.apiKey or YOUTUBE_API_KEY", ErrMissingAPIKey)
	}
	if len(c.YouTube.ChannelIDs) == 0 {
		return errors.New("at least one channel id is required")
	}
	switch c.Report.MonthFilter {
	case "lexical", "year":
	default:
		return fmt.Errorf("unknown report.monthFilter %q", c.Report.MonthFilter)
	}
	return nil
}
