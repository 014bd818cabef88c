package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the MediaTrack server and the
// third-party metadata providers.
type Config struct {
	// Listen is the address the MediaTrack server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// DatabasePath is the directory the sqlite database is stored in.
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
	// Auth holds the token configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Jikan holds the configuration for the Jikan (MyAnimeList) API.
	Jikan *JikanConfig `yaml:"jikan" mapstructure:"jikan"`
	// RAWG holds the configuration for the RAWG games API.
	RAWG *RAWGConfig `yaml:"rawg" mapstructure:"rawg"`
	// TMDB holds the configuration for the TMDB API.
	TMDB *TMDBConfig `yaml:"tmdb" mapstructure:"tmdb"`
	// Steam holds the configuration for the Steam catalog and charts.
	Steam *SteamConfig `yaml:"steam" mapstructure:"steam"`
}

// AuthConfig holds the token signing configuration.
type AuthConfig struct {
	// JWTSecret is the key used to sign access tokens.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// JikanConfig holds the configuration for the Jikan API.
type JikanConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// RAWGConfig holds the configuration for the RAWG API.
type RAWGConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// TMDBConfig holds the configuration for the TMDB API.
type TMDBConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
	// APIToken is the TMDB read access token, sent as a bearer token.
	APIToken string `yaml:"api_token" mapstructure:"api_token"`
	// PosterURL is the base URL posters paths are resolved against.
	PosterURL string `yaml:"poster_url" mapstructure:"poster_url"`
}

// SteamConfig holds the configuration for the Steam app search and the
// steamcharts page used for the concurrent-players enrichment.
type SteamConfig struct {
	CommunityURL string `yaml:"community_url" mapstructure:"community_url"`
	ChartsURL    string `yaml:"charts_url" mapstructure:"charts_url"`
}

// Load loads the configuration from the given file path. If path is empty,
// common locations are searched. Environment variables with the MEDIATRACK_
// prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("MEDIATRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.mediatrack")
		v.AddConfigPath("/etc/mediatrack")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8096")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", "./data")

	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("jikan.url", "https://api.jikan.moe/v4")
	v.SetDefault("rawg.url", "https://api.rawg.io/api")
	v.SetDefault("tmdb.url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.poster_url", "https://image.tmdb.org/t/p/original")
	v.SetDefault("steam.community_url", "https://steamcommunity.com")
	v.SetDefault("steam.charts_url", "https://steamcharts.com")
}

func validateConfig(c *Config) error {
	if c.Auth == nil || c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.RAWG == nil || c.RAWG.APIKey == "" {
		return fmt.Errorf("rawg.api_key is required")
	}
	if c.TMDB == nil || c.TMDB.APIToken == "" {
		return fmt.Errorf("tmdb.api_token is required")
	}
	return nil
}
