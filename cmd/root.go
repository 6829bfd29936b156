package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/ai"
	"github.com/lanewaylabs/bizmatch/internal/ai/gemini"
	"github.com/lanewaylabs/bizmatch/internal/logger"
	"github.com/lanewaylabs/bizmatch/internal/secrets"
	"github.com/lanewaylabs/bizmatch/internal/store"
)

const app = "bizmatch"

// Config is the application configuration, loaded from the config file and
// environment.
type Config struct {
	Database *DatabaseConfig `mapstructure:"database"`
	Server   *ServerConfig   `mapstructure:"server"`
	AI       *AIConfig       `mapstructure:"ai"`
}

// DatabaseConfig points at the Postgres instance holding users and the
// blueprint catalog.
type DatabaseConfig struct {
	URL     string            `mapstructure:"url"`
	URLFile string            `mapstructure:"url-file"`
	Pool    *store.PoolConfig `mapstructure:"pool"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// AIConfig configures the skill-match oracle.
type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "bizmatch ranks business opportunities against a user's quiz profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database.url", "DATABASE_URL"); err != nil {
		log.Fatalf("binding DATABASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is bizmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine; everything can come from env and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// newStore connects to Postgres using the configured URL, which may come
// inline, from a file or from DATABASE_URL.
func newStore(ctx context.Context, config *Config, lg *zap.Logger) (*store.Postgres, error) {
	dbCfg := config.Database
	if dbCfg == nil {
		dbCfg = &DatabaseConfig{}
	}

	url, err := secrets.Load(secrets.Source{
		Name:  "database url",
		Value: dbCfg.URL,
		File:  dbCfg.URLFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set database.url, database.url-file or DATABASE_URL)", err)
	}

	return store.NewPostgres(ctx, url, dbCfg.Pool, lg)
}

// newOracle builds the configured skill-match oracle. It returns nil when
// the oracle is disabled; the ranker then always uses the keyword fallback.
func newOracle(ctx context.Context, cfg *AIConfig, lg *zap.Logger) (ai.Oracle, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when the oracle is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	matcherLogger := logger.WithOracleFields(lg, "gemini", generator.Model())

	return gemini.NewMatcher(
		generator,
		matcherLogger,
		time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second,
		cfg.Gemini.MaxLogLength,
	), nil
}
