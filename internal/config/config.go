package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingBankSource = errors.New("either bank.path or bank.url must be set")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env  string `mapstructure:"env"`  // current application environment (local, dev, production)
	HTTP HTTP   `mapstructure:"http"` // HTTP host settings
	Bank Bank   `mapstructure:"bank"` // question bank source
	Quiz Quiz   `mapstructure:"quiz"` // quiz engine settings
}

// HTTP contains listener and middleware settings.
type HTTP struct {
	Port           string `mapstructure:"port"`
	AllowedOrigins string `mapstructure:"allowed_origins"` // comma separated
	RateLimit      int    `mapstructure:"rate_limit"`      // requests per minute per client, 0 disables
	TLSCert        string `mapstructure:"tls_cert"`
	TLSKey         string `mapstructure:"tls_key"`
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (h HTTP) Origins() []string {
	var out []string
	for _, o := range strings.Split(h.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// TLS reports whether both certificate and key are configured.
func (h HTTP) TLS() bool { return h.TLSCert != "" && h.TLSKey != "" }

// Bank locates the question bank.
type Bank struct {
	Path   string           `mapstructure:"path"`   // .json or .xlsx file
	URL    string           `mapstructure:"url"`    // HTML page, takes precedence over Path
	Sheet  string           `mapstructure:"sheet"`  // worksheet of an .xlsx bank
	Merges map[string][]int `mapstructure:"merges"` // chapter tokens covering several chapters; nil keeps the bank default
}

// Quiz holds engine settings.
type Quiz struct {
	Seed int64 `mapstructure:"seed"` // 0 seeds from the clock
}

// Load reads configuration from an optional .env file, config files and
// environment variables, in increasing priority.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("env", "local")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.allowed_origins", "http://localhost:5173,https://localhost:5173")
	v.SetDefault("http.rate_limit", 120)
	v.SetDefault("http.tls_cert", "")
	v.SetDefault("http.tls_key", "")
	v.SetDefault("bank.path", "data/questions.json")
	v.SetDefault("bank.url", "")
	v.SetDefault("bank.sheet", "")
	v.SetDefault("quiz.seed", 0)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.port", "PORT")
	_ = v.BindEnv("http.allowed_origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("http.rate_limit", "RATE_LIMIT")
	_ = v.BindEnv("http.tls_cert", "TLS_CERT")
	_ = v.BindEnv("http.tls_key", "TLS_KEY")
	_ = v.BindEnv("bank.path", "BANK_PATH")
	_ = v.BindEnv("bank.url", "BANK_URL")
	_ = v.BindEnv("bank.sheet", "BANK_SHEET")
	_ = v.BindEnv("quiz.seed", "QUIZ_SEED")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Bank.Path == "" && cfg.Bank.URL == "" {
		return nil, ErrMissingBankSource
	}
	return &cfg, nil
}
