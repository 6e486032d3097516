package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func withFile(t *testing.T, body string) *viper.Viper {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.AddConfigPath(dir)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BANK_PATH", "")
	t.Setenv("BANK_URL", "")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "local" || cfg.HTTP.Port != "8080" || cfg.HTTP.RateLimit != 120 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Bank.Path != "data/questions.json" || cfg.Bank.URL != "" || cfg.Quiz.Seed != 0 {
		t.Errorf("unexpected bank defaults: %+v", cfg.Bank)
	}
	if got := cfg.HTTP.Origins(); len(got) != 2 || got[0] != "http://localhost:5173" {
		t.Errorf("unexpected origins: %v", got)
	}
	if cfg.HTTP.TLS() {
		t.Error("expected plain HTTP by default")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("BANK_URL", "https://example.org/bank.html")
	t.Setenv("QUIZ_SEED", "42")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != "9090" || cfg.Env != "production" || cfg.Quiz.Seed != 42 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Bank.URL != "https://example.org/bank.html" {
		t.Errorf("unexpected bank url %q", cfg.Bank.URL)
	}
	if got := cfg.HTTP.Origins(); len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("BANK_PATH", "")
	v := withFile(t, `
bank:
  path: banks/ktct.xlsx
  sheet: Questions
  merges:
    "3": [3, 4]
http:
  rate_limit: 0
`)
	cfg, err := load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bank.Path != "banks/ktct.xlsx" || cfg.Bank.Sheet != "Questions" || cfg.HTTP.RateLimit != 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if got := cfg.Bank.Merges["3"]; len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("unexpected merges: %v", cfg.Bank.Merges)
	}
}

func TestLoadRequiresBankSource(t *testing.T) {
	t.Setenv("BANK_PATH", "")
	t.Setenv("BANK_URL", "")
	v := withFile(t, "bank:\n  path: \"\"\n")
	if _, err := load(v); !errors.Is(err, ErrMissingBankSource) {
		t.Fatalf("expected missing bank source, got %v", err)
	}
}
