package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists = true with no file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.AlertLimit = 3
	cfg.Payoff.DefaultStrategy = "snowball"
	cfg.Payoff.DefaultExtra = 200
	cfg.Server.Addr = "127.0.0.1:9999"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadFillsBadValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	body := `
[general]
alert_limit = -1

[payoff]
default_strategy = "lottery"
default_extra = -40

[tui]
extra_step = 0
`
	if err := os.MkdirAll(filepath.Join(dir, "budgetburn"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.AlertLimit != 6 || cfg.General.ScheduleRows != 24 {
		t.Errorf("General = %+v", cfg.General)
	}
	if cfg.Payoff.DefaultStrategy != "avalanche" || cfg.Payoff.DefaultExtra != 0 {
		t.Errorf("Payoff = %+v", cfg.Payoff)
	}
	if cfg.TUI.ExtraStep != 25 {
		t.Errorf("ExtraStep = %v, want 25", cfg.TUI.ExtraStep)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "budgetburn"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestDBPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(EnvDBPath, "")

	cfg := DefaultConfig()
	if got := DBPath(cfg); got != filepath.Join("/data", "budgetburn", "budget.db") {
		t.Errorf("DBPath default = %q", got)
	}
	cfg.General.DBPath = "/tmp/custom.db"
	if got := DBPath(cfg); got != "/tmp/custom.db" {
		t.Errorf("DBPath config = %q", got)
	}
	t.Setenv(EnvDBPath, "/env.db")
	if got := DBPath(cfg); got != "/env.db" {
		t.Errorf("DBPath env = %q, want /env.db", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv without file: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvDBPath+"=/from/dotenv.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDBPath, "")
	_ = os.Unsetenv(EnvDBPath)
	if err := LoadDotEnv(); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv(EnvDBPath); got != "/from/dotenv.db" {
		t.Errorf("%s = %q, want /from/dotenv.db", EnvDBPath, got)
	}
}
