package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/domain/officials"
	"github.com/civicspath/backend/internal/infrastructure/config"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddress != "127.0.0.1:8080" || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.DBPath != "civics.db" || cfg.TrialDays != 7 {
		t.Errorf("unexpected storage defaults: %+v", cfg)
	}
	if len(cfg.PromoCodes) != 1 || cfg.PromoCodes[0] != "FREEUSCIS" {
		t.Errorf("unexpected promo codes %v", cfg.PromoCodes)
	}
	if len(cfg.SpeechCommand) != 0 {
		t.Errorf("expected no speech command, got %v", cfg.SpeechCommand)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		"TRIAL_DAYS":     "14",
		"PROMO_CODES":    "FREEUSCIS, SPRING ,",
		"CORS_ORIGINS":   "http://localhost:5173,https://app.example.org",
		"SPEECH_COMMAND": "espeak -s 150",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TrialDays != 14 {
		t.Errorf("expected 14 trial days, got %d", cfg.TrialDays)
	}
	if len(cfg.PromoCodes) != 2 || cfg.PromoCodes[1] != "SPRING" {
		t.Errorf("unexpected promo codes %q", cfg.PromoCodes)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if len(cfg.SpeechCommand) != 3 || cfg.SpeechCommand[0] != "espeak" {
		t.Errorf("unexpected speech command %q", cfg.SpeechCommand)
	}
}

func TestFromEnv_Malformed(t *testing.T) {
	for _, kv := range []map[string]string{
		{"SHUTDOWN_TIMEOUT": "soon"},
		{"TRIAL_DAYS": "-1"},
		{"TRIAL_DAYS": "week"},
	} {
		if _, err := config.FromEnv(env(kv)); err == nil {
			t.Errorf("expected error for %v", kv)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOfficials_MergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "officials.yaml")
	writeFile(t, path, `
last_updated: March 2026
speaker:
  name: Jane Doe
  aliases: [Speaker Doe]
`)

	fed, err := config.LoadOfficials(path)
	if err != nil {
		t.Fatal(err)
	}
	if fed.Speaker.Name != "Jane Doe" || len(fed.Speaker.Aliases) != 1 {
		t.Errorf("unexpected speaker %+v", fed.Speaker)
	}
	if fed.LastUpdated != "March 2026" {
		t.Errorf("unexpected last_updated %q", fed.LastUpdated)
	}
	if fed.President.Name != officials.DefaultFederal().President.Name {
		t.Errorf("expected default president, got %+v", fed.President)
	}
	if len(fed.DistractorPool) == 0 {
		t.Error("expected default distractor pool")
	}
}

func TestLoadOfficials_EmptyPath(t *testing.T) {
	fed, err := config.LoadOfficials("")
	if err != nil {
		t.Fatal(err)
	}
	if fed.ChiefJustice.Name != officials.DefaultFederal().ChiefJustice.Name {
		t.Errorf("expected built-in officials, got %+v", fed)
	}
}

func TestLoadOfficials_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := config.LoadOfficials(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	blank := filepath.Join(dir, "blank.yaml")
	writeFile(t, blank, "president:\n  name: \"\"\n")
	if _, err := config.LoadOfficials(blank); err == nil {
		t.Error("expected error for empty officeholder name")
	}
}

func TestWatchOfficials_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "officials.yaml")
	writeFile(t, path, "speaker:\n  name: First Speaker\n")

	var (
		mu     sync.Mutex
		latest officials.Federal
	)
	fed, err := config.WatchOfficials(path, zap.NewNop(), func(f officials.Federal) {
		mu.Lock()
		latest = f
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if fed.Speaker.Name != "First Speaker" {
		t.Fatalf("unexpected initial speaker %q", fed.Speaker.Name)
	}

	writeFile(t, path, "speaker:\n  name: Second Speaker\n")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		name := latest.Speaker.Name
		mu.Unlock()
		if name == "Second Speaker" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("reload was not applied")
}
