package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/civicspath/backend/internal/infrastructure/logger"
)

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "civics.log")
	log, err := logger.New("info", path)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Info("session started")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"session started"`) {
		t.Errorf("expected info entry, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered at info level")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := logger.New("loud", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}
