package configwatcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"trading_edu_backend/internal/config"
)

const baseConfig = `server:
  port: "8080"
  mode: debug
`

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(baseConfig), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded := make(chan *config.Config, 1)
	go WatchConfig(path, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	// Give the watcher time to attach before touching the file.
	time.Sleep(200 * time.Millisecond)

	updated := `server:
  port: "9090"
  mode: debug
`
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Server.Port != "9090" {
			t.Errorf("reloaded port = %q, want 9090", cfg.Server.Port)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config reload never fired")
	}
}
