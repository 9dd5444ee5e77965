package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

var configEnv = []string{
	"CHROME_BOOKMARK_FILE", "API_PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT",
	"WATCH_DEBOUNCE", "DESKTOP_NOTIFY", "URL_OPENER",
}

// clearEnv blanks every variable Load reads so host settings don't leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			setupEnv: func(t *testing.T) {
				home := t.TempDir()
				t.Setenv("HOME", home)
				t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "journal.db"))
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				home := os.Getenv("HOME")
				want := []string{
					filepath.Join(home, ".config/google-chrome/Default/Bookmarks"),
					filepath.Join(home, ".config/chromium/Default/Bookmarks"),
				}
				if !slices.Equal(cfg.SourcePaths, want) {
					t.Errorf("SourcePaths = %v, want %v", cfg.SourcePaths, want)
				}
				if cfg.APIPort != "9000" {
					t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
				}
				if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("log settings = %v/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.WatchDebounce != 300*time.Millisecond {
					t.Errorf("WatchDebounce = %v, want 300ms", cfg.WatchDebounce)
				}
				if cfg.DesktopNotify {
					t.Error("DesktopNotify should default to false")
				}
				if cfg.URLOpener != "xdg-open" {
					t.Errorf("URLOpener = %q, want xdg-open", cfg.URLOpener)
				}
				if !cfg.JournalEnabled() {
					t.Error("journal should be enabled by default")
				}
				if _, err := os.Stat(filepath.Dir(cfg.DBPath)); err != nil {
					t.Errorf("data directory not created: %v", err)
				}
			},
		},
		{
			name: "explicit bookmark file replaces defaults",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("DB_PATH", "off")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if !slices.Equal(cfg.SourcePaths, []string{"/tmp/Bookmarks"}) {
					t.Errorf("SourcePaths = %v, want [/tmp/Bookmarks]", cfg.SourcePaths)
				}
				if cfg.JournalEnabled() {
					t.Error("journal should be disabled with DB_PATH=off")
				}
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("DB_PATH", "off")
				t.Setenv("API_PORT", "9100")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
				t.Setenv("WATCH_DEBOUNCE", "1s")
				t.Setenv("DESKTOP_NOTIFY", "true")
				t.Setenv("URL_OPENER", "open")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.APIPort != "9100" || cfg.URLOpener != "open" {
					t.Errorf("unexpected port/opener: %q/%q", cfg.APIPort, cfg.URLOpener)
				}
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("log settings = %v/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.WatchDebounce != time.Second || !cfg.DesktopNotify {
					t.Errorf("unexpected debounce/notify: %v/%v", cfg.WatchDebounce, cfg.DesktopNotify)
				}
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "invalid debounce",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("WATCH_DEBOUNCE", "soon")
			},
			wantErr: true,
		},
		{
			name: "negative debounce",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("WATCH_DEBOUNCE", "-1s")
			},
			wantErr: true,
		},
		{
			name: "invalid desktop notify",
			setupEnv: func(t *testing.T) {
				t.Setenv("CHROME_BOOKMARK_FILE", "/tmp/Bookmarks")
				t.Setenv("DESKTOP_NOTIFY", "maybe")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BOOKMARKS_SEARCH_TEST_VAR", "value")
	if got := getEnv("BOOKMARKS_SEARCH_TEST_VAR", "default"); got != "value" {
		t.Errorf("getEnv() = %q, want value", got)
	}
	if got := getEnv("BOOKMARKS_SEARCH_TEST_UNSET", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want default", got)
	}
}
