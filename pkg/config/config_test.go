package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if !cfg.Control.Enabled || cfg.Control.Path != DefaultControlPath {
		t.Errorf("Control = %+v, want enabled at %s", cfg.Control, DefaultControlPath)
	}
	if res := Validate(cfg); !res.IsValid() {
		t.Errorf("DefaultConfig() does not validate: %s", res.Error())
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
server:
  host: 127.0.0.1
  port: 9999
control:
  enabled: true
  path: /run/faultd.ctl
logging:
  level: debug
  format: json
  crashLog: /var/log/faultd-crash.log
`)
	cfg, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9999 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Control.Path != "/run/faultd.ctl" {
		t.Errorf("Control.Path = %q", cfg.Control.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Logging.CrashLog != "/var/log/faultd-crash.log" {
		t.Errorf("Logging.CrashLog = %q", cfg.Logging.CrashLog)
	}
	// Defaults fill what the file omits.
	if cfg.Events.Buffer != DefaultEventBuffer {
		t.Errorf("Events.Buffer = %d, want default %d", cfg.Events.Buffer, DefaultEventBuffer)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("server: [not a map"))
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("error = %v, want ErrInvalidYAML", err)
	}
}

func TestParseJSON(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"server":{"port":8088},"events":{"enabled":true,"buffer":4}}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	if cfg.Events.Buffer != 4 {
		t.Errorf("Events.Buffer = %d, want 4", cfg.Events.Buffer)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "faultd.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 4444\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile: %v", err)
		}
		if cfg.Server.Port != 4444 {
			t.Errorf("Server.Port = %d, want 4444", cfg.Server.Port)
		}
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "faultd.json")
		if err := os.WriteFile(path, []byte(`{"server":{"port":5555}}`), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile: %v", err)
		}
		if cfg.Server.Port != 5555 {
			t.Errorf("Server.Port = %d, want 5555", cfg.Server.Port)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("error = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFromFile(path)
		if !errors.Is(err, ErrEmptyFile) {
			t.Errorf("error = %v, want ErrEmptyFile", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := LoadFromFile(dir); err == nil {
			t.Error("expected error loading a directory")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{
			name:     "bad port",
			mutate:   func(c *Config) { c.Server.Port = 70000 },
			wantPath: "server.port",
		},
		{
			name:     "relative control path",
			mutate:   func(c *Config) { c.Control.Path = "faultd.ctl" },
			wantPath: "control.path",
		},
		{
			name:     "missing control path",
			mutate:   func(c *Config) { c.Control.Path = "" },
			wantPath: "control.path",
		},
		{
			name:     "negative buffer",
			mutate:   func(c *Config) { c.Events.Buffer = -1 },
			wantPath: "events.buffer",
		},
		{
			name:     "bad level",
			mutate:   func(c *Config) { c.Logging.Level = "loud" },
			wantPath: "logging.level",
		},
		{
			name:     "bad format",
			mutate:   func(c *Config) { c.Logging.Format = "xml" },
			wantPath: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			res := Validate(cfg)
			if res.IsValid() {
				t.Fatal("expected validation failure")
			}
			found := false
			for _, e := range res.Errors {
				if e.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for %s in %s", tt.wantPath, res.Error())
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := DefaultConfig()
	cfg.Server.Port = 6001
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Server.Port != 6001 {
		t.Errorf("Server.Port = %d, want 6001", loaded.Server.Port)
	}
}
