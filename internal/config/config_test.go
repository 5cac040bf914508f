package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.Game.CanvasWidth != 600 || s.Game.CanvasHeight != 400 {
		t.Errorf("Expected a 600x400 canvas, got %vx%v", s.Game.CanvasWidth, s.Game.CanvasHeight)
	}
	if s.Game.SpawnInterval != 900*time.Millisecond {
		t.Errorf("Expected 900ms spawn interval, got %v", s.Game.SpawnInterval)
	}
	if len(s.Game.Subjects) != 11 {
		t.Errorf("Expected 11 subjects, got %d", len(s.Game.Subjects))
	}
	if s.UI.Backend != BackendANSI || s.SSH.Port != "2222" || s.Web.Port != "8080" {
		t.Errorf("Unexpected defaults: %+v %+v %+v", s.UI, s.SSH, s.Web)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.yaml")
	file := `
game:
  game_seconds: 30
  subjects: [MATHS, PHYSICS]
ui:
  backend: tcell
ssh:
  port: "2022"
  shutdown_grace: 3s
`
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAMPUS_SSH_PORT", "2323")
	t.Setenv("CAMPUS_GAME_LIVES", "5")

	flags := Flags("test")
	if err := flags.Parse([]string{"--game.game_seconds=45", "--log.level=debug"}); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name      string
		got, want any
	}{
		{"flag beats file", s.Game.GameSeconds, 45},
		{"env beats file", s.SSH.Port, "2323"},
		{"env without file key", s.Game.InitialLives, 5},
		{"file list", strings.Join(s.Game.Subjects, ","), "MATHS,PHYSICS"},
		{"file string", s.UI.Backend, BackendTcell},
		{"file duration", s.SSH.ShutdownGrace, 3 * time.Second},
		{"flag string", s.Log.Level, "debug"},
		{"unset flag keeps default", s.Web.Port, "8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"backend", map[string]string{"CAMPUS_UI_BACKEND": "curses"}, "ui.backend"},
		{"level", map[string]string{"CAMPUS_LOG_LEVEL": "loud"}, "log.level"},
		{"tick rate", map[string]string{"CAMPUS_GAME_TICK_RATE": "0"}, "game.tick_rate"},
		{"inactivity order", map[string]string{
			"CAMPUS_UI_INACTIVITY_WARN":       "3m",
			"CAMPUS_UI_INACTIVITY_DISCONNECT": "2m",
		}, "ui.inactivity_warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("", nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected an error naming %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", &buf)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "user", "alice")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected info to be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "user=alice") || !strings.Contains(out, "campus") {
		t.Errorf("Unexpected log output: %q", out)
	}

	if _, err := NewLogger("loud", &buf); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}

func TestOpenLogFile(t *testing.T) {
	w, err := OpenLogFile("")
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	if _, err := w.Write([]byte("dropped")); err != nil {
		t.Errorf("Expected discarded writes to succeed, got %v", err)
	}
	w.Close()

	path := filepath.Join(t.TempDir(), "game.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	f.Write([]byte("kept\n"))
	f.Close()
	if data, _ := os.ReadFile(path); string(data) != "kept\n" {
		t.Errorf("Expected the log line in the file, got %q", data)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CAMPUS_TEST_SET", "value")
	t.Setenv("CAMPUS_TEST_BLANK", " ")

	tests := []struct {
		key, want string
	}{
		{"CAMPUS_TEST_SET", "value"},
		{"CAMPUS_TEST_BLANK", "fallback"},
		{"CAMPUS_TEST_UNSET", "fallback"},
	}
	for _, tt := range tests {
		if got := GetEnv(tt.key, "fallback"); got != tt.want {
			t.Errorf("GetEnv(%s): expected %q, got %q", tt.key, tt.want, got)
		}
	}
}
