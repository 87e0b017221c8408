package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "steady.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := Defaults()
	if s.Difficulty != d.Difficulty || s.SSH.Port != d.SSH.Port || !s.Sound {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.Log.File != filepath.Join(".", "steady.log") {
		t.Fatalf("log file = %q", s.Log.File)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
data_dir = "/var/lib/steady"
difficulty = "Hard"
sound = false

[log]
level = "debug"

[ssh]
port = "2323"
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.DataDir != "/var/lib/steady" || s.Difficulty != "Hard" || s.Sound {
		t.Fatalf("top level not decoded: %+v", s)
	}
	if s.Log.Level != "debug" || s.SSH.Port != "2323" || s.SSH.Host != Defaults().SSH.Host {
		t.Fatalf("tables not decoded: %+v", s)
	}
	if s.Log.File != filepath.Join("/var/lib/steady", "steady.log") {
		t.Fatalf("log file = %q", s.Log.File)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "difficulty = \n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "difficulty = \"Hard\"\nsound = true\n")
	t.Setenv("STEADY_DIFFICULTY", "Easy")
	t.Setenv("STEADY_SOUND", "0")
	t.Setenv("SSH_PORT", "9999")
	t.Setenv("STEADY_LOG_FILE", "/tmp/x.log")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Difficulty != "Easy" || s.Sound || s.SSH.Port != "9999" || s.Log.File != "/tmp/x.log" {
		t.Fatalf("env not applied: %+v", s)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("STEADY_TEST_BOOL", "garbage")
	if !GetEnvBool("STEADY_TEST_BOOL", true) {
		t.Fatalf("unparsable value should return fallback")
	}
	t.Setenv("STEADY_TEST_BOOL", "false")
	if GetEnvBool("STEADY_TEST_BOOL", true) {
		t.Fatalf("expected false")
	}
	if GetEnvBool("STEADY_TEST_UNSET_BOOL", false) {
		t.Fatalf("unset should return fallback")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("unexpected log output %q", out)
	}

	buf.Reset()
	logger = NewLogger(&buf, "loud")
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Fatalf("bad level not reported: %q", buf.String())
	}
	logger.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("fallback level should be info")
	}
}
