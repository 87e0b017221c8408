package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the settings file looked up when STEADY_CONFIG is unset.
const DefaultPath = "steady.toml"

// Settings are the runtime options shared by the entrypoints.
type Settings struct {
	DataDir    string  `toml:"data_dir"`
	Difficulty string  `toml:"difficulty"`
	Sound      bool    `toml:"sound"`
	Volume     float64 `toml:"volume"`

	Log LogSettings `toml:"log"`
	SSH SSHSettings `toml:"ssh"`
	Web WebSettings `toml:"web"`
}

// LogSettings selects the log level and, for the local game, the log file.
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Local game only; empty means <data_dir>/steady.log
}

// SSHSettings is the SSH listener address and host key.
type SSHSettings struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	HostKey string `toml:"host_key"`
}

// WebSettings is the landing page listener address.
type WebSettings struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	// SSHDisplayHost is the address printed on the landing page.
	SSHDisplayHost string `toml:"ssh_display_host"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		DataDir:    ".",
		Difficulty: "Normal",
		Sound:      true,
		Volume:     0.6,
		Log:        LogSettings{Level: "info"},
		SSH:        SSHSettings{Host: "::", Port: "2222", HostKey: "/app/keys/host_key"},
		Web:        WebSettings{Host: "0.0.0.0", Port: "8080", SSHDisplayHost: "your-server.com"},
	}
}

// Load applies, in order: defaults, the TOML file at path, then environment
// variables. A missing file is fine; a malformed one is an error.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("load settings %s: %w", path, err)
		}
	}
	s.applyEnv()
	if s.Log.File == "" {
		s.Log.File = filepath.Join(s.DataDir, "steady.log")
	}
	return s, nil
}

// LoadDefault loads the file named by STEADY_CONFIG, or DefaultPath.
func LoadDefault() (Settings, error) {
	return Load(GetEnv("STEADY_CONFIG", DefaultPath))
}

func (s *Settings) applyEnv() {
	s.DataDir = GetEnv("STEADY_DATA_DIR", s.DataDir)
	s.Difficulty = GetEnv("STEADY_DIFFICULTY", s.Difficulty)
	s.Sound = GetEnvBool("STEADY_SOUND", s.Sound)
	s.Log.Level = GetEnv("STEADY_LOG_LEVEL", s.Log.Level)
	s.Log.File = GetEnv("STEADY_LOG_FILE", s.Log.File)
	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKey = GetEnv("SSH_HOST_KEY", s.SSH.HostKey)
	s.Web.Host = GetEnv("WEB_HOST", s.Web.Host)
	s.Web.Port = GetEnv("WEB_PORT", s.Web.Port)
	s.Web.SSHDisplayHost = GetEnv("SSH_DISPLAY_HOST", s.Web.SSHDisplayHost)
}
