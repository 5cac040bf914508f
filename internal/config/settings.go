package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	gameconfig "github.com/tomz197/campus-invaders/internal/loop/config"
)

// EnvPrefix prefixes every environment override, e.g. CAMPUS_SSH_PORT.
const EnvPrefix = "CAMPUS"

// Terminal backends for local play.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Settings is the configuration of all binaries.
type Settings struct {
	Game  gameconfig.Rules `mapstructure:"game"`
	Input InputSettings    `mapstructure:"input"`
	UI    UISettings       `mapstructure:"ui"`
	Log   LogSettings      `mapstructure:"log"`
	SSH   SSHSettings      `mapstructure:"ssh"`
	Web   WebSettings      `mapstructure:"web"`
}

type InputSettings struct {
	// Hold is how long a key counts as held after its last byte.
	Hold time.Duration `mapstructure:"hold"`
}

type UISettings struct {
	Backend string `mapstructure:"backend"`
	Sound   bool   `mapstructure:"sound"`
	MaxCols int    `mapstructure:"max_cols"`
	MaxRows int    `mapstructure:"max_rows"`

	// SSH sessions only. Zero disables.
	InactivityWarn       time.Duration `mapstructure:"inactivity_warn"`
	InactivityDisconnect time.Duration `mapstructure:"inactivity_disconnect"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Local play only; empty discards
}

type SSHSettings struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	HostKeyPath string `mapstructure:"host_key"`

	ShutdownGrace   time.Duration `mapstructure:"shutdown_grace"`   // Shutdown screen before disconnect
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Wait for sessions to leave
	Leaderboard     int           `mapstructure:"leaderboard"`
}

type WebSettings struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	DisplayHost string `mapstructure:"display_host"` // SSH host shown on the page
}

// Default returns the settings used when nothing overrides them.
func Default() Settings {
	return Settings{
		Game:  gameconfig.Default(),
		Input: InputSettings{Hold: 80 * time.Millisecond},
		UI: UISettings{
			Backend:              BackendANSI,
			MaxCols:              120,
			MaxRows:              40,
			InactivityWarn:       gameconfig.InactivityWarnUser * time.Second,
			InactivityDisconnect: gameconfig.InactivityDisconnectUser * time.Second,
		},
		Log: LogSettings{Level: "info"},
		SSH: SSHSettings{
			Host:            "::",
			Port:            "2222",
			HostKeyPath:     "/app/keys/host_key",
			ShutdownGrace:   time.Duration(gameconfig.ShutdownDisplaySeconds * float64(time.Second)),
			ShutdownTimeout: 15 * time.Second,
			Leaderboard:     5,
		},
		Web: WebSettings{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
	}
}

// Flags returns the command-line flags shared by the binaries. Flag names
// are settings keys, so a flag given on the command line overrides its key.
func Flags(name string) *pflag.FlagSet {
	d := Default()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", GetEnv(EnvPrefix+"_CONFIG", ""), "config file (yaml, toml or json)")
	fs.String("log.level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log.file", d.Log.File, "log file for local play")
	fs.Int64("game.seed", 0, "random seed, 0 seeds from the clock")
	fs.Int("game.game_seconds", d.Game.GameSeconds, "length of a game in seconds")
	fs.String("ui.backend", d.UI.Backend, "terminal backend (ansi or tcell)")
	fs.Bool("ui.sound", d.UI.Sound, "beep when hit")
	fs.String("ssh.host", d.SSH.Host, "SSH listen host")
	fs.String("ssh.port", d.SSH.Port, "SSH listen port")
	fs.String("ssh.host_key", d.SSH.HostKeyPath, "SSH host key path")
	fs.String("web.host", d.Web.Host, "web listen host")
	fs.String("web.port", d.Web.Port, "web listen port")
	return fs
}

// Load reads settings: defaults, then the config file at path (if any),
// then CAMPUS_ environment variables, then flags that were set.
func Load(path string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// setDefaults registers every key, so environment variables can override
// keys that appear in no file.
func setDefaults(v *viper.Viper, d Settings) {
	g := d.Game
	v.SetDefault("game.canvas_width", g.CanvasWidth)
	v.SetDefault("game.canvas_height", g.CanvasHeight)
	v.SetDefault("game.tick_rate", g.TickRate)
	v.SetDefault("game.spawn_interval", g.SpawnInterval)
	v.SetDefault("game.countdown_interval", g.CountdownInterval)
	v.SetDefault("game.game_seconds", g.GameSeconds)
	v.SetDefault("game.lives", g.InitialLives)
	v.SetDefault("game.enemy_collision_penalty", g.EnemyCollisionPenalty)
	v.SetDefault("game.enemy_bullet_penalty", g.EnemyBulletPenalty)
	v.SetDefault("game.subjects", g.Subjects)
	v.SetDefault("game.seed", g.Seed)

	v.SetDefault("input.hold", d.Input.Hold)

	v.SetDefault("ui.backend", d.UI.Backend)
	v.SetDefault("ui.sound", d.UI.Sound)
	v.SetDefault("ui.max_cols", d.UI.MaxCols)
	v.SetDefault("ui.max_rows", d.UI.MaxRows)
	v.SetDefault("ui.inactivity_warn", d.UI.InactivityWarn)
	v.SetDefault("ui.inactivity_disconnect", d.UI.InactivityDisconnect)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("ssh.host", d.SSH.Host)
	v.SetDefault("ssh.port", d.SSH.Port)
	v.SetDefault("ssh.host_key", d.SSH.HostKeyPath)
	v.SetDefault("ssh.shutdown_grace", d.SSH.ShutdownGrace)
	v.SetDefault("ssh.shutdown_timeout", d.SSH.ShutdownTimeout)
	v.SetDefault("ssh.leaderboard", d.SSH.Leaderboard)

	v.SetDefault("web.host", d.Web.Host)
	v.SetDefault("web.port", d.Web.Port)
	v.SetDefault("web.display_host", d.Web.DisplayHost)
}

// Validate reports every setting the binaries cannot run with.
func (s Settings) Validate() error {
	errs := []error{s.Game.Validate()}

	if s.Input.Hold <= 0 {
		errs = append(errs, errors.New("input.hold must be positive"))
	}
	if s.UI.Backend != BackendANSI && s.UI.Backend != BackendTcell {
		errs = append(errs, fmt.Errorf("ui.backend must be %q or %q, got %q", BackendANSI, BackendTcell, s.UI.Backend))
	}
	if s.UI.MaxCols < 0 || s.UI.MaxRows < 0 {
		errs = append(errs, errors.New("ui.max_cols and ui.max_rows must not be negative"))
	}
	if s.UI.InactivityWarn < 0 || s.UI.InactivityDisconnect < 0 {
		errs = append(errs, errors.New("ui inactivity timeouts must not be negative"))
	}
	if w, d := s.UI.InactivityWarn, s.UI.InactivityDisconnect; w > 0 && d > 0 && w >= d {
		errs = append(errs, errors.New("ui.inactivity_warn must be shorter than ui.inactivity_disconnect"))
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if s.SSH.Port == "" {
		errs = append(errs, errors.New("ssh.port must be set"))
	}
	if s.SSH.Leaderboard < 0 {
		errs = append(errs, errors.New("ssh.leaderboard must not be negative"))
	}
	if s.Web.Port == "" {
		errs = append(errs, errors.New("web.port must be set"))
	}
	return errors.Join(errs...)
}
