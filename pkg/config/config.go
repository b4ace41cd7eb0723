// Package config loads the configuration file of zi.
//
// The file is written in TOML:
//
//	max_depth = 10000
//	db = "/path/to/history.db"
//
//	[bridge]
//	driver = "native" # or "sqlite3", "mysql"
//	dsn = ""
//	timeout = "2s"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"src.zlang.sh/pkg/bridge"
	"src.zlang.sh/pkg/bridge/sqlbridge"
	"src.zlang.sh/pkg/env"
	"src.zlang.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[config] ")

// Native is the driver name of the pure Go bridge.
const Native = "native"

// Config is the content of the configuration file.
type Config struct {
	// MaxDepth is the nesting limit of evaluation; 0 selects the default.
	MaxDepth int `toml:"max_depth"`
	// DB is the path to the history database. History is not recorded if it
	// is empty.
	DB     string `toml:"db"`
	Bridge Bridge `toml:"bridge"`
}

// Bridge configures where primitive operations are evaluated.
type Bridge struct {
	Driver  string   `toml:"driver"`
	DSN     string   `toml:"dsn"`
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string like "2s" in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{Bridge: Bridge{Driver: Native}}
}

// Load reads the configuration from the file at path. Keys the file sets
// override those of Default; unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("config %s: max_depth must be non-negative, got %d", path, cfg.MaxDepth)
	}
	logger.Println("loaded config from", path)
	return cfg, nil
}

// Find returns the path of the configuration file: the value of $ZI_CONFIG if
// set, otherwise zi/config.toml in the user config directory if that file
// exists. It returns "" when neither applies.
func Find() string {
	if path := os.Getenv(env.ZI_CONFIG); path != "" {
		return path
	}
	dir := os.Getenv(env.XDG_CONFIG_HOME)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, "zi", "config.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// LoadDefault loads the configuration from path, or from the result of Find
// if path is empty. It returns Default() if there is no file to load.
func LoadDefault(path string) (*Config, error) {
	if path == "" {
		path = Find()
		if path == "" {
			return Default(), nil
		}
	}
	return Load(path)
}

// Open returns the operations of the configured bridge, and a function to
// release it.
func (b Bridge) Open() (bridge.Table, func() error, error) {
	switch b.Driver {
	case "", Native:
		return bridge.Native(), func() error { return nil }, nil
	case sqlbridge.SQLite, sqlbridge.MySQL:
		sb, err := sqlbridge.Open(sqlbridge.Config{
			Driver: b.Driver, DSN: b.DSN, Timeout: b.Timeout.Duration})
		if err != nil {
			return nil, nil, err
		}
		return sb.Table(), sb.Close, nil
	}
	return nil, nil, errors.New("unknown bridge driver " + b.Driver)
}
