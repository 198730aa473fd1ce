package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/abenz1267/glance/internal/util"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed config.default.toml
var defaultConfig []byte

const (
	SnifferNative = "native"
	SnifferGio    = "gio"
)

type Config struct {
	Preview   Preview   `koanf:"preview"`
	Text      Text      `koanf:"text"`
	Thumbnail Thumbnail `koanf:"thumbnail"`
	Watch     Watch     `koanf:"watch"`
	Window    Window    `koanf:"window"`
	Scan      Scan      `koanf:"scan"`
	Log       Log       `koanf:"log"`

	// File is the user config that was loaded, if any.
	File string `koanf:"-"`
}

type Preview struct {
	Sniffer      string `koanf:"sniffer"`
	FallbackIcon bool   `koanf:"fallback_icon"`
	ThrottleMS   int    `koanf:"throttle_ms"`
}

type Text struct {
	Monospace bool `koanf:"monospace"`
	Wrap      bool `koanf:"wrap"`
}

type Thumbnail struct {
	Enabled  bool  `koanf:"enabled"`
	Size     int   `koanf:"size"`
	MinBytes int64 `koanf:"min_bytes"`
}

type Watch struct {
	Enabled    bool `koanf:"enabled"`
	DebounceMS int  `koanf:"debounce_ms"`
}

type Window struct {
	Width      int  `koanf:"width"`
	Height     int  `koanf:"height"`
	LayerShell bool `koanf:"layer_shell"`
}

type Scan struct {
	IgnoreGitIgnore bool `koanf:"ignore_gitignore"`
	IncludeHidden   bool `koanf:"include_hidden"`
	Concurrency     int  `koanf:"concurrency"`
}

type Log struct {
	Level string `koanf:"level"`
}

func (p Preview) Throttle() time.Duration {
	return time.Duration(p.ThrottleMS) * time.Millisecond
}

func (w Watch) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// SlogLevel maps the configured level name to a slog.Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", l.Level, err)
	}

	return lvl, nil
}

// Load reads the embedded defaults and overlays the user config. explicit
// takes precedence over the file found in the XDG config dirs.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}

	path := explicit
	if path == "" {
		path = util.ConfigFile()
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}

		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the embedded defaults.
func Default() *Config {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		panic(err)
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		panic(err)
	}

	return cfg
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("config %s: unsupported format", path)
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Preview.Sniffer {
	case SnifferNative, SnifferGio:
	default:
		errs = append(errs, fmt.Errorf("preview.sniffer: unknown sniffer %q", c.Preview.Sniffer))
	}

	if c.Preview.ThrottleMS <= 0 {
		errs = append(errs, errors.New("preview.throttle_ms must be positive"))
	}

	if c.Watch.Enabled && c.Watch.DebounceMS <= 0 {
		errs = append(errs, errors.New("watch.debounce_ms must be positive"))
	}

	if c.Thumbnail.Enabled && c.Thumbnail.Size <= 0 {
		errs = append(errs, errors.New("thumbnail.size must be positive"))
	}

	if c.Scan.Concurrency <= 0 {
		errs = append(errs, errors.New("scan.concurrency must be positive"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
