package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/keshon/surf/internal/util"
)

// IsDev enables developer output such as argument dumps.
var IsDev = os.Getenv("SURF_DEV") != ""

const (
	ConfigFile  = ".surf.json"
	IgnoreFile  = ".surfignore"
	GitDir      = ".git"
	EnvLogLevel = "SURF_LOG_LEVEL"
)

const (
	DefaultContextLines = 3
	DefaultLogLevel     = "warn"
)

// DefaultIgnoredFiles are never part of a working tree snapshot.
var DefaultIgnoredFiles = []string{GitDir, ConfigFile}

// DefaultHiddenFiles are part of snapshots but left out of listings.
var DefaultHiddenFiles = []string{GitDir, ".gitignore", ".gitattributes", ".gitmodules", IgnoreFile}

// Config is the project configuration stored in .surf.json.
type Config struct {
	ContextLines    int      `json:"context_lines"`
	Ignore          []string `json:"ignore,omitempty"`
	Hidden          []string `json:"hidden,omitempty"`
	LogLevel        string   `json:"log_level,omitempty"`
	RenameDetection *bool    `json:"rename_detection,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	renames := true
	return Config{
		ContextLines:    DefaultContextLines,
		Ignore:          append([]string(nil), DefaultIgnoredFiles...),
		Hidden:          append([]string(nil), DefaultHiddenFiles...),
		LogLevel:        DefaultLogLevel,
		RenameDetection: &renames,
	}
}

// Load reads .surf.json from the root of fsys. A missing file yields the
// defaults, and fields left out of the file keep their default values.
func Load(fsys billy.Filesystem) (Config, error) {
	cfg := Default()
	var file Config
	if err := util.ReadJSON(fsys, ConfigFile, &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	if file.ContextLines > 0 {
		cfg.ContextLines = file.ContextLines
	}
	if len(file.Ignore) > 0 {
		cfg.Ignore = file.Ignore
	}
	if len(file.Hidden) > 0 {
		cfg.Hidden = file.Hidden
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.RenameDetection != nil {
		cfg.RenameDetection = file.RenameDetection
	}
	return cfg, nil
}

// Save writes cfg to .surf.json at the root of fsys.
func Save(fsys billy.Filesystem, cfg Config) error {
	return util.WriteJSON(fsys, ConfigFile, cfg)
}

// Renames reports whether rename detection is enabled.
func (c Config) Renames() bool {
	return c.RenameDetection == nil || *c.RenameDetection
}

// ResolvedLogLevel returns the log level, letting SURF_LOG_LEVEL win.
func (c Config) ResolvedLogLevel() string {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return lvl
	}
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}
