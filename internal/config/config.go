package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/session"
	"github.com/abhisek/mathcamp/internal/store"
)

// Setting keys as they appear in config.yaml.
const (
	KeyDifficulty   = "difficulty"
	KeyProblemCount = "problem_count"
	KeyDBPath       = "db_path"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyLogFile      = "log.file"

	flagPrefix = "flags."
)

const (
	DefaultDifficulty   = problemgen.DifficultyEasy
	DefaultProblemCount = 10
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"

	envPrefix = "MATHCAMP"
	fileName  = "config.yaml"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the resolved application configuration.
type Config struct {
	Difficulty   problemgen.Difficulty
	ProblemCount int
	DBPath       string
	Log          LogConfig

	// Flags overrides feature flag defaults by name.
	Flags map[string]bool
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Loader reads and writes configuration through a private viper instance.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader returns a loader for path. An empty path means config.yaml in
// DefaultDir.
func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetDefault(KeyDifficulty, string(DefaultDifficulty))
	v.SetDefault(KeyProblemCount, DefaultProblemCount)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// MATHCAMP_DB is the documented name, not MATHCAMP_DB_PATH.
	_ = v.BindEnv(KeyDBPath, envPrefix+"_DB")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	return &Loader{v: v, path: path}
}

// Load reads the config file if one exists and returns the validated
// configuration. A missing file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	d, err := problemgen.ParseDifficulty(l.v.GetString(KeyDifficulty))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", KeyDifficulty, err)
	}
	cfg := &Config{
		Difficulty:   d,
		ProblemCount: l.v.GetInt(KeyProblemCount),
		DBPath:       l.v.GetString(KeyDBPath),
		Log: LogConfig{
			Level:  strings.ToLower(l.v.GetString(KeyLogLevel)),
			Format: strings.ToLower(l.v.GetString(KeyLogFormat)),
			File:   l.v.GetString(KeyLogFile),
		},
		Flags: make(map[string]bool),
	}
	for _, key := range l.v.AllKeys() {
		if name, ok := strings.CutPrefix(key, flagPrefix); ok {
			cfg.Flags[name] = l.v.GetBool(key)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := problemgen.ParseDifficulty(string(c.Difficulty)); err != nil {
		return fmt.Errorf("config %s: %w", KeyDifficulty, err)
	}
	if c.ProblemCount < 1 || c.ProblemCount > session.MaxProblemCount {
		return fmt.Errorf("config %s: %d out of range [1, %d]", KeyProblemCount, c.ProblemCount, session.MaxProblemCount)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("config %s: unknown level %q", KeyLogLevel, c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("config %s: unknown format %q", KeyLogFormat, c.Log.Format)
	}
	return nil
}

// ResolveDBPath picks the database path: the explicit flag value, then
// MATHCAMP_DB or db_path, then the XDG data directory.
func (c *Config) ResolveDBPath(flag string) (string, error) {
	if flag != "" {
		return flag, store.EnsureDir(flag)
	}
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// LogPath returns log.file, or mathcamp.log next to dbPath.
func (c *Config) LogPath(dbPath string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(dbPath), "mathcamp.log")
}

// Set validates value and stores it under key. Flag keys take the form
// "flags.<name>".
func (l *Loader) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch {
	case key == KeyDifficulty:
		d, err := problemgen.ParseDifficulty(value)
		if err != nil {
			return err
		}
		l.v.Set(key, string(d))
	case key == KeyProblemCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		if n < 1 || n > session.MaxProblemCount {
			return fmt.Errorf("%s %d out of range [1, %d]", key, n, session.MaxProblemCount)
		}
		l.v.Set(key, n)
	case key == KeyLogLevel:
		if !slices.Contains(logLevels, strings.ToLower(value)) {
			return fmt.Errorf("unknown log level %q", value)
		}
		l.v.Set(key, strings.ToLower(value))
	case key == KeyLogFormat:
		if value != "console" && value != "json" {
			return fmt.Errorf("unknown log format %q", value)
		}
		l.v.Set(key, value)
	case key == KeyDBPath, key == KeyLogFile:
		l.v.Set(key, value)
	case strings.HasPrefix(key, flagPrefix):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		l.v.Set(key, b)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Save writes every setting to the config file, creating its directory.
func (l *Loader) Save() error {
	path, err := l.Path()
	if err != nil {
		return err
	}
	if err := store.EnsureDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := l.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the file Save writes to.
func (l *Loader) Path() (string, error) {
	if l.path != "" {
		return l.path, nil
	}
	if used := l.v.ConfigFileUsed(); used != "" {
		return used, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Settings returns every key and value, sorted by key.
func (l *Loader) Settings() [][2]string {
	keys := l.v.AllKeys()
	slices.Sort(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, fmt.Sprint(l.v.Get(k))})
	}
	return out
}

// DefaultDir is $XDG_CONFIG_HOME/mathcamp, or ~/.config/mathcamp.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mathcamp"), nil
}

// LoadEnv loads variables from dotenv files without overriding the
// environment. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
