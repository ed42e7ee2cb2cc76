package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/lockkeys/internal/config"
	"github.com/dshills/lockkeys/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. LOCKKEYS_LOG_LEVEL.
const EnvPrefix = "LOCKKEYS"

// Build information, set by main.
type Build struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the lockkeys command tree. Each call gets its own
// viper instance.
func NewRootCommand(build Build) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:     "lockkeys",
		Short:   "keyboard lock behaviors on a simulated or real host",
		Version: build.Version,
		Long: `
Drive Caps Lock style behaviors (on, off, hold, word, line) from trigger
keys. The behaviors keep the host's lock indicator in step by sending the
lock key, and end themselves on the configured keys.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default "+defaultConfigPath()+")")
	flags.String("log-level", "", "log level: error, warn, info, verbose, debug, trace")
	flags.Bool("log-development", false, "human readable logs with caller information")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("endpoint", "", "output endpoint: virtual or os")
	flags.Int("host-latency", -1, "virtual host report latency in milliseconds")
	cobra.CheckErr(v.BindPFlags(flags))

	root.AddCommand(
		newSimCommand(v),
		newReplayCommand(v),
		newPresetsCommand(),
		newVersionCommand(build),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(build Build) int {
	root := NewRootCommand(build)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lockkeys.toml"
	}
	return filepath.Join(dir, "lockkeys", "config.toml")
}

// settings is the resolved configuration plus the logger it selects.
type settings struct {
	Config  *config.Resolved
	Logger  logr.Logger
	Source  string
	closeFn func() error
}

func (s *settings) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// configPath returns the config file to read and whether the user named
// it.
func configPath(v *viper.Viper) (string, bool) {
	if path := v.GetString("config"); path != "" {
		return path, true
	}
	return defaultConfigPath(), false
}

// resolveConfig reads the config file and applies flag and environment
// overrides. A missing default file selects the default configuration.
func resolveConfig(v *viper.Viper) (*config.Resolved, string, error) {
	path, explicit := configPath(v)
	f, err := config.NewLoader().Load(path)
	if err != nil {
		return nil, "", err
	}
	source := path
	if f == nil {
		if explicit {
			return nil, "", fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
		}
		f = config.Default()
		source = "defaults"
	}

	if lvl := v.GetString("log-level"); lvl != "" {
		f.Log.Level = lvl
	}
	if v.GetBool("log-development") {
		f.Log.Development = true
	}
	if ep := v.GetString("endpoint"); ep != "" {
		f.Host.Endpoint = ep
	}
	if ms := v.GetInt("host-latency"); ms >= 0 {
		f.Host.LatencyMS = ms
	}

	cfg, err := f.Resolve()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", source, err)
	}
	return cfg, source, nil
}

// loadSettings resolves the configuration and builds the logger it
// selects.
func loadSettings(v *viper.Viper, stderr io.Writer) (*settings, error) {
	cfg, source, err := resolveConfig(v)
	if err != nil {
		return nil, err
	}

	s := &settings{Config: cfg, Source: source}
	out := stderr
	if name := v.GetString("log-file"); name != "" {
		file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		out = file
		s.closeFn = file.Close
	}

	s.Logger, err = logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Development: cfg.LogDevelopment,
		Output:      out,
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
