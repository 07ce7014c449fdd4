package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/redjax/hwsum/internal/utils/path"
)

// EnvPrefix is stripped from environment variables; HWSUM_OUTPUT_FORMAT
// becomes output.format.
const EnvPrefix = "HWSUM_"

// Output formats accepted by output.format.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

type Config struct {
	Output  OutputConfig  `koanf:"output"`
	Collect CollectConfig `koanf:"collect"`
	Log     LogConfig     `koanf:"log"`
	Spinner bool          `koanf:"spinner"`
}

type OutputConfig struct {
	Format string `koanf:"format"`
	Color  bool   `koanf:"color"`
}

type CollectConfig struct {
	// Partial reports "unknown" for a kind that failed instead of aborting.
	Partial bool `koanf:"partial"`
	// Timeout bounds each external command. Zero waits forever.
	Timeout time.Duration `koanf:"timeout"`
	Retries int           `koanf:"retries"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// RegisterFlags adds the configuration flags to a command's flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("format", FormatText, "Output format: text, json or table")
	fs.Bool("color", false, "Color the report labels")
	fs.Bool("partial", false, "Report 'unknown' for a component that fails instead of aborting")
	fs.Duration("timeout", 0, "Timeout for each hardware query command (0 = none)")
	fs.Int("retries", 2, "Extra attempts when a query command fails to start")
	fs.String("log-level", "warn", "Log level: debug, info, warn or error")
	fs.Bool("no-spinner", false, "Disable the progress spinner")
}

// flagKeys maps command-line flag names to config keys. Flags not listed
// here are not configuration.
var flagKeys = map[string]string{
	"format":    "output.format",
	"color":     "output.color",
	"partial":   "collect.partial",
	"timeout":   "collect.timeout",
	"retries":   "collect.retries",
	"log-level": "log.level",
}

// LoadConfig merges, lowest precedence first: flag defaults, the config
// file, HWSUM_* environment variables, and flags set on the command line.
func LoadConfig(flagSet *pflag.FlagSet, configFile string) (*Config, error) {
	k := koanf.New(".")

	// Load from config file if provided
	if configFile != "" {
		configFile, err := path.ExpandPath(configFile)
		if err != nil {
			return nil, err
		}
		parser, err := parserForFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("unsupported config file format: %w", err)
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Load from environment variables (prefix "HWSUM_")
	// This will convert HWSUM_FOO_BAR to foo.bar
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	// Load from command-line flags (highest precedence). Unchanged flags
	// only fill keys nothing else has set.
	if flagSet != nil {
		if err := k.Load(posflag.ProviderWithFlag(flagSet, ".", k, flagToKey(flagSet)), nil); err != nil {
			return nil, fmt.Errorf("error loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func flagToKey(fs *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		switch f.Name {
		case "debug":
			// --debug only counts when given; it must not mask log.level.
			if !f.Changed {
				return "", nil
			}
			if v, _ := fs.GetBool("debug"); v {
				return "log.level", "debug"
			}
			return "", nil
		case "log-level":
			if d, _ := fs.GetBool("debug"); d && !f.Changed {
				return "", nil
			}
		case "no-spinner":
			v, _ := fs.GetBool("no-spinner")
			return "spinner", !v
		}

		if key, ok := flagKeys[f.Name]; ok {
			return key, posflag.FlagVal(fs, f)
		}
		return "", nil
	}
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("invalid output.format %q: want text, json or table", c.Output.Format)
	}
	if c.Collect.Retries < 0 {
		return fmt.Errorf("invalid collect.retries %d: must not be negative", c.Collect.Retries)
	}
	if c.Collect.Timeout < 0 {
		return fmt.Errorf("invalid collect.timeout %s: must not be negative", c.Collect.Timeout)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

func parserForFile(filename string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".jsonc":
		return jsoncParser{json.Parser()}, nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %s", ext)
	}
}

// jsoncParser strips comments and trailing commas before handing the
// document to the JSON parser.
type jsoncParser struct {
	json *json.JSON
}

func (p jsoncParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	return p.json.Unmarshal(jsonc.ToJSON(b))
}

func (p jsoncParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return p.json.Marshal(o)
}
