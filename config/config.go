package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nihei9/slrkit/grammar"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no path is given.
const DefaultFileName = "slrkit.toml"

const (
	DefaultOutput = "."
	DefaultTrace  = "Error"
	DefaultDedup  = "ordered"
)

// Config holds the settings shared by all commands. Any field left empty in
// the file keeps its default.
type Config struct {
	// Output is the directory the artifacts are written to.
	Output string `toml:"output"`

	// Trace is the trace level, one of Debug, Info, or Error.
	Trace string `toml:"trace"`

	// Dedup selects how the automaton builder compares kernels, either
	// `ordered` or `set`.
	Dedup string `toml:"dedup"`
}

func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Trace:  DefaultTrace,
		Dedup:  DefaultDedup,
	}
}

// Load reads a TOML configuration file. When path is empty, DefaultFileName
// is read if it exists and the defaults are returned if it doesn't. A path
// given explicitly must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("Cannot read the config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a TOML document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys: %v", strings.Join(keys, ", "))
	}
	c.fillDefaults()

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) fillDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Trace == "" {
		c.Trace = DefaultTrace
	}
	if c.Dedup == "" {
		c.Dedup = DefaultDedup
	}
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Trace) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("invalid trace level: %v; it must be one of Debug, Info, or Error", c.Trace)
	}
	_, err := grammar.ParseDedupMode(c.Dedup)
	return err
}

// DedupMode returns the mode Dedup names. It assumes Validate succeeded.
func (c *Config) DedupMode() grammar.DedupMode {
	mode, _ := grammar.ParseDedupMode(c.Dedup)
	return mode
}
