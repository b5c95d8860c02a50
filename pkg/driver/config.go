package driver

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"

	"github.com/poojapathak0/vyra/pkg/interpreter"
)

// Config holds the run settings that can come from a config file. CLI flags
// are applied on top.
type Config struct {
	ExecMode      string `yaml:"exec_mode"`
	MaxIterations int    `yaml:"max_iterations"`
	MaxCallDepth  int    `yaml:"max_call_depth"`
	Verbosity     int    `yaml:"verbosity"`
	RandomSeed    int64  `yaml:"random_seed"`
}

// DefaultConfig mirrors the interpreter defaults. Verbosity 3 is info.
var DefaultConfig = Config{
	ExecMode:      string(interpreter.ExecGraph),
	MaxIterations: interpreter.DefaultMaxIterations,
	MaxCallDepth:  interpreter.DefaultMaxCallDepth,
	Verbosity:     3,
}

// TOML keys are the Go field names.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfig overlays the file at path onto cfg. The format follows the file
// extension: .toml, or .yaml/.yml.
func LoadConfig(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
		// Add file name to errors that have a line number.
		if _, ok := err.(*toml.LineError); ok {
			err = errors.New(path + ", " + err.Error())
		}
		return err
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("config: unsupported file type %q (expected .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// WriteTOML renders cfg in the format LoadConfig reads.
func (c Config) WriteTOML() ([]byte, error) {
	return tomlSettings.Marshal(&c)
}

// Options turns the config into interpreter options. Output, input and the
// logger are left for the caller.
func (c Config) Options() (interpreter.Options, error) {
	mode, err := interpreter.ParseExecMode(c.ExecMode)
	if err != nil {
		return interpreter.Options{}, err
	}
	if c.MaxIterations < 0 || c.MaxCallDepth < 0 {
		return interpreter.Options{}, fmt.Errorf("config: limits must not be negative")
	}
	return interpreter.Options{
		Mode:          mode,
		MaxIterations: c.MaxIterations,
		MaxCallDepth:  c.MaxCallDepth,
		RandomSeed:    c.RandomSeed,
	}, nil
}
