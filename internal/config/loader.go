package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

// Format is a configuration file format
type Format string

// Supported formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.InvalidArgumentf("unsupported config format %q", ext)
	}
}

// Loader reads configuration files
type Loader struct {
	// ExpandEnv enables environment variable expansion
	ExpandEnv bool
	// StrictEnv fails when a referenced variable is unset
	StrictEnv bool
}

// NewLoader returns a loader that expands environment variables
func NewLoader() *Loader {
	return &Loader{ExpandEnv: true}
}

// LoadFile reads and validates the file at path
func (l *Loader) LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- operator supplied path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to open config file %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := l.Load(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	logging.Debug().
		Str("path", path).
		Str("format", string(format)).
		Msg("config loaded")
	return cfg, nil
}

// Load reads configuration from r over the defaults and validates the result.
// Sections absent from the input keep their default values.
func (l *Loader) Load(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	if l.ExpandEnv {
		expander := &envExpander{strict: l.StrictEnv}
		expanded, err := expander.Expand(string(data))
		if err != nil {
			return nil, err
		}
		data = []byte(expanded)
	}

	cfg := Defaults()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.InvalidArgumentf("invalid yaml config: %v", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.InvalidArgumentf("invalid json config: %v", err)
		}
	default:
		return nil, errors.InvalidArgumentf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadString reads configuration from a string
func (l *Loader) LoadString(content string, format Format) (*File, error) {
	return l.Load(strings.NewReader(content), format)
}
