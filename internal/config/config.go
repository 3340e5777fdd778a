// Package config loads the dungeon service configuration from YAML or JSON
// files with environment variable expansion.
package config

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/runs"
)

const (
	defaultPort            = 50051
	defaultShutdownTimeout = 30 * time.Second
)

// Duration is a time.Duration written as text, e.g. "90s" or "2h"
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Server configures the gRPC listener
type Server struct {
	Port            int      `yaml:"port" json:"port"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// Redis configures run storage. An empty address keeps runs in memory.
type Redis struct {
	Address  string   `yaml:"address" json:"address"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
	PoolSize int      `yaml:"pool_size" json:"pool_size"`
	UseTLS   bool     `yaml:"use_tls" json:"use_tls"`
}

// File is the full service configuration
type File struct {
	Server  Server              `yaml:"server" json:"server"`
	Redis   Redis               `yaml:"redis" json:"redis"`
	Logging logging.Config      `yaml:"logging" json:"logging"`
	Dungeon *dungeon.Config     `yaml:"dungeon" json:"dungeon"`
	Layout  dungeon.Layout      `yaml:"layout" json:"layout"`
	Spawns  []dungeon.SpawnRule `yaml:"spawns" json:"spawns"`
}

// DefaultSpawns are the spawn rules used when a file names none
func DefaultSpawns() []dungeon.SpawnRule {
	return []dungeon.SpawnRule{
		{Kind: "slime", Min: 2, Max: 4},
		{Kind: "skeleton", Min: 1, Max: 3},
		{Kind: "bat", Min: 1, Max: 2},
	}
}

// Defaults returns a configuration that runs without any file
func Defaults() *File {
	return &File{
		Server: Server{
			Port:            defaultPort,
			ShutdownTimeout: Duration(defaultShutdownTimeout),
		},
		Redis: Redis{
			TTL: Duration(runs.DefaultTTL),
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
		Dungeon: dungeon.DefaultConfig(),
		Layout:  dungeon.DefaultLayout(),
		Spawns:  DefaultSpawns(),
	}
}

// Validate checks every section
func (f *File) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", f.Server.Port, 1, 65535, vb)
	if f.Server.ShutdownTimeout < 0 {
		vb.Field("server.shutdown_timeout", "must not be negative")
	}
	if f.Redis.TTL <= 0 {
		vb.Field("redis.ttl", "must be positive")
	}
	if f.Redis.PoolSize < 0 {
		vb.Field("redis.pool_size", "must not be negative")
	}
	errors.ValidateEnum("logging.level", f.Logging.Level, logging.Levels, vb)
	errors.ValidateEnum("logging.format", f.Logging.Format, logging.Formats, vb)
	if f.Dungeon == nil {
		vb.RequiredField("dungeon")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if err := f.Dungeon.Validate(); err != nil {
		return errors.Wrap(err, "invalid dungeon section")
	}
	if err := f.Layout.Validate(); err != nil {
		return errors.Wrap(err, "invalid layout section")
	}
	if err := dungeon.ValidateSpawnRules(f.Spawns); err != nil {
		return errors.Wrap(err, "invalid spawns section")
	}
	return nil
}
