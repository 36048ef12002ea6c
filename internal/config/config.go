// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the settings of the geoindex command from a
// YAML file, a .env file and GEOINDEX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is named.
const DefaultPath = "geoindex.yml"

// Config holds the settings for building and querying an index.
type Config struct {
	// Input is the path of a GeoJSON FeatureCollection file.
	Input string `yaml:"input" validate:"required"`
	// NodeSize is the maximum number of children per tree node.
	NodeSize int `yaml:"node_size" validate:"gte=4"`
	// ChunkSize is the number of features per parallel build task.
	// Zero selects the library default.
	ChunkSize int  `yaml:"chunk_size" validate:"gte=0"`
	Parallel  bool `yaml:"parallel"`
	// Snapshot, if set, is the path the built index is written to.
	Snapshot string `yaml:"snapshot"`
	// Property names the feature property holding the chateau id.
	Property string `yaml:"property" validate:"required"`
}

// Default returns the configuration used for settings which neither
// the file nor the environment provide.
func Default() Config {
	return Config{
		NodeSize: packedrtree.DefaultNodeSize,
		Parallel: true,
		Property: "chateau",
	}
}

// Load reads the .env files named, if they exist, then the YAML file
// at path, then applies GEOINDEX_* overrides from the environment. A
// missing file at DefaultPath is not an error; any other missing file
// is. The result is validated before it is returned.
func Load(path string, envFiles ...string) (Config, error) {
	return load(path, envFiles)
}

// LoadWithoutInput is like Load, but does not require Input to be set.
// It serves runs which restore an index from a snapshot instead of
// building it. Every other setting is still validated.
func LoadWithoutInput(path string, envFiles ...string) (Config, error) {
	return load(path, envFiles, "Input")
}

func load(path string, envFiles []string, except ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
		data, err = nil, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return parse(data, os.LookupEnv, except...)
}

// parse decodes and validates data. Fields named in except are not
// validated.
func parse(data []byte, lookup func(string) (string, bool), except ...string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: invalid YAML: %w", err)
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := validator.New().StructExcept(cfg, except...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("GEOINDEX_INPUT"); ok {
		cfg.Input = v
	}
	if v, ok := lookup("GEOINDEX_SNAPSHOT"); ok {
		cfg.Snapshot = v
	}
	if v, ok := lookup("GEOINDEX_PROPERTY"); ok {
		cfg.Property = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"GEOINDEX_NODE_SIZE", &cfg.NodeSize},
		{"GEOINDEX_CHUNK_SIZE", &cfg.ChunkSize},
	}
	for _, i := range ints {
		if v, ok := lookup(i.key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("config: %s: %w", i.key, err)
			}
			*i.dst = n
		}
	}
	if v, ok := lookup("GEOINDEX_PARALLEL"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: GEOINDEX_PARALLEL: %w", err)
		}
		cfg.Parallel = b
	}
	return nil
}
