// Package config provides loading and parsing of arangordf.yaml
// configuration files. A configuration file bundles the ArangoDB
// connection, the optional assignment-replay store, and the
// transformation settings applied by default to every run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ArangoDB-Community/ArangoRDF/arango"
	"github.com/ArangoDB-Community/ArangoRDF/transform"
)

// Config represents an arangordf.yaml configuration file.
type Config struct {
	// Arango is the database connection.
	Arango arango.Config `yaml:"arango"`

	// Replay configures assignment persistence between runs.
	Replay *ReplayConfig `yaml:"replay,omitempty"`

	// Transform holds the default transformation settings.
	Transform *TransformConfig `yaml:"transform,omitempty"`
}

// ReplayConfig configures the Redis-backed assignment store.
type ReplayConfig struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string `yaml:"url"`

	// KeyPrefix namespaces the stored snapshots.
	KeyPrefix string `yaml:"key_prefix,omitempty"`
}

// TransformConfig mirrors the transformation options in yaml form.
type TransformConfig struct {
	Contextualize bool `yaml:"contextualize,omitempty"`

	// ListConversion is one of "repeat-statements", "list-structure",
	// "container-structure", or "serialize-json".
	ListConversion string `yaml:"list_conversion,omitempty"`

	// DictConversion is one of "blank-node-structure" or
	// "serialize-json".
	DictConversion string `yaml:"dict_conversion,omitempty"`

	IncludeCollectionStatements bool `yaml:"include_collection_statements,omitempty"`
	IncludeKeyStatements        bool `yaml:"include_key_statements,omitempty"`
	ReifyEdgeProperties         bool `yaml:"reify_edge_properties,omitempty"`

	FallbackCollection string `yaml:"fallback_collection,omitempty"`
	Namespace          string `yaml:"namespace,omitempty"`
}

// Options converts the yaml settings into transform options. Unset
// fields keep the transform defaults.
func (t *TransformConfig) Options() transform.Options {
	if t == nil {
		return transform.Options{}
	}
	return transform.Options{
		Contextualize:               t.Contextualize,
		ListConversion:              transform.ListConversionMode(t.ListConversion),
		DictConversion:              transform.DictConversionMode(t.DictConversion),
		IncludeCollectionStatements: t.IncludeCollectionStatements,
		IncludeKeyStatements:        t.IncludeKeyStatements,
		ReifyEdgeProperties:         t.ReifyEdgeProperties,
		FallbackCollection:          t.FallbackCollection,
		Namespace:                   t.Namespace,
	}
}

// Validate reports configuration errors a connection attempt would only
// surface later.
func (c *Config) Validate() error {
	if len(c.Arango.Endpoints) == 0 {
		return fmt.Errorf("arango.endpoints is required")
	}
	if c.Arango.Database == "" {
		return fmt.Errorf("arango.database is required")
	}
	if t := c.Transform; t != nil {
		switch transform.ListConversionMode(t.ListConversion) {
		case "", transform.ListRepeatStatements, transform.ListStructure,
			transform.ListContainerStructure, transform.ListSerializeJSON:
		default:
			return fmt.Errorf("unknown list_conversion %q", t.ListConversion)
		}
		switch transform.DictConversionMode(t.DictConversion) {
		case "", transform.DictBlankNodeStructure, transform.DictSerializeJSON:
		default:
			return fmt.Errorf("unknown dict_conversion %q", t.DictConversion)
		}
	}
	return nil
}

// Load reads and parses a configuration file from the given path. If the
// path is a directory, it looks for arangordf.yaml or arangordf.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "arangordf.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "arangordf.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return nil, fmt.Errorf("no arangordf.yaml or arangordf.yml found in %s", path)
			}
			configPath = ymlPath
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return &config, nil
}
