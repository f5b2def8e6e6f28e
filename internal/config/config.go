// Package config loads the girdoc.toml project file describing the library
// being documented: metadata for page headers, GIR search paths, output
// settings, and descriptions for the dependencies listing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// LibraryConfig is the [library] section: metadata rendered into page
// headers and the index page.
type LibraryConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Description string `mapstructure:"description"`
	Authors     string `mapstructure:"authors"`
	License     string `mapstructure:"license"`
	WebsiteURL  string `mapstructure:"website_url"`
	BrowseURL   string `mapstructure:"browse_url"`
	LogoURL     string `mapstructure:"logo_url"`
}

// SourceConfig is the [source] section: where to find the GIR file and its
// includes. Paths are relative to the config file's directory.
type SourceConfig struct {
	GirFile     string   `mapstructure:"gir_file"`
	SearchPaths []string `mapstructure:"search_paths"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Dir           string `mapstructure:"dir"`
	CompressIndex bool   `mapstructure:"compress_index"`
}

// DependencyConfig describes one entry of the [dependencies] table, keyed
// by Name-Version include string. In girdoc.toml a dependency may be given
// as a full table or as a bare description string.
type DependencyConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	DocsURL     string `mapstructure:"docs_url"`
}

type Config struct {
	Library      LibraryConfig               `mapstructure:"library"`
	Source       SourceConfig                `mapstructure:"source"`
	Output       OutputConfig                `mapstructure:"output"`
	Dependencies map[string]DependencyConfig `mapstructure:"dependencies"`

	// BaseDir is the directory the config file was read from; relative
	// source and output paths resolve against it.
	BaseDir string `mapstructure:"-"`
}

// Dependency returns the configured entry for an include string, falling
// back to a minimal entry naming the include itself.
func (c *Config) Dependency(include string) DependencyConfig {
	if dep, ok := c.Dependencies[include]; ok {
		if dep.Name == "" {
			dep.Name = include
		}
		return dep
	}
	return DependencyConfig{Name: include}
}

// GirPath returns the GIR file path resolved against the config directory.
func (c *Config) GirPath() string {
	return c.resolve(c.Source.GirFile)
}

// OutputDir returns the output directory resolved against the config
// directory.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output.Dir)
}

// ResolvedSearchPaths returns the search paths resolved against the config
// directory.
func (c *Config) ResolvedSearchPaths() []string {
	out := make([]string, 0, len(c.SearchPaths()))
	for _, p := range c.SearchPaths() {
		out = append(out, c.resolve(p))
	}
	return out
}

// SearchPaths returns the raw configured search paths.
func (c *Config) SearchPaths() []string {
	return c.Source.SearchPaths
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

func initializeViper(v *viper.Viper, path string) error {
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("girdoc")
		v.AddConfigPath(".")
	}

	v.SetDefault("output.dir", "_docs")
	v.SetDefault("output.compress_index", false)

	v.SetEnvPrefix("GIRDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// stringToDependencyHookFunc lets girdoc.toml spell a dependency as a bare
// string, treated as its description.
func stringToDependencyHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(DependencyConfig{}) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return DependencyConfig{Description: data.(string)}, nil
		}
		return data, nil
	}
}

// Load reads girdoc.toml from path, or from the working directory when path
// is empty. A missing file yields the defaults; env variables with the
// GIRDOC_ prefix override either.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := initializeViper(v, path); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToDependencyHookFunc(),
		Result:     &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		config.BaseDir = filepath.Dir(used)
	} else if wd, err := os.Getwd(); err == nil {
		config.BaseDir = wd
	}
	return &config, nil
}
