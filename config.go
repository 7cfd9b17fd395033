package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	appName       = "inputctl"
	defaultXInput = "xinput"
)

// Settings holds the values read from the config file and INPUTCTL_* environment.
type Settings struct {
	Verbose    bool              `mapstructure:"verbose"`
	Notify     bool              `mapstructure:"notify"`
	XInput     string            `mapstructure:"xinput"`
	RawPattern bool              `mapstructure:"raw_pattern"`
	Aliases    map[string]string `mapstructure:"aliases"`
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// loadSettings reads settings from path, or from the default location when
// path is empty. A missing default file is not an error.
func loadSettings(path string) (Settings, error) {
	v := viper.New()
	v.SetDefault("verbose", false)
	v.SetDefault("notify", false)
	v.SetDefault("xinput", defaultXInput)
	v.SetDefault("raw_pattern", false)
	v.SetDefault("aliases", map[string]string{})
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = configPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// resolveAlias returns the fragment mapped to name, or name itself.
func (s Settings) resolveAlias(name string) string {
	if fragment, ok := s.Aliases[strings.ToLower(name)]; ok {
		return fragment
	}
	return name
}
