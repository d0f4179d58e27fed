package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const configFileName = "config"

// Config holds runtime configuration, populated from
// <config dir>/config.yaml, CHECKLIST_* env vars and CLI flags.
type Config struct {
	Store    StoreConfig `mapstructure:"store"`
	Drag     DragConfig  `mapstructure:"drag"`
	List     ListConfig  `mapstructure:"list"`
	Settings ListConfig  `mapstructure:"settings"`
	Save     SaveConfig  `mapstructure:"save"`
	Log      LogConfig   `mapstructure:"log"`
}

type StoreConfig struct {
	Dir     string `mapstructure:"dir"`
	Backend string `mapstructure:"backend"`
}

type DragConfig struct {
	ActivationDelay time.Duration `mapstructure:"activation_delay"`
}

type ListConfig struct {
	RowHeight int `mapstructure:"row_height"`
}

type SaveConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ConfigDir is ~/.checklist, or $CHECKLIST_CONFIG_DIR when set.
func ConfigDir() (string, error) {
	if d := strings.TrimSpace(os.Getenv("CHECKLIST_CONFIG_DIR")); d != "" {
		return homedir.Expand(d)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".checklist"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("store.dir", dir)
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("drag.activation_delay", "50ms")
	v.SetDefault("list.row_height", 2)
	v.SetDefault("settings.row_height", 1)
	v.SetDefault("save.debounce", "200ms")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads configuration into v (flags may already be bound to it)
// and applies defaults for anything left unset. A missing config file is not
// an error.
func LoadConfig(v *viper.Viper) (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	setDefaults(v, dir)

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("CHECKLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store.Dir, err = homedir.Expand(strings.TrimSpace(cfg.Store.Dir))
	if err != nil {
		return Config{}, err
	}
	if cfg.Drag.ActivationDelay <= 0 {
		cfg.Drag.ActivationDelay = 50 * time.Millisecond
	}
	if cfg.List.RowHeight <= 0 {
		cfg.List.RowHeight = 2
	}
	if cfg.Settings.RowHeight <= 0 {
		cfg.Settings.RowHeight = 1
	}
	if cfg.Save.Debounce < 0 {
		cfg.Save.Debounce = 0
	}
	return cfg, nil
}
