package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultProfile is used when no profile is configured.
	DefaultProfile = "default"
	// DefaultTick is the focus timer interval.
	DefaultTick = time.Second
)

// Config tells Open where and how to persist.
type Config interface {
	BasePath() string
	Profile() string
	Backend() string
}

// LoadConfig reads .cmdcenter.yaml and CMDCENTER_* environment overrides.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.cmdcenter.db")
	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("debounce", "0s")
	v.SetDefault("tick", DefaultTick.String())
	v.SetConfigName(".cmdcenter") // .yaml is implicit
	v.SetEnvPrefix("CMDCENTER")
	v.AutomaticEnv()

	if override := os.Getenv("CMDCENTER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := &FileConfig{
		Path:          path,
		ProfileName:   v.GetString("profile"),
		BackendName:   v.GetString("backend"),
		DebounceDelay: v.GetDuration("debounce"),
		TickInterval:  v.GetDuration("tick"),
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTick
	}
	if cfg.DebounceDelay < 0 {
		cfg.DebounceDelay = 0
	}
	return cfg, nil
}

// FileConfig is the resolved configuration.
type FileConfig struct {
	Path          string        `json:"path"`
	ProfileName   string        `json:"profile"`
	BackendName   string        `json:"backend"`
	DebounceDelay time.Duration `json:"debounce"`
	TickInterval  time.Duration `json:"tick"`
}

func (f *FileConfig) BasePath() string { return f.Path }
func (f *FileConfig) Profile() string  { return f.ProfileName }
func (f *FileConfig) Backend() string  { return f.BackendName }
