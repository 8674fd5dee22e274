// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads policy-extract settings from defaults, an optional
// YAML file and POLICY_EXTRACT_* environment variables, in increasing order
// of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/pdiddy/policy-extract/pkg/types"
)

const (
	// Name is the config file base name searched for when no file is given.
	Name      = "policy-extract"
	envPrefix = "POLICY_EXTRACT"

	defaultMaxUploadBytes = 32 << 20
)

// ErrInvalid marks configuration that loaded but cannot be used.
var ErrInvalid = eris.New("config: invalid")

// Load reads configuration. When file is empty it looks for
// policy-extract.yaml in the working directory and ~/.config/policy-extract;
// a missing file is not an error. An explicit file must exist.
func Load(file string) (*types.Config, error) {
	v := viper.New()

	// Config file
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	// Environment
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional unless named)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *types.Config {
	v := viper.New()
	setDefaults(v)
	var cfg types.Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("source.backend", string(types.BackendPdftotext))
	v.SetDefault("source.pdftotext_path", "pdftotext")
	v.SetDefault("extract.concurrency", 4)
	v.SetDefault("extract.format", string(types.OutputJSON))
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// Validate checks values that the rest of the program assumes are sane.
func Validate(cfg *types.Config) error {
	switch cfg.Source.Backend {
	case types.BackendPdftotext, types.BackendNative:
	default:
		return eris.Wrapf(ErrInvalid, "config: source.backend %q", cfg.Source.Backend)
	}
	switch cfg.Extract.Format {
	case types.OutputJSON, types.OutputYAML:
	default:
		return eris.Wrapf(ErrInvalid, "config: extract.format %q", cfg.Extract.Format)
	}
	if cfg.Extract.Concurrency < 1 {
		return eris.Wrapf(ErrInvalid, "config: extract.concurrency %d", cfg.Extract.Concurrency)
	}
	if cfg.Server.MaxUploadBytes < 1 {
		return eris.Wrapf(ErrInvalid, "config: server.max_upload_bytes %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.UploadDir == "" {
		return eris.Wrap(ErrInvalid, "config: server.upload_dir is empty")
	}
	return nil
}
