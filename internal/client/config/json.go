package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/spxp-cli/internal/timex"
	"github.com/mitchellh/go-homedir"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field unchanged.
type JsonConfig struct {
	IdentitiesDir   string          `json:"identities_dir"`
	DefaultIdentity string          `json:"default_identity"`
	LogLevel        string          `json:"log_level"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values from the JSON file at path. An empty
// path loads nothing.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.IdentitiesDir != "" {
		if cfg.IdentitiesDir, err = homedir.Expand(jc.IdentitiesDir); err != nil {
			return fmt.Errorf("identities_dir: %w", err)
		}
	}
	if jc.DefaultIdentity != "" {
		cfg.DefaultIdentity = jc.DefaultIdentity
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		if jc.RequestTimeout.Duration < 0 {
			return fmt.Errorf("request_timeout: negative duration %s", jc.RequestTimeout)
		}
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
