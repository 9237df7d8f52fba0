package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/flagx"
	"github.com/mitchellh/go-homedir"
)

// HomeEnv overrides the identities directory.
const HomeEnv = "SPXP_HOME"

// Config holds runtime settings for the spxp CLI.
//
// RequestTimeout bounds every HTTP request; zero leaves it to the transport.
type Config struct {
	IdentitiesDir   string
	DefaultIdentity string
	LogLevel        string
	RequestTimeout  time.Duration
}

// LoadDefaults populates c with defaults. The identities directory lives
// under the user's home directory.
func (c *Config) LoadDefaults() error {
	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("locate home directory: %w", err)
	}
	c.IdentitiesDir = filepath.Join(home, ".spxp", "identities")
	c.DefaultIdentity = common.DefaultIdentity
	c.LogLevel = "info"
	c.RequestTimeout = 0
	return nil
}

func (c *Config) applyEnv() error {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		return nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return fmt.Errorf("%s: %w", HomeEnv, err)
	}
	c.IdentitiesDir = expanded
	return nil
}

// LoadConfig builds a Config from defaults, then $SPXP_HOME, then the JSON
// file named by -c/-config, then the global flags. Later sources take
// precedence. The leading global flags are consumed from args; the command
// and its arguments are returned in rest.
func LoadConfig(args []string) (cfg *Config, rest []string, err error) {
	global, rest := flagx.SplitArgs(args, valueFlags, boolFlags)

	cfg = &Config{}
	if err := cfg.LoadDefaults(); err != nil {
		return nil, nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, nil, err
	}
	if err := parseJson(cfg, flagx.JsonConfigFlag(global)); err != nil {
		return nil, nil, err
	}
	if err := parseFlags(cfg, global); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
