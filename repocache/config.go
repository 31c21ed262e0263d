package repocache

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utilitywarehouse/git-repo-cache/repository"
)

const (
	defaultMaxEntries = 100

	// idle TTLs shorter than this churn the cache faster than opens can
	// be amortised
	minAllowedIdleTTL = time.Second
)

// Config is the configuration of the repository pool, read once at
// construction.
type Config struct {
	// MaxEntries is the maximum number of repository contexts kept in
	// the pool. The limit is advisory: when every resident entry is in
	// use a new entry is still admitted and eviction is retried on a
	// later Get. 0 applies the default.
	MaxEntries int `yaml:"max_entries"`

	// SizeBudget is the maximum aggregate on-disk size in bytes of all
	// cached repositories. 0 disables the size limit.
	SizeBudget int64 `yaml:"size_budget"`

	// IdleTTL enables background eviction of unreferenced entries which
	// have not been used for the given duration. 0 disables the sweep
	// and eviction stays purely admission driven.
	IdleTTL time.Duration `yaml:"idle_ttl"`

	// Repository holds backend tunables forwarded as is on every open.
	Repository repository.Config `yaml:"repository"`
}

// ValidateAndApplyDefaults will verify config values and apply defaults
// for the ones not set
func (c *Config) ValidateAndApplyDefaults() error {
	if c.MaxEntries == 0 {
		c.MaxEntries = defaultMaxEntries
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must be positive, got %d", c.MaxEntries)
	}

	if c.SizeBudget < 0 {
		return fmt.Errorf("size_budget cannot be negative, got %d", c.SizeBudget)
	}

	if c.IdleTTL != 0 && c.IdleTTL < minAllowedIdleTTL {
		return fmt.Errorf("provided idle_ttl is too short (%s), must be > %s", c.IdleTTL, minAllowedIdleTTL)
	}

	return c.Repository.Validate()
}

// Parse reads pool configuration from raw yaml. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	var conf Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil {
		return Config{}, fmt.Errorf("unable to parse pool config err:%w", err)
	}

	return conf, nil
}
