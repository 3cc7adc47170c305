package types

import "errors"

// Config holds backend selection and parameters for opening a session.
type Config struct {
	Backend string      `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir string      `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	Seed    string      `json:"seed" yaml:"seed" mapstructure:"seed"`
	Tenants []Tenant    `json:"tenants,omitempty" yaml:"tenants,omitempty" mapstructure:"tenants"`
	Redis   RedisConfig `json:"redis" yaml:"redis,omitempty" mapstructure:"redis"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr,omitempty" mapstructure:"addr"`
	Password string `json:"password" yaml:"password,omitempty" mapstructure:"password"`
	DB       int    `json:"db" yaml:"db,omitempty" mapstructure:"db"`
	Prefix   string `json:"prefix" yaml:"prefix,omitempty" mapstructure:"prefix"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Seed modes. SeedDemo loads the sample dataset when nothing has been saved
// yet; SeedEmpty starts every tenant with empty collections.
const (
	SeedDemo  = "demo"
	SeedEmpty = "empty"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrSeedUnknown    = errors.New("unknown seed mode")
	ErrRedisAddrEmpty = errors.New("redis backend requires an address")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendRedis:  true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty Seed means SeedDemo.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.Seed {
	case "", SeedDemo, SeedEmpty:
	default:
		return ErrSeedUnknown
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		return ErrRedisAddrEmpty
	}
	return nil
}
