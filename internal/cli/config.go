package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/storefront/internal/logger"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeySeed        = "seed"
	cfgKeyTenants     = "tenants"
	cfgKeyRedisPrefix = "redis.prefix"
	cfgKeyLog         = "log"
	cfgKeyLogLevel    = "log.level"
	cfgKeyLogFormat   = "log.format"
	cfgKeyLogOutput   = "log.output"

	defaultBackend = types.BackendFile
)

// configFile is the layout of config.yaml.
type configFile struct {
	Backend string            `yaml:"backend"`
	DataDir string            `yaml:"data_dir,omitempty"`
	Seed    string            `yaml:"seed"`
	Tenants []types.Tenant    `yaml:"tenants"`
	Redis   types.RedisConfig `yaml:"redis,omitempty"`
	Log     logFile           `yaml:"log"`
}

type logFile struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfigFile(dataDir string) configFile {
	def := logger.DefaultConfig()
	return configFile{
		Backend: defaultBackend,
		DataDir: dataDir,
		Seed:    types.SeedDemo,
		Tenants: types.DefaultTenants,
		Log:     logFile{Level: def.Level, Format: def.Format},
	}
}

// loadConfig reads config.yaml from configDir. A missing directory or file
// yields the defaults; nothing is written here.
func loadConfig(configDir string) (types.Config, logger.Config, error) {
	def := logger.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeySeed, types.SeedDemo)
	v.SetDefault(cfgKeyRedisPrefix, "storefront:")
	v.SetDefault(cfgKeyLogLevel, def.Level)
	v.SetDefault(cfgKeyLogFormat, def.Format)
	v.SetDefault(cfgKeyLogOutput, def.Output)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, logger.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, logger.Config{}, fmt.Errorf("decode config: %w", err)
	}
	var logCfg logger.Config
	if err := v.UnmarshalKey(cfgKeyLog, &logCfg); err != nil {
		return types.Config{}, logger.Config{}, fmt.Errorf("decode log config: %w", err)
	}
	return cfg, logCfg, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone; the boolean reports whether a file was written.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultConfigFile(dataDir))
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# storefront configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
