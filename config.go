package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Snapshot backends names.
const (
	SnapshotBackendFile  = "file"
	SnapshotBackendBolt  = "bolt"
	SnapshotBackendRedis = "redis"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string         `yaml:"git_commit" envconfig:"ADS_GIT_COMMIT"`
	GitTag             string         `yaml:"git_tag" envconfig:"ADS_GIT_TAG"`
	BuildTime          string         `yaml:"build_time" envconfig:"ADS_BUILD_TIME"`
	IsProduction       bool           `yaml:"is_production" envconfig:"ADS_IS_PRODUCTION"`
	LogLevel           zapcore.Level  `yaml:"log_level" envconfig:"ADS_LOG_LEVEL"`
	LogFolder          string         `yaml:"log_folder" envconfig:"ADS_LOG_FOLDER"`
	LogMaxSize         int            `yaml:"log_max_size" envconfig:"ADS_LOG_MAX_SIZE"` // in megabytes
	ProfilerEnable     bool           `yaml:"profiler_enable" envconfig:"ADS_PROFILER_ENABLE"`
	OpsEndpointsEnable bool           `yaml:"ops_endpoints_enable" envconfig:"ADS_OPS_ENDPOINTS_ENABLE"`
	Server             ServerConfig   `yaml:"server"`
	Catalog            CatalogConfig  `yaml:"catalog"`
	Snapshot           SnapshotConfig `yaml:"snapshot"`
	Redis              RedisConfig    `yaml:"redis"`
	BoltDB             BoltDBConfig   `yaml:"boltdb"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"ADS_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"ADS_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"ADS_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"ADS_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"ADS_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"ADS_SERVER_SHUTDOWN_TIMEOUT"`
}

type CatalogConfig struct {
	IDMaxAttempts int `yaml:"id_max_attempts" envconfig:"ADS_CATALOG_ID_MAX_ATTEMPTS"`
}

type SnapshotConfig struct {
	Enable   bool          `yaml:"enable" envconfig:"ADS_SNAPSHOT_ENABLE"`
	Backend  string        `yaml:"backend" envconfig:"ADS_SNAPSHOT_BACKEND"`
	FilePath string        `yaml:"filepath" envconfig:"ADS_SNAPSHOT_FILE_PATH"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"ADS_SNAPSHOT_TIMEOUT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"ADS_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"ADS_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"ADS_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"ADS_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"ADS_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"ADS_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"ADS_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"ADS_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"ADS_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"ADS_REDIS_DATABASE_INDEX"`
	HashName      string        `yaml:"hash_name" envconfig:"ADS_REDIS_HASH_NAME"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"ADS_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"ADS_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"ADS_BOLTDB_BUCKET_NAME"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	setDefaults(config)

	switch config.Snapshot.Backend {
	case SnapshotBackendFile, SnapshotBackendBolt:
	case SnapshotBackendRedis:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
	default:
		return fmt.Errorf("unknown snapshot backend %q", config.Snapshot.Backend)
	}

	return nil
}

func setDefaults(config *Config) {
	if config.LogFolder == "" {
		config.LogFolder = "./logs"
	}
	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 50
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 10 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 30 * time.Second
	}
	if config.Catalog.IDMaxAttempts <= 0 {
		config.Catalog.IDMaxAttempts = DefaultIDMaxAttempts
	}
	if config.Snapshot.Backend == "" {
		config.Snapshot.Backend = SnapshotBackendFile
	}
	if config.Snapshot.FilePath == "" {
		config.Snapshot.FilePath = "./adverts.json"
	}
	if config.Snapshot.Timeout == 0 {
		config.Snapshot.Timeout = 15 * time.Second
	}
	if config.BoltDB.FilePath == "" {
		config.BoltDB.FilePath = "./adverts.db"
	}
	if config.BoltDB.Timeout == 0 {
		config.BoltDB.Timeout = 5 * time.Second
	}
	if config.BoltDB.BucketName == "" {
		config.BoltDB.BucketName = "adverts"
	}
	if config.Redis.HashName == "" {
		config.Redis.HashName = HAdverts
	}
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration. The env file is optional.
	err = godotenv.Load("./config.env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `ADS`.
	err = LoadConfigEnvs("ADS", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
