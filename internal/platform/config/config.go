// Package config loads the platform configuration document: a YAML or JSON
// object of named settings sets, e.g.
//
//	{
//	  "apiService": {"apiUrl": "https://idv.example.com/graphql", "region": "us-east-1"},
//	  "identityVerificationService": {},
//	  "cache": {"backend": "redis", "ttl": "5m"},
//	  "redis": {"url": "redis://localhost:6379/0"},
//	  "log": {"level": "info"}
//	}
//
// Sets are bound lazily so that a missing set fails only the component that needs it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	dErrors "secureid/pkg/domain-errors"
	"secureid/pkg/validation"
)

// Set names.
const (
	SetAPIService                  = "apiService"
	SetIdentityVerificationService = "identityVerificationService"
	SetCache                       = "cache"
	SetRedis                       = "redis"
	SetLog                         = "log"
)

// DefaultPath is read when SECUREID_CONFIG is unset.
const DefaultPath = "sudoplatformconfig.json"

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

var DefaultCacheTTL = 5 * time.Minute

// APIService locates the GraphQL endpoint.
type APIService struct {
	APIURL string `yaml:"apiUrl" validate:"required,url"`
	Region string `yaml:"region"`
}

// IdentityVerificationService carries no settings; its presence enables the client.
type IdentityVerificationService struct{}

// Cache selects where query responses are kept for cache-only reads.
type Cache struct {
	Backend string        `yaml:"backend" validate:"omitempty,oneof=memory redis"`
	TTL     time.Duration `yaml:"ttl"`
	Prefix  string        `yaml:"prefix"`
}

// RedisConfig configures the Redis connection pool.
type RedisConfig struct {
	URL          string        `yaml:"url" validate:"omitempty,url"`
	PoolSize     int           `yaml:"poolSize" validate:"omitempty,min=1"`
	MinIdleConns int           `yaml:"minIdleConns" validate:"omitempty,min=0"`
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Config is a parsed configuration document.
type Config struct {
	sets map[string]yaml.Node

	// Environment overrides, applied when the matching set is bound.
	apiURL   string
	logLevel string
	redisURL string
}

// Parse reads a YAML or JSON configuration document.
func Parse(data []byte) (*Config, error) {
	sets := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid configuration document: %v", err))
	}
	return &Config{sets: sets}, nil
}

// Load parses the configuration document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	return Parse(data)
}

// FromEnv loads the document named by SECUREID_CONFIG and applies the
// SECUREID_API_URL, SECUREID_LOG_LEVEL and SECUREID_REDIS_URL overrides.
func FromEnv() (*Config, error) {
	path := strings.TrimSpace(os.Getenv("SECUREID_CONFIG"))
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

func (c *Config) ApplyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("SECUREID_API_URL")); v != "" {
		c.apiURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SECUREID_LOG_LEVEL")); v != "" {
		c.logLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("SECUREID_REDIS_URL")); v != "" {
		c.redisURL = v
	}
}

// Has reports whether the document defines the named set.
func (c *Config) Has(name string) bool {
	_, ok := c.set(name)
	return ok
}

// set finds a set by name. Platform documents spell set keys either way
// (IdentityVerificationService or identityVerificationService), so an exact
// match wins and otherwise case is ignored.
func (c *Config) set(name string) (yaml.Node, bool) {
	if node, ok := c.sets[name]; ok {
		return node, true
	}
	for key, node := range c.sets {
		if strings.EqualFold(key, name) {
			return node, true
		}
	}
	return yaml.Node{}, false
}

// Bind decodes the named set into out and validates it.
func (c *Config) Bind(name string, out any) error {
	node, ok := c.set(name)
	if !ok {
		return dErrors.New(dErrors.CodeConfigurationSetNotFound, fmt.Sprintf("Configuration set not found. Key: %s", name))
	}
	if err := node.Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid configuration set %s: %v", name, err))
	}
	return nil
}

func (c *Config) APIService() (APIService, error) {
	var set APIService
	if err := c.Bind(SetAPIService, &set); err != nil {
		if !(c.apiURL != "" && dErrors.HasCode(err, dErrors.CodeConfigurationSetNotFound)) {
			return APIService{}, err
		}
	}
	if c.apiURL != "" {
		set.APIURL = c.apiURL
	}
	return set, validateSet(SetAPIService, set)
}

func (c *Config) IdentityVerificationService() (IdentityVerificationService, error) {
	var set IdentityVerificationService
	return set, c.Bind(SetIdentityVerificationService, &set)
}

// Cache is optional and defaults to an in-memory cache.
func (c *Config) Cache() (Cache, error) {
	set := Cache{Backend: CacheBackendMemory, TTL: DefaultCacheTTL}
	if c.Has(SetCache) {
		if err := c.Bind(SetCache, &set); err != nil {
			return Cache{}, err
		}
	}
	if set.Backend == "" {
		set.Backend = CacheBackendMemory
	}
	if set.TTL == 0 {
		set.TTL = DefaultCacheTTL
	}
	return set, validateSet(SetCache, set)
}

// Redis is optional; an empty URL means Redis is not configured.
func (c *Config) Redis() (RedisConfig, error) {
	set := RedisConfig{
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if c.Has(SetRedis) {
		if err := c.Bind(SetRedis, &set); err != nil {
			return RedisConfig{}, err
		}
	}
	if c.redisURL != "" {
		set.URL = c.redisURL
	}
	return set, validateSet(SetRedis, set)
}

// Log is optional and defaults to info.
func (c *Config) Log() (Log, error) {
	set := Log{Level: "info"}
	if c.Has(SetLog) {
		if err := c.Bind(SetLog, &set); err != nil {
			return Log{}, err
		}
	}
	if c.logLevel != "" {
		set.Level = c.logLevel
	}
	return set, validateSet(SetLog, set)
}

func validateSet(name string, set any) error {
	if err := validation.Validate(set); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("%s: %s", name, err.Error()))
	}
	return nil
}
