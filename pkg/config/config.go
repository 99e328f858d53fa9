package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/filecoin-project/go-posv/pkg/constants"
)

var log = logging.Logger("config")

// Backend names accepted in verifier.backend.
const (
	BackendGo     = "go"
	BackendNative = "native"
)

// Config is an in memory representation of the posv configuration file
type Config struct {
	Verifier *VerifierConfig `toml:"verifier"`
	Cache    *CacheConfig    `toml:"cache"`
	Metrics  *MetricsConfig  `toml:"metrics"`
	Log      *LogConfig      `toml:"log"`
}

// VerifierConfig selects the proof backend and the accepted difficulty range.
type VerifierConfig struct {
	Backend         string `toml:"backend"`
	MinK            uint8  `toml:"minK"`
	MaxK            uint8  `toml:"maxK"`
	SerializeNative bool   `toml:"serializeNative"`
}

func newDefaultVerifierConfig() *VerifierConfig {
	return &VerifierConfig{
		Backend:         BackendGo,
		MinK:            constants.DefaultMinK,
		MaxK:            constants.DefaultMaxK,
		SerializeNative: true,
	}
}

// CacheConfig holds the result cache settings. A size of 0 disables it.
type CacheConfig struct {
	Size int `toml:"size"`
}

func newDefaultCacheConfig() *CacheConfig {
	return &CacheConfig{}
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

func newDefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Enabled: false,
		Address: "127.0.0.1:9464",
	}
}

// LogConfig sets the default log level for every subsystem.
type LogConfig struct {
	Level string `toml:"level"`
}

func newDefaultLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// NewDefaultConfig returns a config object with all the fields filled out to
// their default values
func NewDefaultConfig() *Config {
	return &Config{
		Verifier: newDefaultVerifierConfig(),
		Cache:    newDefaultCacheConfig(),
		Metrics:  newDefaultMetricsConfig(),
		Log:      newDefaultLogConfig(),
	}
}

// Validate reports the first setting that cannot be used to build a verifier.
func (cfg *Config) Validate() error {
	v := cfg.Verifier
	if v == nil {
		return errors.New("missing verifier section")
	}
	switch v.Backend {
	case BackendGo, BackendNative:
	default:
		return errors.Errorf("unknown verifier backend %q", v.Backend)
	}
	if v.MinK < 1 {
		return errors.Errorf("verifier.minK must be at least 1, got %d", v.MinK)
	}
	if v.MaxK > constants.DefaultMaxK {
		return errors.Errorf("verifier.maxK must be at most %d, got %d", constants.DefaultMaxK, v.MaxK)
	}
	if v.MinK > v.MaxK {
		return errors.Errorf("verifier.minK %d is above verifier.maxK %d", v.MinK, v.MaxK)
	}
	if cfg.Cache != nil && cfg.Cache.Size < 0 {
		return errors.Errorf("cache.size must not be negative, got %d", cfg.Cache.Size)
	}
	if cfg.Metrics != nil && cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		return errors.New("metrics.address is required when metrics are enabled")
	}
	return nil
}

// WriteFile writes the config to the given filepath.
func (cfg *Config) WriteFile(file string) error {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(f).Encode(*cfg); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// ReadFile reads a config file from disk. Keys missing from the file keep
// their default values.
func ReadFile(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck

	cfg := NewDefaultConfig()
	md, err := toml.DecodeReader(f, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", file)
	}
	for _, key := range md.Undecoded() {
		log.Warnw("ignoring unknown config key", "file", file, "key", key.String())
	}

	return cfg, nil
}

// traverseConfig contains the shared traversal logic for getting and setting
// config values.  It uses reflection to find the sub-struct referenced by `key`
// and applies a processing function to the referenced struct
func (cfg *Config) traverseConfig(key string,
	f func(reflect.Value, string) (interface{}, error)) (interface{}, error) {
	v := reflect.Indirect(reflect.ValueOf(cfg))
	keyTags := strings.Split(key, ".")
OUTER:
	for j, keyTag := range keyTags {
		switch v.Type().Kind() {
		case reflect.Struct:
			for i := 0; i < v.NumField(); i++ {
				tomlTag := strings.Split(
					v.Type().Field(i).Tag.Get("toml"),
					",")[0]
				if tomlTag == keyTag {
					v = v.Field(i)
					if j == len(keyTags)-1 {
						return f(v, key)
					}
					v = reflect.Indirect(v) // only attempt one dereference
					continue OUTER
				}
			}
		case reflect.Array, reflect.Slice:
			i64, err := strconv.ParseUint(keyTag, 0, 0)
			if err != nil {
				return nil, fmt.Errorf("non-integer key into slice")
			}
			i := int(i64)
			if i > v.Len()-1 {
				return nil, fmt.Errorf("key into slice out of range")
			}
			v = v.Index(i)
			if j == len(keyTags)-1 {
				return f(v, key)
			}
			v = reflect.Indirect(v)
			continue OUTER
		}

		return nil, fmt.Errorf("key: %s invalid for config", key)
	}
	return nil, fmt.Errorf("empty key is invalid")
}

// prependKey includes the TOML key in the tomlVal blob so it can be decoded
// on its own. Tables get "[key]\n" prepended, everything else "k = " where k
// is the last period separated part of key.
func prependKey(tomlVal string, key string, fieldT reflect.Type) string {
	ks := strings.Split(key, ".")
	k := ks[len(ks)-1]
	fieldK := fieldT.Kind()
	if fieldK == reflect.Ptr {
		fieldK = fieldT.Elem().Kind()
	}

	if fieldK == reflect.Struct {
		tomlVal = strings.TrimSpace(tomlVal)
		if strings.HasPrefix(tomlVal, "{") {
			return fmt.Sprintf("%s=%s", k, tomlVal)
		}
		return fmt.Sprintf("[%s]\n%s", k, tomlVal)
	}
	return fmt.Sprintf("%s=%s", k, tomlVal)
}

// fieldToSet decodes tomlVal into a fresh value of type fieldT.
func fieldToSet(key string, tomlVal string, fieldT reflect.Type) (reflect.Value, error) {
	tomlValKey := prependKey(tomlVal, key, fieldT)
	ks := strings.Split(key, ".")
	k := ks[len(ks)-1]

	field := reflect.StructField{
		Name: "Field",
		Type: fieldT,
		Tag:  reflect.StructTag("toml:" + "\"" + k + "\""),
	}
	recvT := reflect.StructOf([]reflect.StructField{field})
	valToRecv := reflect.New(recvT)

	_, err := toml.Decode(tomlValKey, valToRecv.Interface())
	if err != nil {
		msg := fmt.Sprintf("input could not be marshaled to sub-config at: %s", key)
		return valToRecv, errors.Wrap(err, msg)
	}
	return valToRecv.Elem().Field(0), nil
}

// Set sets the config sub-struct referenced by `key`, e.g. 'verifier.maxK'
// or 'cache', to the toml value encoded in tomlVal. The resulting config
// must still validate; otherwise it is left unchanged.
func (cfg *Config) Set(key string, tomlVal string) (interface{}, error) {
	f := func(v reflect.Value, key string) (interface{}, error) {
		setT := v.Type()
		recvT := setT
		if setT.Kind() == reflect.Ptr {
			recvT = setT.Elem()
		}

		valToSet, err := fieldToSet(key, tomlVal, recvT)
		if err != nil {
			return nil, err
		}
		if setT.Kind() == reflect.Ptr {
			valToSet = valToSet.Addr()
		}

		old := reflect.New(setT).Elem()
		old.Set(v)
		v.Set(valToSet)
		if err := cfg.Validate(); err != nil {
			v.Set(old)
			return nil, errors.Wrapf(err, "setting %s", key)
		}

		return v.Interface(), nil
	}

	return cfg.traverseConfig(key, f)
}

// Get gets the config sub-struct referenced by `key`, e.g. 'verifier.backend'
func (cfg *Config) Get(key string) (interface{}, error) {
	f := func(v reflect.Value, key string) (interface{}, error) {
		return v.Interface(), nil
	}

	return cfg.traverseConfig(key, f)
}
