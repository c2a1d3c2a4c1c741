package config

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/hugovk/clufter/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyRuleDir          = "rule_dir"
	KeyRawMetadata      = "raw_metadata"
	KeyMetadataExt      = "metadata_ext"
	KeyExtractTimeout   = "extract_timeout"
	KeyMaxMetadataBytes = "max_metadata_bytes"
	KeyLogLevel         = "log_level"
)

// Defaults.
const (
	DefaultRuleDir          = "/usr/share/cluster"
	DefaultMetadataExt      = "metadata"
	DefaultExtractTimeout   = 30 * time.Second
	DefaultMaxMetadataBytes = 16 << 20
	DefaultLogLevel         = "info"
)

// kind is the value type of a setting, used to convert `config set` input.
type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
	kindDuration
)

var keyKinds = map[string]kind{
	KeyRuleDir:          kindString,
	KeyRawMetadata:      kindBool,
	KeyMetadataExt:      kindString,
	KeyExtractTimeout:   kindDuration,
	KeyMaxMetadataBytes: kindInt,
	KeyLogLevel:         kindString,
}

// ErrUnknownKey is returned by Set for a key that is not a setting.
var ErrUnknownKey = errors.New("unknown config key")

// Settings is the resolved configuration.
type Settings struct {
	RuleDir          string
	RawMetadata      bool
	MetadataExt      string
	ExtractTimeout   time.Duration
	MaxMetadataBytes int64
	LogLevel         string
}

// Dir returns the path to the config directory (~/.resrules/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.resrules/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating config directory %s", dir)
	}
	return nil
}

// Load initializes Viper from the config file and environment. A missing
// config file is not an error; a config file that fails schema validation is.
func Load() error {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) error {
	viper.SetDefault(KeyRuleDir, DefaultRuleDir)
	viper.SetDefault(KeyRawMetadata, false)
	viper.SetDefault(KeyMetadataExt, DefaultMetadataExt)
	viper.SetDefault(KeyExtractTimeout, DefaultExtractTimeout.String())
	viper.SetDefault(KeyMaxMetadataBytes, DefaultMaxMetadataBytes)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)

	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if _, err := os.Stat(path); err != nil {
		return nil
	}

	result, err := ValidateFile(path)
	if err != nil {
		return err
	}
	if !result.Valid {
		return result.Err(path)
	}
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	return nil
}

// Current returns the settings resolved from defaults, config file,
// environment, and any bound flags.
func Current() (Settings, error) {
	timeout, err := time.ParseDuration(viper.GetString(KeyExtractTimeout))
	if err != nil {
		return Settings{}, errors.Wrapf(err, "parsing %s", KeyExtractTimeout)
	}
	return Settings{
		RuleDir:          viper.GetString(KeyRuleDir),
		RawMetadata:      viper.GetBool(KeyRawMetadata),
		MetadataExt:      viper.GetString(KeyMetadataExt),
		ExtractTimeout:   timeout,
		MaxMetadataBytes: viper.GetInt64(KeyMaxMetadataBytes),
		LogLevel:         viper.GetString(KeyLogLevel),
	}, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Keys returns the setting keys in name order.
func Keys() []string {
	return slices.Sorted(maps.Keys(keyKinds))
}

// Lookup is Get restricted to known setting keys.
func Lookup(key string) (string, error) {
	if _, ok := keyKinds[key]; !ok {
		return "", errors.Wrapf(ErrUnknownKey, "%q", key)
	}
	return viper.GetString(key), nil
}

// Set converts value to the type of key, stores it, and saves the config file.
func Set(key, value string) error {
	typed, err := convert(key, value)
	if err != nil {
		return err
	}
	if err := checkValue(key, typed); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, typed)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return errors.Wrapf(err, "creating config file %s", configFile)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}

func convert(key, value string) (interface{}, error) {
	k, ok := keyKinds[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKey, "%q", key)
	}
	switch k {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s must be a boolean", key)
		}
		return b, nil
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s must be an integer", key)
		}
		return n, nil
	case kindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return nil, errors.Wrapf(err, "%s must be a duration", key)
		}
	}
	return value, nil
}

// checkValue runs a single setting through the config schema so that a value
// Load would later reject never reaches the file.
func checkValue(key string, typed interface{}) error {
	data, err := yaml.Marshal(map[string]interface{}{key: typed})
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	result, err := Validate(data)
	if err != nil {
		return err
	}
	return result.Err(key)
}
