package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/ctnotes/errors"
	"github.com/grovetools/ctnotes/pkg/paths"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames lists the base config file names in lookup order.
var configNames = []string{
	"ctnotes.toml",
	"ctnotes.yml",
	"ctnotes.yaml",
}

// overrideNames lists local override files merged over the base file, in order.
var overrideNames = []string{
	"ctnotes.override.toml",
	"ctnotes.override.yml",
	"ctnotes.override.yaml",
}

// Load reads and parses a single configuration file
func Load(path string) (*Config, error) {
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

// LoadDefault loads the configuration from the ctnotes config directory.
func LoadDefault() (*Config, error) {
	return LoadFrom(paths.ConfigDir())
}

// LoadFrom loads configuration with override merging from the given directory.
// A directory without any config file yields the defaults.
func LoadFrom(dir string) (*Config, error) {
	return LoadFromWithLogger(dir, logrus.New())
}

// LoadFromWithLogger loads configuration with override merging and logging
func LoadFromWithLogger(dir string, logger *logrus.Logger) (*Config, error) {
	raw := map[string]interface{}{}

	basePath, err := FindConfigFile(dir)
	switch {
	case err == nil:
		logger.WithField("path", basePath).Debug("Loading configuration")
		raw, err = readRaw(basePath)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, errors.ErrCodeConfigNotFound):
		logger.WithField("dir", dir).Debug("No configuration file, using defaults")
	default:
		return nil, err
	}

	for _, name := range overrideNames {
		overridePath := filepath.Join(dir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}
		logger.WithField("path", overridePath).Debug("Loading local override configuration")
		override, err := readRaw(overridePath)
		if err != nil {
			logger.WithError(err).Warn("Failed to read override file, skipping")
			continue
		}
		raw = mergeMaps(raw, override)
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return cfg, nil
}

// LoadFromBytes parses configuration from a byte array. format is "toml" or "yaml".
func LoadFromBytes(data []byte, format string) (*Config, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

// FindConfigFile returns the first ctnotes config file present in dir.
func FindConfigFile(dir string) (string, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.ConfigNotFound(dir)
}

// readRaw reads one config file into a generic map, picking the decoder by extension.
func readRaw(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	format := "yaml"
	if strings.HasSuffix(path, ".toml") {
		format = "toml"
	}

	raw, err := decodeRaw(data, format)
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	return raw, nil
}

func decodeRaw(data []byte, format string) (map[string]interface{}, error) {
	expanded := []byte(expandEnvVars(string(data)))
	raw := map[string]interface{}{}

	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(expanded, &raw)
	case "yaml", "yml":
		err = yaml.Unmarshal(expanded, &raw)
	default:
		return nil, errors.ConfigInvalid("unknown config format " + format)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+format+" configuration")
	}
	return raw, nil
}

// fromRaw decodes the known sections, keeps the rest as extensions, then applies
// defaults and validation.
func fromRaw(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{Extensions: map[string]interface{}{}}

	known := map[string]interface{}{}
	for key, value := range raw {
		if knownSections[key] {
			known[key] = value
		} else {
			cfg.Extensions[key] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(" "),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create config decoder")
	}
	if err := decoder.Decode(known); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	cfg.SetDefaults()

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeMaps deep-merges override over base. Nested maps merge; everything else replaces.
func mergeMaps(base, override map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		baseChild, baseIsMap := out[k].(map[string]interface{})
		overrideChild, overrideIsMap := v.(map[string]interface{})
		if baseIsMap && overrideIsMap {
			out[k] = mergeMaps(baseChild, overrideChild)
			continue
		}
		out[k] = v
	}
	return out
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
