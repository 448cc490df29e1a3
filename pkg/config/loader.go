package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/paths"
)

const (
	// EnvConfigFile points at an alternative user config file
	EnvConfigFile = "PODKIT_CONFIG"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "PODKIT_"

	// ProjectConfigFile is looked up in the project directory
	ProjectConfigFile = "podkit.toml"

	// UserConfigFile is looked up in the podkit config directory
	UserConfigFile = "config.toml"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("rawBytesProvider does not support Read")
}

// LoadOptions tunes where configuration is read from
type LoadOptions struct {
	// UserConfigPath replaces the XDG user config lookup
	UserConfigPath string

	// ProjectDir is searched for podkit.toml. Defaults to the working directory.
	ProjectDir string

	// Overrides are applied last, keyed by dotted path ("install.clean")
	Overrides map[string]interface{}
}

// LoadConfiguration loads the configuration with default lookup rules
func LoadConfiguration() (*Config, error) {
	return Load(LoadOptions{})
}

// Load builds the layered configuration, post-processes and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse built-in defaults")
	}

	// 2. User and project files
	for _, path := range configFiles(opts) {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config file %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configFiles lists the candidate config files in load order
func configFiles(opts LoadOptions) []string {
	var files []string

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = os.Getenv(EnvConfigFile)
	}
	if userPath == "" {
		if p, err := paths.New(""); err == nil {
			userPath = filepath.Join(p.ConfigDir(), UserConfigFile)
		}
	}
	if userPath != "" {
		files = append(files, paths.ExpandHome(userPath))
	}

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	files = append(files, filepath.Join(projectDir, ProjectConfigFile))

	return files
}

// envKey maps PODKIT_CACHE_MAX_SIZE_MB to cache.max_size_mb. Variables
// without a section part (PODKIT_CONFIG) are skipped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found || rest == "" {
		return ""
	}
	return section + "." + rest
}

// postProcessConfig fills the directory defaults that depend on XDG
func postProcessConfig(cfg *Config) error {
	cfg.Sandbox.Root = paths.ExpandHome(cfg.Sandbox.Root)
	cfg.Cache.Root = paths.ExpandHome(cfg.Cache.Root)
	cfg.Docs.InstallDir = paths.ExpandHome(cfg.Docs.InstallDir)

	if cfg.Cache.Root != "" && cfg.Docs.InstallDir != "" {
		return nil
	}

	p, err := paths.New(cfg.Sandbox.Root)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve podkit directories")
	}
	if cfg.Cache.Root == "" {
		cfg.Cache.Root = p.CacheDir()
	}
	if cfg.Docs.InstallDir == "" {
		cfg.Docs.InstallDir = p.DocsetsDir()
	}
	return nil
}
