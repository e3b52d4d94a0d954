package config

import (
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/paths"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
// Sections and keys are separated by a double underscore:
// MERGERFS_CONSOLIDATE_TRANSFER__COMMAND sets transfer.command.
const EnvPrefix = "MERGERFS_CONSOLIDATE_"

// Config is the effective configuration of a run
type Config struct {
	Mount    MountConfig   `koanf:"mount" toml:"mount"`
	Xattr    XattrConfig   `koanf:"xattr" toml:"xattr"`
	Transfer CommandConfig `koanf:"transfer" toml:"transfer"`
	Prune    CommandConfig `koanf:"prune" toml:"prune"`
}

// MountConfig describes how a mergerfs mount is recognised
type MountConfig struct {
	ControlFile string `koanf:"control_file" toml:"control_file"`
}

// XattrConfig names the extended attributes exposed by mergerfs
type XattrConfig struct {
	AllPaths  string `koanf:"allpaths" toml:"allpaths"`
	Version   string `koanf:"version" toml:"version"`
	SrcMounts string `koanf:"srcmounts" toml:"srcmounts"`
}

// CommandConfig is an external program and its fixed arguments
type CommandConfig struct {
	Command string   `koanf:"command" toml:"command"`
	Args    []string `koanf:"args" toml:"args"`
}

// LoadOptions controls where the user configuration comes from
type LoadOptions struct {
	// ConfigFile is an explicit file (from --config). It must exist.
	ConfigFile string
}

// Load builds the configuration from defaults, the user file and the
// environment. An explicitly named file that does not exist is an error;
// the XDG default file is optional.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		explicit = os.Getenv(paths.EnvConfigFile) != ""
		path = paths.ConfigFilePath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the embedded defaults without consulting files or the environment
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return &cfg
}

// envKey maps MERGERFS_CONSOLIDATE_SECTION__KEY to section.key.
// Variables without a section separator are skipped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks that every required value is present
func (c *Config) Validate() error {
	required := map[string]string{
		"mount.control_file": c.Mount.ControlFile,
		"xattr.allpaths":     c.Xattr.AllPaths,
		"xattr.version":      c.Xattr.Version,
		"transfer.command":   c.Transfer.Command,
		"prune.command":      c.Prune.Command,
	}
	keys := make([]string, 0, len(required))
	for key := range required {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.TrimSpace(required[key]) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", key).
				WithDetail("key", key)
		}
	}
	if strings.ContainsRune(c.Mount.ControlFile, os.PathSeparator) {
		return errors.Newf(errors.ErrConfigValid, "mount.control_file must be a file name, got %q", c.Mount.ControlFile)
	}
	return nil
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() (string, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	return string(data), nil
}
