package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug          = "debug"
	ConfigFile           = "config-file"
	ConfigDataPath       = "data-path"
	ConfigVocabPath      = "vocab-path"
	ConfigThesaurusPath  = "thesaurus-path"
	ConfigOracleBackend  = "oracle-backend"
	ConfigOracleURL      = "oracle-url"
	ConfigOracleAttempts = "oracle-attempts"
	ConfigOracleTimeout  = "oracle-timeout"
	ConfigThreads        = "threads"
	ConfigMinScore       = "min-score"
	ConfigTop            = "top"
	ConfigCPUProfile     = "cpu-profile"
)

const (
	BackendThesaurus = "thesaurus"
	BackendSQLite    = "sqlite"
	BackendRemote    = "remote"
)

// pathKeys are adjusted relative to the executable when not absolute.
var pathKeys = []string{ConfigDataPath, ConfigVocabPath, ConfigThesaurusPath}

type Config struct {
	sync.Mutex
	*viper.Viper

	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigVocabPath, "")
	v.SetDefault(ConfigThesaurusPath, "./data/thesaurus.txt")
	v.SetDefault(ConfigOracleBackend, BackendThesaurus)
	v.SetDefault(ConfigOracleURL, "http://localhost:8089")
	v.SetDefault(ConfigOracleAttempts, 1)
	v.SetDefault(ConfigOracleTimeout, "30s")
	v.SetDefault(ConfigThreads, runtime.NumCPU())
	v.SetDefault(ConfigMinScore, 0.0)
	v.SetDefault(ConfigTop, 15)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CRYPTIC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// DefaultConfig returns a config with every default set and nothing read from
// the command line or a file. Environment variables still apply.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

// Load reads flags from args, then an optional config file. Arguments that are
// not flags are kept and can be fetched with CommandArgs.
func (c *Config) Load(args []string) error {
	c.Viper = newViper()

	fs := pflag.NewFlagSet("cryptic", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	// Options after the command name belong to the shell command.
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigFile, "", "optional config file (yaml, toml or json)")
	fs.String(ConfigDataPath, "./data", "directory holding word lists and corpora")
	fs.String(ConfigVocabPath, "", "abbreviation and indicator vocabulary: a yaml file or a word-list directory; empty for the built-in list")
	fs.String(ConfigThesaurusPath, "./data/thesaurus.txt", "thesaurus used by the local oracle (text file or sqlite db)")
	fs.String(ConfigOracleBackend, BackendThesaurus, "similarity oracle: thesaurus, sqlite or remote")
	fs.String(ConfigOracleURL, "http://localhost:8089", "base url of the remote oracle")
	fs.Int(ConfigOracleAttempts, 1, "attempts per remote oracle call")
	fs.String(ConfigOracleTimeout, "30s", "timeout per remote oracle call")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of scoring goroutines")
	fs.Float64(ConfigMinScore, 0, "candidates must score strictly above this")
	fs.Int(ConfigTop, 15, "number of candidates to display")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	if cf := c.GetString(ConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// CommandArgs are the non-flag arguments left over after Load.
func (c *Config) CommandArgs() []string {
	return c.args
}

// AdjustRelativePaths makes relative path settings relative to basePath
// (normally the directory of the executable).
func (c *Config) AdjustRelativePaths(basePath string) {
	c.Lock()
	defer c.Unlock()
	for _, k := range pathKeys {
		p := c.GetString(k)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(k, filepath.Join(basePath, p))
	}
}

// SanitizedSettings returns all settings for display.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
