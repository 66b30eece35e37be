package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetString(ConfigOracleBackend), BackendThesaurus)
	is.Equal(cfg.GetFloat64(ConfigMinScore), 0.0)
	is.Equal(cfg.GetInt(ConfigOracleAttempts), 1)
	is.True(cfg.GetInt(ConfigThreads) > 0)
}

func TestLoadFlagsAndLeftovers(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--min-score", "0.25", "--debug", "solve", "sailor jumbled boat"})
	is.NoErr(err)
	is.Equal(cfg.GetFloat64(ConfigMinScore), 0.25)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.CommandArgs(), []string{"solve", "sailor jumbled boat"})

	is.NoErr(cfg.Load([]string{"--top", "3", "solve", "boat", "-len", "4", "--threads", "2"}))
	is.Equal(cfg.GetInt(ConfigTop), 3)
	is.Equal(cfg.CommandArgs(), []string{"solve", "boat", "-len", "4", "--threads", "2"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("CRYPTIC_ORACLE_BACKEND", "remote")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetString(ConfigOracleBackend), BackendRemote)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cryptic.yaml")
	is.NoErr(os.WriteFile(path, []byte("top: 3\nthreads: 2\n"), 0o644))
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", path}))
	is.Equal(cfg.GetInt(ConfigTop), 3)
	is.Equal(cfg.GetInt(ConfigThreads), 2)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Set(ConfigVocabPath, "/abs/vocab.yaml")
	cfg.AdjustRelativePaths("/opt/cryptic")
	is.Equal(cfg.GetString(ConfigDataPath), "/opt/cryptic/data")
	is.Equal(cfg.GetString(ConfigThesaurusPath), "/opt/cryptic/data/thesaurus.txt")
	is.Equal(cfg.GetString(ConfigVocabPath), "/abs/vocab.yaml")
}
