package config

import (
	"errors"
	"io/fs"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Settings configures the tool itself, not the schema being built.
type Settings struct {
	MetaDir   string `koanf:"meta_dir"`
	GuidesDir string `koanf:"guides_dir"`
	Log       LogCfg `koanf:"log"`
}

type LogCfg struct {
	Level string `koanf:"level"` // debug|info|warn|error
	JSON  bool   `koanf:"json"`
}

// LoadSettings merges an optional YAML file with env-vars
// (prefix `PIPEMETA__`, delimiter `__`).
func LoadSettings(path string) (Settings, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
	}
	// PIPEMETA__LOG__LEVEL becomes log.level.
	_ = k.Load(env.Provider("PIPEMETA__", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "PIPEMETA__")), "__", ".")
	}), nil)

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return s, err
	}
	applyDefaults(&s)
	return s, nil
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func applyDefaults(s *Settings) {
	if s.MetaDir == "" {
		s.MetaDir = "meta"
	}
	if s.GuidesDir == "" {
		s.GuidesDir = "guides"
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}
