package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// LoadMeta merges every YAML document under dir into one nested map. The
// corpus is split into one file per component family; files merge in sorted
// path order with later files overriding earlier keys.
func LoadMeta(dir string) (map[string]any, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yml", ".yaml":
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no metadata files under %s", dir)
	}
	slices.Sort(paths)

	k := koanf.New(".")
	for _, p := range paths {
		if err := k.Load(file.Provider(p), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}
	return k.Raw(), nil
}

// LoadMetaBytes merges in-memory YAML documents in the order given. Tests
// and embedding callers use this instead of a directory.
func LoadMetaBytes(docs ...[]byte) (map[string]any, error) {
	k := koanf.New(".")
	for i, doc := range docs {
		if err := k.Load(rawbytes.Provider(doc), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	return k.Raw(), nil
}
