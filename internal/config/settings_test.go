package config

import (
	"path/filepath"
	"testing"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.MetaDir != "meta" || s.GuidesDir != "guides" {
		t.Fatalf("want default dirs, got %q %q", s.MetaDir, s.GuidesDir)
	}
	if s.Log.Level != "info" {
		t.Fatalf("want default log level info, got %q", s.Log.Level)
	}
}

func TestLoadSettings_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "settings.yml", `
meta_dir: /etc/pipemeta/meta
log:
  level: warn
  json: true
`)

	s, err := LoadSettings(filepath.Join(dir, "settings.yml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.MetaDir != "/etc/pipemeta/meta" {
		t.Fatalf("want meta_dir from file, got %q", s.MetaDir)
	}
	if s.GuidesDir != "guides" {
		t.Fatalf("want default guides_dir, got %q", s.GuidesDir)
	}
	if s.Log.Level != "warn" || !s.Log.JSON {
		t.Fatalf("want log settings from file, got %+v", s.Log)
	}
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("PIPEMETA__GUIDES_DIR", "/srv/guides")
	t.Setenv("PIPEMETA__LOG__LEVEL", "debug")
	t.Setenv("PIPEMETA__LOG__JSON", "true")

	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.GuidesDir != "/srv/guides" {
		t.Fatalf("want guides_dir from env, got %q", s.GuidesDir)
	}
	if s.Log.Level != "debug" || !s.Log.JSON {
		t.Fatalf("want log settings from env, got %+v", s.Log)
	}
}

func TestLoadSettings_MissingFileIgnored(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.MetaDir != "meta" {
		t.Fatalf("want defaults when file absent, got %q", s.MetaDir)
	}
}
