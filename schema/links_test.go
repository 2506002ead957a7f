package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linksSchema() *Schema {
	return &Schema{
		Enums: Enums{
			"correctness_tests": {"wrapped_json_correctness"},
			"performance_tests": {"file_to_tcp_performance"},
		},
		Sources:    map[string]*Source{"file": {}},
		Transforms: map[string]*Transform{"json_parser": {}},
		Sinks:      map[string]*Sink{"console": {}},
	}
}

func TestNewLinks_Valid(t *testing.T) {
	raw := map[string]any{
		"docs": map[string]any{
			"configuration":          "/usage/configuration",
			"sources.file":           "/usage/configuration/sources/file",
			"transforms.json_parser": "/usage/configuration/transforms/json_parser",
			"sinks.console":          "/usage/configuration/sinks/console",
		},
		"urls": map[string]any{
			"community": "https://example.com/community",
		},
		"tests": map[string]any{
			"wrapped_json_correctness": "https://example.com/tests/wrapped_json",
		},
	}
	l, err := newLinks(raw, linksSchema())
	require.NoError(t, err)

	path, err := l.Fetch("docs", "sources.file")
	require.NoError(t, err)
	assert.Equal(t, "/usage/configuration/sources/file", path)

	url, err := l.Fetch("urls", "community")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/community", url)
}

func TestNewLinks_DocPathMustBeAbsolute(t *testing.T) {
	raw := map[string]any{
		"docs": map[string]any{"configuration": "usage/configuration"},
	}
	_, err := newLinks(raw, linksSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with /")
}

func TestNewLinks_UnknownComponentRef(t *testing.T) {
	raw := map[string]any{
		"docs": map[string]any{"sources.filee": "/usage/configuration/sources/filee"},
	}
	_, err := newLinks(raw, linksSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "filee"`)

	raw = map[string]any{
		"docs": map[string]any{"sinks.blackhole": "/usage/configuration/sinks/blackhole"},
	}
	_, err = newLinks(raw, linksSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sink "blackhole"`)
}

func TestNewLinks_NonComponentDocNamesPass(t *testing.T) {
	raw := map[string]any{
		"docs": map[string]any{
			"setup":          "/setup",
			"about.concepts": "/about/concepts",
		},
	}
	_, err := newLinks(raw, linksSchema())
	require.NoError(t, err)
}

func TestNewLinks_BadURL(t *testing.T) {
	raw := map[string]any{
		"urls": map[string]any{"community": "example.com/community"},
	}
	_, err := newLinks(raw, linksSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be absolute http or https")
}

func TestNewLinks_TestNameMustBeKnown(t *testing.T) {
	raw := map[string]any{
		"tests": map[string]any{"unheard_of_test": "https://example.com/tests/unheard_of"},
	}
	_, err := newLinks(raw, linksSchema())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnum)
	assert.Contains(t, err.Error(), "unheard_of_test")
}

func TestLinks_FetchUnknownName(t *testing.T) {
	raw := map[string]any{
		"docs": map[string]any{
			"configuration": "/usage/configuration",
			"setup":         "/setup",
		},
	}
	l, err := newLinks(raw, linksSchema())
	require.NoError(t, err)

	_, err = l.Fetch("docs", "configruation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration, setup")
}

func TestLinks_FetchUnknownCategory(t *testing.T) {
	l, err := newLinks(map[string]any{}, linksSchema())
	require.NoError(t, err)

	_, err = l.Fetch("pages", "setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown link category "pages"`)
}
