package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTransform(t *testing.T, doc string) (*Transform, error) {
	t.Helper()
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))
	return newTransform("add_fields", raw)
}

func TestNewTransform_Valid(t *testing.T) {
	tr, err := buildTransform(t, `
description: Adds one or more fields to each event.
function_categories:
  - shape
  - enrich
options:
  fields:
    description: A table of key value pairs to add.
    type: table
    required: true
    options:
      "*":
        description: The value to set the field to.
        type: string
`)
	require.NoError(t, err)
	assert.Equal(t, "add_fields", tr.Name)
	assert.Equal(t, []string{"shape", "enrich"}, tr.FunctionCategories)
	assert.Empty(t, tr.Alternatives)
}

func TestNewTransform_RequiresCategories(t *testing.T) {
	_, err := buildTransform(t, `
description: Adds one or more fields to each event.
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "function_categories")
}

func TestNewTransform_DuplicateCategory(t *testing.T) {
	_, err := buildTransform(t, `
description: Adds one or more fields to each event.
function_categories:
  - shape
  - shape
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestNewTransform_CategoryStyle(t *testing.T) {
	_, err := buildTransform(t, `
description: Adds one or more fields to each event.
function_categories:
  - Shape Things
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snake_case")
}

func TestLinkAlternatives(t *testing.T) {
	mk := func(name string, cats ...string) *Transform {
		return &Transform{Component: Component{Name: name}, FunctionCategories: cats}
	}
	transforms := map[string]*Transform{
		"add_fields":    mk("add_fields", "enrich", "shape"),
		"coercer":       mk("coercer", "shape", "parse"),
		"remove_fields": mk("remove_fields", "enrich", "shape"),
		"sampler":       mk("sampler", "filter"),
	}

	linkAlternatives(transforms)

	assert.Equal(t, []string{"coercer", "remove_fields"}, transforms["add_fields"].AlternativeNames())
	assert.Equal(t, []string{"add_fields", "remove_fields"}, transforms["coercer"].AlternativeNames())
	assert.Equal(t, []string{"add_fields", "coercer"}, transforms["remove_fields"].AlternativeNames())
	assert.Empty(t, transforms["sampler"].Alternatives)
}
