package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildSource(t *testing.T, doc string) (*Source, error) {
	t.Helper()
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))
	return newSource("file", raw)
}

func TestNewSource_Valid(t *testing.T) {
	s, err := buildSource(t, `
title: File
description: Ingests data through one or more local files.
delivery_guarantee: at_least_once
through_description: local files
outputs:
  - type: log
    description: One event per matched line.
    fields:
      file:
        description: The absolute path of the originating file.
        type: string
options:
  include:
    description: Array of file patterns to include.
    type: "[string]"
    required: true
`)
	require.NoError(t, err)
	assert.Equal(t, "file", s.Name)
	assert.Equal(t, "File", s.Title)
	assert.Equal(t, AtLeastOnce, s.DeliveryGuarantee)
	assert.Equal(t, "local files", s.ThroughDescription)
	require.Len(t, s.Outputs, 1)
	assert.Equal(t, []EventType{EventLog}, s.OutputTypes())
	assert.Contains(t, s.Options, "include")
}

func TestNewSource_TrailingPeriodRejected(t *testing.T) {
	_, err := buildSource(t, `
description: Ingests data through one or more local files.
delivery_guarantee: at_least_once
through_description: local files.
outputs:
  - type: log
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStyleViolation)
}

func TestNewSource_BadDeliveryGuarantee(t *testing.T) {
	_, err := buildSource(t, `
description: Ingests data.
delivery_guarantee: exactly_once
through_description: local files
outputs:
  - type: log
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestNewSource_RequiresOutputs(t *testing.T) {
	_, err := buildSource(t, `
description: Ingests data.
delivery_guarantee: best_effort
through_description: local files
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "outputs")
}

func TestNewSource_BadOutputType(t *testing.T) {
	_, err := buildSource(t, `
description: Ingests data.
delivery_guarantee: best_effort
through_description: local files
outputs:
  - type: bogus
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnum)
	assert.Contains(t, err.Error(), "bogus")
}

func TestNewSource_TLSFlagAttachesSharedTable(t *testing.T) {
	s, err := buildSource(t, `
description: Ingests data over the syslog protocol.
delivery_guarantee: best_effort
through_description: the syslog protocol
tls: true
outputs:
  - type: log
options:
  tls:
    description: A stray table the shared one must replace.
    type: table
`)
	require.NoError(t, err)

	tls := s.Options["tls"]
	require.NotNil(t, tls)
	assert.Contains(t, tls.Options, "verify_hostname")
	assert.Contains(t, tls.Options, "ca_file")
	assert.Equal(t, "Configures TLS for connections to the remote.", tls.Description)
}

func TestNewSource_SectionsSorted(t *testing.T) {
	s, err := buildSource(t, `
description: Ingests data.
delivery_guarantee: best_effort
through_description: local files
outputs:
  - type: log
sections:
  - title: Zebra
    body: z
  - title: Context
    body: c
`)
	require.NoError(t, err)
	require.Len(t, s.Sections, 2)
	assert.Equal(t, "Context", s.Sections[0].Title)
	assert.Equal(t, "Zebra", s.Sections[1].Title)
}
