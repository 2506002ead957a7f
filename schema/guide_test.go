package schema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGuides_NilFS(t *testing.T) {
	guides, err := loadGuides(nil)
	require.NoError(t, err)
	assert.Empty(t, guides)
}

func TestLoadGuides_FrontMatterTitle(t *testing.T) {
	fsys := fstest.MapFS{
		"getting-started.md": {Data: []byte("---\ntitle: Getting Started\n---\nInstall the binary and point it at a config.\n")},
	}
	guides, err := loadGuides(fsys)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "getting-started", guides[0].Name)
	assert.Equal(t, "Getting Started", guides[0].Title)
	assert.Equal(t, "Install the binary and point it at a config.", guides[0].Body)
}

func TestLoadGuides_HeadingTitleFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"troubleshooting.md": {Data: []byte("# Troubleshooting\n\nCheck the logs first.\n")},
	}
	guides, err := loadGuides(fsys)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "Troubleshooting", guides[0].Title)
}

func TestLoadGuides_StemFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"monitoring.md": {Data: []byte("Watch the internal metrics.\n")},
	}
	guides, err := loadGuides(fsys)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "monitoring", guides[0].Title)
}

func TestLoadGuides_SkipsReadmeAndNonMarkdown(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md":  {Data: []byte("# About these guides\n\nIndex only.\n")},
		"notes.txt":  {Data: []byte("not a guide")},
		"deploy.md":  {Data: []byte("# Deploying\n\nUse the service file.\n")},
		"sub/ops.md": {Data: []byte("# Operations\n\nRotate credentials.\n")},
	}
	guides, err := loadGuides(fsys)
	require.NoError(t, err)
	require.Len(t, guides, 2)
	assert.Equal(t, "deploy", guides[0].Name)
	assert.Equal(t, "ops", guides[1].Name)
}

func TestLoadGuides_UnterminatedFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.md": {Data: []byte("---\ntitle: Broken\nNo closing marker.\n")},
	}
	_, err := loadGuides(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.md")
	assert.Contains(t, err.Error(), "front matter")
}

func TestLoadGuides_EmptyBody(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.md": {Data: []byte("---\ntitle: Empty\n---\n\n")},
	}
	_, err := loadGuides(fsys)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestLoadGuides_SortedByName(t *testing.T) {
	fsys := fstest.MapFS{
		"zz.md": {Data: []byte("# Z\n\nlast\n")},
		"aa.md": {Data: []byte("# A\n\nfirst\n")},
	}
	guides, err := loadGuides(fsys)
	require.NoError(t, err)
	require.Len(t, guides, 2)
	assert.Equal(t, "aa", guides[0].Name)
	assert.Equal(t, "zz", guides[1].Name)
}
