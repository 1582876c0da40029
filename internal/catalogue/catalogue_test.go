package catalogue

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	services := c.List()
	require.NotEmpty(t, services)
	assert.Equal(t, "web-development", services[0].Slug)
	assert.True(t, c.Has("consulting"))
	assert.False(t, c.Has("gardening"))
	assert.Equal(t, "Mobile Apps", c.Label("mobile-apps"))
	assert.Equal(t, "gardening", c.Label("gardening"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "valid",
			input: "services:\n  - slug: seo\n    title: SEO\n",
		},
		{
			name:    "empty",
			input:   "services: []\n",
			wantErr: "empty",
		},
		{
			name:    "bad slug",
			input:   "services:\n  - slug: Not A Slug\n    title: X\n",
			wantErr: "invalid slug",
		},
		{
			name:    "reserved slug",
			input:   "services:\n  - slug: other\n    title: Other\n",
			wantErr: "reserved",
		},
		{
			name:    "duplicate",
			input:   "services:\n  - slug: seo\n    title: SEO\n  - slug: seo\n    title: SEO again\n",
			wantErr: "duplicate",
		},
		{
			name:    "missing title",
			input:   "services:\n  - slug: seo\n",
			wantErr: "title is required",
		},
		{
			name:    "malformed yaml",
			input:   "services: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, services, 1)
			assert.Equal(t, []string{}, services[0].Features)
		})
	}
}

func TestOverrideFileAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services:\n  - slug: seo\n    title: SEO\n"), 0o644))

	c, err := New(path)
	require.NoError(t, err)
	assert.True(t, c.Has("seo"))
	assert.False(t, c.Has("web-development"))

	require.NoError(t, os.WriteFile(path, []byte("services: ["), 0o644))
	assert.Error(t, c.Reload())
	assert.True(t, c.Has("seo"), "broken file keeps the previous list")

	require.NoError(t, os.WriteFile(path, []byte("services:\n  - slug: ppc\n    title: Paid Search\n"), 0o644))
	require.NoError(t, c.Reload())
	assert.Equal(t, "Paid Search", c.Label("ppc"))
}

func TestWatchPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services:\n  - slug: seo\n    title: SEO\n"), 0o644))

	c, err := New(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("services:\n  - slug: seo\n    title: Search Engine Optimisation\n"), 0o644))
	assert.Eventually(t, func() bool {
		return c.Label("seo") == "Search Engine Optimisation"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestListReturnsCopy(t *testing.T) {
	c := FromServices([]Service{{Slug: "seo", Title: "SEO"}})
	list := c.List()
	list[0].Title = "changed"
	assert.Equal(t, "SEO", c.Label("seo"))
}
