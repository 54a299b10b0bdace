// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHeaders(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  http.Header
	}{
		{
			name: "reads header files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "cookie", "  GSP=ID:abc; NID=511  \n")
				writeFile(t, dir, "accept-language", "en-US\n")
				return dir
			},
			want: http.Header{
				"Cookie":          {"GSP=ID:abc; NID=511"},
				"Accept-Language": {"en-US"},
			},
		},
		{
			name: "returns empty headers for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: http.Header{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "cookie", "NID=1")
				writeFile(t, dir, "referer", "")
				writeFile(t, dir, "accept", "   \n\t  ")
				return dir
			},
			want: http.Header{"Cookie": {"NID=1"}},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				writeFile(t, dir, "cookie", "NID=2")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: http.Header{"Cookie": {"NID=2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadHeaders(tt.setup(t), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamesSorted(t *testing.T) {
	h := http.Header{"Cookie": {"secret"}, "Accept-Language": {"en"}, "Referer": {"x"}, "Accept": {"y"}}
	for i := 0; i < 20; i++ {
		assert.Equal(t, []string{"Accept", "Accept-Language", "Cookie", "Referer"}, Names(h))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
