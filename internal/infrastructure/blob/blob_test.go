package blob

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/shared/config"
	"agencydesk/internal/shared/logger"
)

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/files/")
	require.NoError(t, err)

	ref, err := s.Put(context.Background(), "resources/r1/brief.pdf", strings.NewReader("hello"), 5, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/files/resources/r1/brief.pdf", ref)

	data, err := os.ReadFile(filepath.Join(dir, "resources", "r1", "brief.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalStore_Rejects(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/files")
	require.NoError(t, err)

	tests := []struct {
		name string
		key  string
		body string
		size int64
	}{
		{"escaping key", "../outside.txt", "x", 1},
		{"absolute key", "/etc/passwd", "x", 1},
		{"empty key", "", "x", 1},
		{"short body", "resources/r1/a.txt", "abc", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Put(context.Background(), tt.key, strings.NewReader(tt.body), tt.size, "")
			assert.Error(t, err)
		})
	}
	_, err = os.Stat(filepath.Join(dir, "resources", "r1", "a.txt"))
	assert.True(t, os.IsNotExist(err), "partial blob removed")
}

func TestNew_Drivers(t *testing.T) {
	store, err := New(context.Background(), config.BlobConfig{Driver: "local", Dir: t.TempDir(), BaseURL: "/files"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), config.BlobConfig{Driver: "ftp"}, logger.Nop())
	assert.Error(t, err)
}

func TestObjectURL(t *testing.T) {
	endpoint, err := url.Parse("https://s3.agency.test")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.agency.test/agencydesk/submissions/s1/deck.pdf",
		objectURL(endpoint, "agencydesk", "submissions/s1/deck.pdf"))
}
