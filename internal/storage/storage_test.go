package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "letters/ab/abcdef.pdf", KeyFor("abcdef", ".PDF"))
	assert.Equal(t, "letters/a/a.txt", KeyFor("a", "txt"))
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, validateKey("letters/ab/abc.pdf"))
	for _, bad := range []string{"", "/etc/passwd", "letters/../../etc/passwd", ".."} {
		assert.ErrorIs(t, validateKey(bad), common.ErrInvalidInput, bad)
	}
}

func TestLocalStore_PutOpenMaterialize(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStore(root, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.Equal(t, "local", s.Name())

	key := KeyFor("deadbeef", "txt")
	require.NoError(t, s.Put(ctx, key, strings.NewReader("पत्र"), "text/plain"))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "पत्र", string(b))

	p, cleanup, err := s.Materialize(ctx, key)
	require.NoError(t, err)
	cleanup()
	assert.Equal(t, filepath.Join(root, "letters", "de", "deadbeef.txt"), p)
	_, err = os.Stat(p)
	assert.NoError(t, err, "local cleanup must not remove the object")

	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLocalStore_Errors(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Open(ctx, "letters/zz/missing.pdf")
	assert.True(t, common.IsNotFound(err))
	_, _, err = s.Materialize(ctx, "letters/zz/missing.pdf")
	assert.True(t, common.IsNotFound(err))
	assert.ErrorIs(t, s.Put(ctx, "../escape.txt", strings.NewReader("x"), ""), common.ErrInvalidInput)
}

func TestNew_Backends(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, common.StorageConfig{Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", s.Name())

	_, err = New(ctx, common.StorageConfig{Backend: "gcs"}, nil)
	assert.ErrorIs(t, err, common.ErrUnsupported)

	_, err = New(ctx, common.StorageConfig{Backend: common.StorageS3}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

// fakeS3 serves path-style PutObject and GetObject.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = b
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		b, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		_, _ = w.Write(b)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store_RoundTrip(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3Store(ctx, S3Config{
		Bucket:          "letters-bucket",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	key := KeyFor("cafebabe", "pdf")
	require.NoError(t, s.Put(ctx, key, strings.NewReader("%PDF-1.4"), "application/pdf"))
	assert.Contains(t, fake.objects, "/letters-bucket/"+key)

	p, cleanup, err := s.Materialize(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(p))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
	cleanup()
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	_, err = s.Open(ctx, "letters/00/none.pdf")
	assert.True(t, common.IsNotFound(err))
}
