package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/file-uploader-mcp/internal/config"
	"github.com/sjzar/file-uploader-mcp/internal/storage/unconfigured"
	"github.com/sjzar/file-uploader-mcp/internal/storage/volatile"
	"github.com/sjzar/file-uploader-mcp/internal/upload"
)

// recordingStorage records requests and replies with a fixed outcome
type recordingStorage struct {
	mu   sync.Mutex
	reqs []upload.Request
	url  string
	err  error
}

func (r *recordingStorage) Upload(ctx context.Context, req upload.Request) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return r.url, r.err
}

func (r *recordingStorage) calls() []upload.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]upload.Request(nil), r.reqs...)
}

func int64Ptr(v int64) *int64 { return &v }

func tempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestUploadFile_DefaultExpiration(t *testing.T) {
	backend := &recordingStorage{url: "https://x/y"}
	s := &Service{Storage: backend, MinExpireAfter: 60}
	p := tempFile(t, "photo.jpg", []byte("jpeg"))

	url, err := s.UploadFile(context.Background(), p, nil)

	require.NoError(t, err)
	assert.Equal(t, "https://x/y", url)
	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(60), calls[0].ExpireAfter)
	assert.Equal(t, "image/jpeg", calls[0].MimeType)
	assert.Equal(t, "photo.jpg", calls[0].File.Filename)
	assert.Equal(t, []byte("jpeg"), calls[0].File.Data)
}

func TestUploadFile_ExplicitExpiration(t *testing.T) {
	backend := &recordingStorage{url: "https://x/y"}
	s := &Service{Storage: backend, MinExpireAfter: 60}
	p := tempFile(t, "a.txt", []byte("a"))

	_, err := s.UploadFile(context.Background(), p, int64Ptr(3600))

	require.NoError(t, err)
	assert.Equal(t, int64(3600), backend.calls()[0].ExpireAfter)
}

func TestUploadFile_ExpirationAtMinimum(t *testing.T) {
	backend := &recordingStorage{url: "https://x/y"}
	s := &Service{Storage: backend, MinExpireAfter: 60}
	p := tempFile(t, "a.txt", []byte("a"))

	_, err := s.UploadFile(context.Background(), p, int64Ptr(60))

	require.NoError(t, err)
	assert.Len(t, backend.calls(), 1)
}

func TestUploadFile_ExpirationBelowMinimum(t *testing.T) {
	backend := &recordingStorage{url: "https://x/y"}
	s := &Service{Storage: backend, MinExpireAfter: 60}
	p := tempFile(t, "a.txt", []byte("a"))

	for _, v := range []int64{59, 0, -5} {
		_, err := s.UploadFile(context.Background(), p, int64Ptr(v))

		require.Error(t, err)
		assert.ErrorIs(t, err, upload.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "at least 60")
	}
	assert.Empty(t, backend.calls())
}

func TestUploadFile_AcquireFailureShortCircuits(t *testing.T) {
	backend := &recordingStorage{url: "https://x/y"}
	s := &Service{Storage: backend, MinExpireAfter: 60}

	_, err := s.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.bin"), nil)
	assert.ErrorIs(t, err, upload.ErrNotFound)

	_, err = s.UploadFile(context.Background(), t.TempDir(), nil)
	assert.ErrorIs(t, err, upload.ErrIsDirectory)

	assert.Empty(t, backend.calls())
}

func TestUploadFile_UnknownExtensionFallsBack(t *testing.T) {
	backend := &recordingStorage{url: "https://x/y"}
	s := &Service{Storage: backend, MinExpireAfter: 60}
	p := tempFile(t, "LICENSE", []byte("MIT"))

	_, err := s.UploadFile(context.Background(), p, nil)

	require.NoError(t, err)
	assert.Equal(t, upload.FallbackMimeType, backend.calls()[0].MimeType)
}

func TestUploadFile_BackendErrorPropagates(t *testing.T) {
	backend := &recordingStorage{err: &upload.Error{Kind: upload.KindUploadRejected, Detail: "quota exceeded"}}
	s := &Service{Storage: backend, MinExpireAfter: 60}
	p := tempFile(t, "a.txt", []byte("a"))

	_, err := s.UploadFile(context.Background(), p, nil)

	assert.ErrorIs(t, err, upload.ErrUploadRejected)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestUploadFile_EndToEndVolatile(t *testing.T) {
	type seen struct{ expire, contentType string }
	got := make(chan seen, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, volatile.UploadPath, r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		got <- seen{
			expire:      r.FormValue(volatile.FieldExpireAfter),
			contentType: r.MultipartForm.File[volatile.FieldFile][0].Header.Get("Content-Type"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": true, "url": "https://x/y"})
	}))
	defer srv.Close()

	cfg := &config.Config{
		BaseURL:        srv.URL,
		MinExpireAfter: 60,
		StorageType:    config.StorageTypeVolatile,
	}
	s := NewService(cfg)
	p := tempFile(t, "doc.pdf", []byte("%PDF-1.7"))

	url, err := s.UploadFile(context.Background(), p, int64Ptr(90))

	require.NoError(t, err)
	assert.Equal(t, "https://x/y", url)
	req := <-got
	assert.Equal(t, "90", req.expire)
	assert.Equal(t, "application/pdf", req.contentType)
}

func TestInitStorage_Selection(t *testing.T) {
	base := config.Config{BaseURL: "https://storage.example.com", MinExpireAfter: 60}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		check  func(t *testing.T, s Storage)
	}{
		{
			name:   "volatile by default",
			mutate: func(c *config.Config) { c.StorageType = "" },
			check:  func(t *testing.T, s Storage) { assert.IsType(t, &volatile.Client{}, s) },
		},
		{
			name:   "volatile explicit",
			mutate: func(c *config.Config) { c.StorageType = config.StorageTypeVolatile },
			check:  func(t *testing.T, s Storage) { assert.IsType(t, &volatile.Client{}, s) },
		},
		{
			name:   "unknown type",
			mutate: func(c *config.Config) { c.StorageType = "ftp" },
			check:  func(t *testing.T, s Storage) { assert.IsType(t, &unconfigured.Storage{}, s) },
		},
		{
			name:   "qiniu without credentials",
			mutate: func(c *config.Config) { c.StorageType = config.StorageTypeQiniu },
			check:  func(t *testing.T, s Storage) { assert.IsType(t, &unconfigured.Storage{}, s) },
		},
		{
			name:   "cos without bucket",
			mutate: func(c *config.Config) { c.StorageType = config.StorageTypeCOS },
			check:  func(t *testing.T, s Storage) { assert.IsType(t, &unconfigured.Storage{}, s) },
		},
		{
			name:   "s3 without bucket",
			mutate: func(c *config.Config) { c.StorageType = config.StorageTypeS3 },
			check:  func(t *testing.T, s Storage) { assert.IsType(t, &unconfigured.Storage{}, s) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			tt.check(t, InitStorage(&cfg))
		})
	}
}

func TestUploadFile_UnconfiguredBackend(t *testing.T) {
	cfg := &config.Config{BaseURL: "https://storage.example.com", MinExpireAfter: 60, StorageType: "ftp"}
	s := NewService(cfg)
	p := tempFile(t, "a.txt", []byte("a"))

	_, err := s.UploadFile(context.Background(), p, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, upload.ErrNotConfigured)
	assert.Contains(t, err.Error(), `unknown storage type "ftp"`)
}
