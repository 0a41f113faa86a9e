package unconfigured

import (
	"context"
	"errors"

	"github.com/sjzar/file-uploader-mcp/internal/upload"
)

// Storage stands in for a backend that failed to initialize
type Storage struct {
	cause error
}

// New creates a storage that fails every upload with cause
func New(cause error) *Storage {
	if cause == nil {
		cause = errors.New("no storage backend selected")
	}
	return &Storage{cause: cause}
}

// Upload implements the Storage interface but always returns an error
func (s *Storage) Upload(ctx context.Context, req upload.Request) (string, error) {
	return "", &upload.Error{Kind: upload.KindNotConfigured, Err: s.cause}
}
