package storage

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/file-uploader-mcp/internal/config"
	"github.com/sjzar/file-uploader-mcp/internal/upload"
)

// Service runs the upload pipeline: acquire, infer, send.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	Storage        Storage
	MinExpireAfter int64
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		Storage:        InitStorage(cfg),
		MinExpireAfter: cfg.MinExpireAfter,
	}
}

// UploadFile uploads the file at path and returns its public URL.
// A nil expireAfter means the minimum expiration; an explicit value below
// the minimum is rejected before the file is read.
func (s *Service) UploadFile(ctx context.Context, path string, expireAfter *int64) (string, error) {
	expire := s.MinExpireAfter
	if expireAfter != nil {
		if *expireAfter < s.MinExpireAfter {
			return "", upload.InvalidArgument("expire_after must be at least %d seconds, got %d", s.MinExpireAfter, *expireAfter)
		}
		expire = *expireAfter
	}

	file, err := upload.Acquire(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to acquire file")
		return "", err
	}

	req := upload.Request{
		File:        file,
		MimeType:    upload.InferMimeType(file.Filename),
		ExpireAfter: expire,
	}

	url, err := s.Storage.Upload(ctx, req)
	if err != nil {
		log.Debug().Err(err).Str("path", file.Path).Str("kind", string(upload.KindOf(err))).Msg("upload failed")
		return "", err
	}

	log.Info().Str("path", file.Path).Str("url", url).Int64("expire_after", expire).Msg("file uploaded")
	return url, nil
}
