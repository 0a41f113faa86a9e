package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/file-uploader-mcp/internal/config"
	"github.com/sjzar/file-uploader-mcp/internal/storage/cos"
	"github.com/sjzar/file-uploader-mcp/internal/storage/oss"
	"github.com/sjzar/file-uploader-mcp/internal/storage/qiniu"
	"github.com/sjzar/file-uploader-mcp/internal/storage/s3"
	"github.com/sjzar/file-uploader-mcp/internal/storage/unconfigured"
	"github.com/sjzar/file-uploader-mcp/internal/storage/volatile"
	"github.com/sjzar/file-uploader-mcp/internal/upload"
)

// Storage defines the interface for storage backends.
// Upload stores req.File and returns a URL that stays valid for at least
// req.ExpireAfter seconds.
type Storage interface {
	Upload(ctx context.Context, req upload.Request) (string, error)
}

// InitStorage initializes the storage backend selected by cfg
func InitStorage(cfg *config.Config) Storage {
	switch cfg.StorageType {
	case config.StorageTypeS3:
		return initS3Storage(cfg.S3)
	case config.StorageTypeOSS:
		return initOSSStorage(cfg.OSS)
	case config.StorageTypeCOS:
		return initCOSStorage(cfg.COS)
	case config.StorageTypeQiniu:
		return initQiniuStorage(cfg.Qiniu)
	case config.StorageTypeVolatile, "":
		return initVolatileStorage(cfg)
	default:
		log.Warn().Str("type", cfg.StorageType).Msg("Unknown storage type")
		return unconfigured.New(fmt.Errorf("unknown storage type %q", cfg.StorageType))
	}
}

// initVolatileStorage initializes the volatile HTTP storage client
func initVolatileStorage(cfg *config.Config) Storage {
	client, err := volatile.New(volatile.Config{
		BaseURL:   cfg.BaseURL,
		AuthToken: cfg.AuthToken,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize volatile storage")
		return unconfigured.New(err)
	}
	log.Debug().Str("base_url", cfg.BaseURL).Bool("auth", cfg.AuthToken != "").Msg("Volatile storage initialized")
	return client
}

// initS3Storage initializes AWS S3 storage service
func initS3Storage(cfg config.S3) Storage {
	client, err := s3.NewS3Client(s3.S3Config{
		BucketName:  cfg.Bucket,
		Region:      cfg.Region,
		Endpoint:    cfg.Endpoint,
		AccessKeyID: cfg.AccessKey,
		SecretKey:   cfg.SecretKey,
		Session:     cfg.Session,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize S3 storage")
		return unconfigured.New(err)
	}
	log.Debug().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("S3 storage initialized")
	return client
}

// initOSSStorage initializes Aliyun OSS storage service
func initOSSStorage(cfg config.OSS) Storage {
	client, err := oss.NewOSSClient(oss.OSSConfig{
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKey,
		AccessKeySecret: cfg.SecretKey,
		BucketName:      cfg.Bucket,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Aliyun OSS storage")
		return unconfigured.New(err)
	}
	log.Debug().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("Aliyun OSS storage initialized")
	return client
}

// initCOSStorage initializes Tencent COS storage service
func initCOSStorage(cfg config.COS) Storage {
	client, err := cos.NewCOSClient(cos.COSConfig{
		BucketName:    cfg.Bucket,
		Region:        cfg.Region,
		AppID:         cfg.AppID,
		SecretID:      cfg.SecretID,
		SecretKey:     cfg.SecretKey,
		UseHTTPS:      cfg.UseHTTPS,
		UseAccelerate: cfg.UseAccelerate,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Tencent COS storage")
		return unconfigured.New(err)
	}
	log.Debug().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("Tencent COS storage initialized")
	return client
}

// initQiniuStorage initializes Qiniu Kodo storage service
func initQiniuStorage(cfg config.Qiniu) Storage {
	client, err := qiniu.NewQiniuClient(qiniu.QiniuConfig{
		AccessKey:  cfg.AccessKey,
		SecretKey:  cfg.SecretKey,
		BucketName: cfg.Bucket,
		Domain:     cfg.Domain,
		Region:     cfg.Region,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Qiniu storage")
		return unconfigured.New(err)
	}
	log.Debug().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("Qiniu storage initialized")
	return client
}
