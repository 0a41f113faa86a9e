package oss

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/sjzar/file-uploader-mcp/internal/upload"
	"github.com/sjzar/file-uploader-mcp/pkg/util"
)

// OSSClient is a wrapper for the Aliyun OSS client
type OSSClient struct {
	bucket     *oss.Bucket
	bucketName string
}

// OSSConfig contains configuration for the OSS client
type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
}

// NewOSSClient creates a new OSS client
func NewOSSClient(cfg OSSConfig) (*OSSClient, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get OSS bucket: %w", err)
	}

	return &OSSClient{
		bucket:     bucket,
		bucketName: cfg.BucketName,
	}, nil
}

// Upload puts the file into the bucket and returns a signed URL valid for
// req.ExpireAfter seconds
func (o *OSSClient) Upload(ctx context.Context, req upload.Request) (string, error) {
	objectKey := util.ObjectKey(req.File.Filename)

	options := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(req.MimeType),
		oss.ContentLength(int64(len(req.File.Data))),
	}

	if err := o.bucket.PutObject(objectKey, bytes.NewReader(req.File.Data), options...); err != nil {
		return "", upload.TransportError(ctx, "failed to upload file to OSS", err)
	}

	signedURL, err := o.bucket.SignURL(objectKey, oss.HTTPGet, req.ExpireAfter)
	if err != nil {
		return "", upload.TransportError(ctx, "failed to generate signed URL", err)
	}

	return signedURL, nil
}
