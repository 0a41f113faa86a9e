package cos

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"

	"github.com/sjzar/file-uploader-mcp/internal/upload"
	"github.com/sjzar/file-uploader-mcp/pkg/util"
)

// COSClient is a wrapper for the Tencent Cloud COS client
type COSClient struct {
	client    *cos.Client
	secretID  string
	secretKey string
}

// COSConfig contains configuration for the COS client
type COSConfig struct {
	BucketName    string
	Region        string
	AppID         string
	SecretID      string
	SecretKey     string
	UseHTTPS      bool // Whether to use HTTPS
	UseAccelerate bool // Whether to use global acceleration domain
}

// NewCOSClient creates a new COS client
func NewCOSClient(cfg COSConfig) (*COSClient, error) {
	if cfg.BucketName == "" || cfg.AppID == "" {
		return nil, fmt.Errorf("COS bucket name and app id cannot be empty")
	}

	bucketURL, err := url.Parse(BucketURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse COS service URL: %w", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})

	return &COSClient{
		client:    client,
		secretID:  cfg.SecretID,
		secretKey: cfg.SecretKey,
	}, nil
}

// BucketURL returns the service URL of the configured bucket
func BucketURL(cfg COSConfig) string {
	if cfg.UseAccelerate {
		return fmt.Sprintf("https://%s-%s.cos.accelerate.myqcloud.com", cfg.BucketName, cfg.AppID)
	}
	scheme := "https"
	if !cfg.UseHTTPS {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s-%s.cos.%s.myqcloud.com", scheme, cfg.BucketName, cfg.AppID, cfg.Region)
}

// Upload puts the file into the bucket and returns a presigned URL valid
// for req.ExpireAfter seconds
func (c *COSClient) Upload(ctx context.Context, req upload.Request) (string, error) {
	objectKey := util.ObjectKey(req.File.Filename)

	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: req.MimeType,
		},
	}

	if _, err := c.client.Object.Put(ctx, objectKey, bytes.NewReader(req.File.Data), opt); err != nil {
		return "", upload.TransportError(ctx, "failed to upload file to COS", err)
	}

	expiration := time.Duration(req.ExpireAfter) * time.Second
	presignedURL, err := c.client.Object.GetPresignedURL(ctx, http.MethodGet, objectKey, c.secretID, c.secretKey, expiration, nil)
	if err != nil {
		return "", upload.TransportError(ctx, "failed to generate presigned URL", err)
	}

	return presignedURL.String(), nil
}
