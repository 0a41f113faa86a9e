package qiniu

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qiniu/go-sdk/v7/auth/qbox"
	"github.com/qiniu/go-sdk/v7/storage"

	"github.com/sjzar/file-uploader-mcp/internal/upload"
	"github.com/sjzar/file-uploader-mcp/pkg/util"
)

// QiniuClient is a wrapper for the Qiniu cloud storage client
type QiniuClient struct {
	mac        *qbox.Mac
	bucketName string
	domain     string
	zone       *storage.Zone
}

// QiniuConfig contains configuration for the Qiniu cloud storage client
type QiniuConfig struct {
	AccessKey  string
	SecretKey  string
	BucketName string
	Domain     string // Required, Qiniu requires a custom domain for access
	Region     string // Storage region, e.g. "z0"(East China), "z1"(North China), "z2"(South China), "na0"(North America), "as0"(Southeast Asia)
}

// NewQiniuClient creates a new Qiniu cloud storage client
func NewQiniuClient(cfg QiniuConfig) (*QiniuClient, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("AccessKey and SecretKey cannot be empty")
	}

	if cfg.BucketName == "" {
		return nil, fmt.Errorf("BucketName cannot be empty")
	}

	if cfg.Domain == "" {
		return nil, fmt.Errorf("domain cannot be empty, Qiniu requires a custom domain for access")
	}

	return &QiniuClient{
		mac:        qbox.NewMac(cfg.AccessKey, cfg.SecretKey),
		bucketName: cfg.BucketName,
		domain:     NormalizeDomain(cfg.Domain),
		zone:       zoneFor(cfg.Region),
	}, nil
}

// NormalizeDomain trims a trailing slash and defaults the scheme to http
func NormalizeDomain(domain string) string {
	domain = strings.TrimRight(domain, "/")
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "http://" + domain
	}
	return domain
}

func zoneFor(region string) *storage.Zone {
	switch region {
	case "z1":
		return &storage.ZoneHuabei
	case "z2":
		return &storage.ZoneHuanan
	case "na0":
		return &storage.ZoneBeimei
	case "as0":
		return &storage.ZoneXinjiapo
	default:
		return &storage.ZoneHuadong
	}
}

// Upload puts the file into the bucket and returns a private URL valid for
// req.ExpireAfter seconds
func (q *QiniuClient) Upload(ctx context.Context, req upload.Request) (string, error) {
	objectKey := util.ObjectKey(req.File.Filename)

	cfg := storage.Config{
		Zone:          q.zone,
		UseHTTPS:      true,
		UseCdnDomains: true,
	}
	formUploader := storage.NewFormUploader(&cfg)
	ret := storage.PutRet{}

	putPolicy := storage.PutPolicy{
		Scope: q.bucketName + ":" + objectKey,
	}
	upToken := putPolicy.UploadToken(q.mac)

	putExtra := storage.PutExtra{
		Params: map[string]string{
			"x:name": req.File.Filename,
		},
		MimeType: req.MimeType,
	}

	data := req.File.Data
	err := formUploader.Put(ctx, &ret, upToken, objectKey, bytes.NewReader(data), int64(len(data)), &putExtra)
	if err != nil {
		return "", upload.TransportError(ctx, "failed to upload file to Qiniu cloud", err)
	}

	deadline := time.Now().Add(time.Duration(req.ExpireAfter) * time.Second).Unix()
	return storage.MakePrivateURL(q.mac, q.domain, ret.Key, deadline), nil
}
