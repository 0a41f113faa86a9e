package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sjzar/file-uploader-mcp/internal/upload"
	"github.com/sjzar/file-uploader-mcp/pkg/util"
)

// S3Client stores uploads in an S3-compatible bucket and hands out presigned URLs
type S3Client struct {
	client     *s3.Client
	presign    *s3.PresignClient
	bucketName string
}

// S3Config contains configuration for the S3 client
type S3Config struct {
	BucketName  string
	Region      string
	Endpoint    string
	AccessKeyID string
	SecretKey   string
	Session     string
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg S3Config) (*S3Client, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name cannot be empty")
	}

	var optFns []func(*config.LoadOptions) error
	optFns = append(optFns, config.WithRegion(cfg.Region))
	optFns = append(optFns, config.WithRequestChecksumCalculation(0))
	optFns = append(optFns, config.WithResponseChecksumValidation(0))

	// Static credentials take precedence over the default chain
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, cfg.Session),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(), optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK configuration: %w", err)
	}

	s3Options := s3.Options{
		Region:      cfg.Region,
		Credentials: awsCfg.Credentials,
	}
	if cfg.Endpoint != "" {
		s3Options.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	client := s3.New(s3Options)

	return &S3Client{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucketName: cfg.BucketName,
	}, nil
}

// Upload puts the file into the bucket and returns a presigned GET URL
// valid for req.ExpireAfter seconds
func (s *S3Client) Upload(ctx context.Context, req upload.Request) (string, error) {
	objectKey := util.ObjectKey(req.File.Filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(req.File.Data),
		ContentType: aws.String(req.MimeType),
		// No public ACL, many S3 compatible services reject it
	})
	if err != nil {
		return "", upload.TransportError(ctx, "failed to upload file to S3", err)
	}

	presignedReq, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpireAfter) * time.Second
	})
	if err != nil {
		return "", upload.TransportError(ctx, "failed to generate presigned URL", err)
	}

	return presignedReq.URL, nil
}
