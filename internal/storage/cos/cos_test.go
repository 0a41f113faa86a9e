package cos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketURL(t *testing.T) {
	cfg := COSConfig{BucketName: "files", AppID: "1250000000", Region: "ap-guangzhou", UseHTTPS: true}
	assert.Equal(t, "https://files-1250000000.cos.ap-guangzhou.myqcloud.com", BucketURL(cfg))

	cfg.UseHTTPS = false
	assert.Equal(t, "http://files-1250000000.cos.ap-guangzhou.myqcloud.com", BucketURL(cfg))

	cfg.UseAccelerate = true
	assert.Equal(t, "https://files-1250000000.cos.accelerate.myqcloud.com", BucketURL(cfg))
}

func TestNewCOSClient(t *testing.T) {
	_, err := NewCOSClient(COSConfig{Region: "ap-guangzhou"})
	assert.Error(t, err)

	c, err := NewCOSClient(COSConfig{BucketName: "files", AppID: "1250000000", Region: "ap-guangzhou", UseHTTPS: true})
	assert.NoError(t, err)
	assert.NotNil(t, c)
}
