package upload

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInferMimeType_Known(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":      "image/jpeg",
		"PHOTO.JPEG":     "image/jpeg",
		"diagram.png":    "image/png",
		"paper.pdf":      "application/pdf",
		"readme.txt":     "text/plain",
		"data.json":      "application/json",
		"clip.mp4":       "video/mp4",
		"archive.tar.gz": "application/gzip",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, InferMimeType(name))
		})
	}
}

func TestInferMimeType_FallbackWarns(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })

	for _, name := range []string{"Makefile", "blob.unknownext42", "trailingdot."} {
		buf.Reset()

		assert.Equal(t, FallbackMimeType, InferMimeType(name))
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), name)
	}
}

func TestInferMimeType_Deterministic(t *testing.T) {
	assert.Equal(t, InferMimeType("a.webp"), InferMimeType("b.webp"))
}
