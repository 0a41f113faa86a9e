package upload

import (
	"github.com/rs/zerolog/log"

	"github.com/sjzar/file-uploader-mcp/pkg/util"
)

// FallbackMimeType is used when the extension gives no content type
const FallbackMimeType = "application/octet-stream"

// InferMimeType maps filename's extension to a MIME type.
// Unknown or missing extensions are not an error: a warning is logged and
// FallbackMimeType is returned.
func InferMimeType(filename string) string {
	if ct, ok := util.LookupContentType(filename); ok {
		return ct
	}
	log.Warn().Str("filename", filename).Msgf("could not detect MIME type, using %s", FallbackMimeType)
	return FallbackMimeType
}
