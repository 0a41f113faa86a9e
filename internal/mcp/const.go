package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	Name = "file-uploader-mcp"

	UploadFileToolName = "upload_file"
	ArgFilePath        = "file_path"
	ArgExpireAfter     = "expire_after"
)

// NewUploadFileTool describes the upload_file tool for the given minimum expiration
func NewUploadFileTool(minExpireAfter int64) mcp.Tool {
	return mcp.NewTool(
		UploadFileToolName,
		mcp.WithDescription("Upload a file to storage and get a URL. Automatically detects MIME type from file extension. This is a temporary storage, files will be deleted after some time. Use this tool when users mention local file paths or need online access to their files."),
		mcp.WithString(ArgFilePath, mcp.Description("Path to the file to upload"), mcp.Required()),
		mcp.WithNumber(ArgExpireAfter,
			mcp.Description(fmt.Sprintf("Seconds until the file expires and is deleted (minimum: %d, default: %d)", minExpireAfter, minExpireAfter)),
			mcp.Min(float64(minExpireAfter)),
		),
	)
}
