package version

// Version is overridden at build time with -ldflags "-X github.com/sjzar/file-uploader-mcp/pkg/version.Version=..."
var Version = "0.1.0"
