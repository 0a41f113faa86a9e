package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sjzar/file-uploader-mcp/internal/storage"
	"github.com/sjzar/file-uploader-mcp/pkg/version"
)

// UploadOutput is the tool's success payload
type UploadOutput struct {
	URL string `json:"url"`
}

type Service struct {
	storage *storage.Service
	Server  *server.MCPServer
}

func NewService(storage *storage.Service) *Service {
	s := &Service{
		storage: storage,
		Server:  server.NewMCPServer(Name, version.Version),
	}
	s.Server.AddTool(NewUploadFileTool(storage.MinExpireAfter), s.handleUploadFile)
	return s
}

// handleUploadFile reports pipeline failures as tool errors, not protocol errors,
// so the calling agent sees the message
func (s *Service) handleUploadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, expireAfter, err := parseUploadArgs(request.Params.Arguments)
	if err != nil {
		return toolError(err), nil
	}

	url, err := s.storage.UploadFile(ctx, path, expireAfter)
	if err != nil {
		return toolError(err), nil
	}

	out, err := json.Marshal(UploadOutput{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool output: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func parseUploadArgs(args map[string]interface{}) (string, *int64, error) {
	path, ok := args[ArgFilePath].(string)
	if !ok || path == "" {
		return "", nil, fmt.Errorf("%s must be a non-empty string", ArgFilePath)
	}

	raw, present := args[ArgExpireAfter]
	if !present || raw == nil {
		return path, nil, nil
	}
	n, ok := raw.(float64)
	if !ok || n != math.Trunc(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
		return "", nil, fmt.Errorf("%s must be a whole number of seconds", ArgExpireAfter)
	}
	expireAfter := int64(n)
	return path, &expireAfter, nil
}

func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}
