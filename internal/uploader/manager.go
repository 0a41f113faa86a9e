package uploader

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sjzar/file-uploader-mcp/internal/config"
	"github.com/sjzar/file-uploader-mcp/internal/mcp"
	"github.com/sjzar/file-uploader-mcp/internal/storage"
)

type Manager struct {
	storage *storage.Service
	mcp     *mcp.Service
}

func New(cfg *config.Config) *Manager {
	svc := storage.NewService(cfg)
	return &Manager{
		storage: svc,
		mcp:     mcp.NewService(svc),
	}
}

func (m *Manager) ServeStdio() error {
	return server.ServeStdio(m.mcp.Server)
}

func (m *Manager) NewSSEServer() *server.SSEServer {
	return server.NewSSEServer(m.mcp.Server)
}
