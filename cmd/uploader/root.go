package uploader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sjzar/file-uploader-mcp/internal/config"
	"github.com/sjzar/file-uploader-mcp/internal/uploader"
	"github.com/sjzar/file-uploader-mcp/pkg/version"
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "debug")
	rootCmd.PersistentFlags().IntVar(&SSEPort, "sse-port", 0, "sse port")
	rootCmd.PersistentPreRun = initLog
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("command execution failed")
		os.Exit(1)
	}
}

var SSEPort int

var rootCmd = &cobra.Command{
	Use:           "file-uploader-mcp",
	Short:         "File Uploader MCP Server",
	Long:          `File Uploader MCP Server: uploads local files to temporary storage and returns expiring URLs`,
	Example:       `OAP_CLIENT_KEY=... file-uploader-mcp`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: Root,
}

func Root(cmd *cobra.Command, args []string) error {

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m := uploader.New(cfg)

	if SSEPort > 0 {
		server := m.NewSSEServer()
		defer func() { _ = server.Shutdown(context.Background()) }()
		log.Info().Msgf("SSE server started on port %d", SSEPort)
		if err := server.Start(fmt.Sprintf(":%d", SSEPort)); err != nil {
			return fmt.Errorf("failed to start SSE server: %w", err)
		}
		return nil
	}

	if err := m.ServeStdio(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
