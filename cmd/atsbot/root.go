package main

import (
	"context"
	"fmt"

	"ats-assistant-be/internal/bootstrap"
	"ats-assistant-be/internal/config"
	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/pkg/ats"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var tokenFlag string

var rootCmd = &cobra.Command{
	Use:     "atsbot",
	Short:   "ATS assistant from the terminal",
	Version: version,
	Long: `Talk to the ATS assistant without the web widget. The same rules answer
here as in the chat API, against the ATS backend configured in .env.`,
	Example: `  # One question
  $ atsbot ask "how many candidates are shortlisted"

  # Interactive session
  $ atsbot chat

  # Serve the assistant as an MCP tool over stdio
  $ atsbot mcp`,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "bearer token for the ATS backend (default: ATS_API_TOKEN)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(mcpCmd)
}

// session is the engine plus the logger it writes to. The CLI logs to file
// only so stdout stays usable for answers and the MCP stream.
type session struct {
	engine *bootstrap.Engine
	log    logger.ILogger
}

func newSession() (*session, error) {
	cfg := config.Load()
	log := logger.NewFileLogger(cfg.App.LogFilePath)

	engine, err := bootstrap.NewEngine(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to start assistant: %w", err)
	}
	return &session{engine: engine, log: log}, nil
}

func (s *session) close() {
	s.engine.Close()
	s.log.Sync()
}

func (s *session) answer(ctx context.Context, text string) string {
	if tokenFlag != "" {
		ctx = ats.WithToken(ctx, tokenFlag)
	}
	rule, resp := s.engine.Dispatcher.Answer(ctx, text)
	s.log.Debug("CLI", "Answered", map[string]interface{}{"rule": rule})
	return render(resp)
}
