package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ats-assistant-be/pkg/assistant"
	"ats-assistant-be/pkg/ats"
	"ats-assistant-be/pkg/jsonx"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "serve the assistant as an MCP tool over stdio",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := newSession()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		defer sess.close()

		s := server.NewMCPServer("ats-assistant", version)
		registerAssistantTool(s, sess.engine.Dispatcher)

		if err := server.ServeStdio(s); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			return err
		}
		return nil
	},
}

type toolAnswer struct {
	Rule     string             `json:"rule"`
	Response assistant.Response `json:"response"`
}

func registerAssistantTool(s *server.MCPServer, dispatcher *assistant.Dispatcher) {
	tool := mcp.NewTool("ats_assistant",
		mcp.WithDescription("Ask the ATS assistant about jobs, candidates, applications, interviews and clients. Returns the matched rule and the structured answer."),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"message": map[string]interface{}{"type": "string", "description": "The question, as a recruiter would type it"},
			"token":   map[string]interface{}{"type": "string", "description": "Bearer token for the ATS backend (optional)"},
		},
		Required: []string{"message"},
	}

	s.AddTool(tool, assistantToolHandler(dispatcher))
}

func assistantToolHandler(dispatcher *assistant.Dispatcher) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		message, _ := args["message"].(string)
		if strings.TrimSpace(message) == "" {
			return mcp.NewToolResultError("missing required field: message"), nil
		}

		token := tokenFlag
		if v, ok := args["token"].(string); ok && strings.TrimSpace(v) != "" {
			token = strings.TrimSpace(v)
		}
		if token != "" {
			ctx = ats.WithToken(ctx, token)
		}

		rule, resp := dispatcher.Answer(ctx, message)
		out, err := jsonx.MarshalToString(toolAnswer{Rule: rule, Response: resp})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to encode answer: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
