package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/valueprop"
	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/wizard"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SummaryURI is the resource holding the plain-text summary.
const SummaryURI = "valueprop://summary"

// Server exposes a Wizard as an MCP server.
type Server struct {
	wizard    *valueprop.Wizard
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(w *valueprop.Wizard, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		wizard:    w,
		mcpServer: server.NewMCPServer("valueprop-mcp", strings.TrimSpace(valueprop.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the active wizard step, progress and all answers."),
	), s.handleGetState)

	s.mcpServer.AddTool(mcp.NewTool("update_data",
		mcp.WithDescription("Merge answers into the session. Only the fields present are replaced."),
		mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with any of the answer fields, e.g. {\"audience\":\"CTOs\"}")),
	), s.handleUpdateData)

	s.mcpServer.AddTool(mcp.NewTool("add_item",
		mcp.WithDescription("Append an entry to a list answer. Blank entries are ignored."),
		mcp.WithString("field", mcp.Required(), mcp.Description("List field name"),
			mcp.Enum(listFieldNames()...)),
		mcp.WithString("value", mcp.Required(), mcp.Description("Entry text")),
	), s.handleAddItem)

	s.mcpServer.AddTool(mcp.NewTool("remove_item",
		mcp.WithDescription("Remove the entry at a zero-based position from a list answer."),
		mcp.WithString("field", mcp.Required(), mcp.Description("List field name"),
			mcp.Enum(listFieldNames()...)),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position")),
	), s.handleRemoveItem)

	s.mcpServer.AddTool(mcp.NewTool("set_step",
		mcp.WithDescription("Jump to a wizard step. Values outside 1..5 are clamped."),
		mcp.WithNumber("step", mcp.Required(), mcp.Description("Step number")),
	), s.handleSetStep)

	s.mcpServer.AddTool(mcp.NewTool("next_step",
		mcp.WithDescription("Advance one step. On the last step, pass complete=true to finish the wizard."),
		mcp.WithBoolean("complete", mcp.Description("Mark the session complete when on the last step")),
	), s.handleNextStep)

	s.mcpServer.AddTool(mcp.NewTool("prev_step",
		mcp.WithDescription("Go back one step."),
	), s.handlePrevStep)

	s.mcpServer.AddTool(mcp.NewTool("reset",
		mcp.WithDescription("Discard every answer and return to the first step."),
	), s.handleReset)

	s.mcpServer.AddTool(mcp.NewTool("compose_summary",
		mcp.WithDescription("Render the plain-text value proposition summary."),
	), s.handleComposeSummary)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SummaryURI, "Value Proposition Summary",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      SummaryURI,
				MIMEType: "text/plain",
				Text:     compose.Summary(s.wizard.Store.Data()),
			},
		}, nil
	})
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return viewResult(s.wizard.Sequencer.Current())
}

func (s *Server) handleUpdateData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var p domain.Patch
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid data: %v", err)), nil
	}
	if p, err = wizard.SanitizePatch(p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.wizard.Store.UpdateData(ctx, p)
	return viewResult(s.wizard.Sequencer.Current())
}

func (s *Server) handleAddItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := wizard.SanitizeEntry(request.GetString("value", ""))
	if err != nil && !errors.Is(err, domain.ErrEmptyEntry) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	added, err := s.wizard.Store.AddItem(ctx, domain.Field(field), value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !added {
		return mcp.NewToolResultText("ignored blank entry"), nil
	}
	return viewResult(s.wizard.Sequencer.Current())
}

func (s *Server) handleRemoveItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := request.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.wizard.Store.RemoveItem(ctx, domain.Field(field), index); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return viewResult(s.wizard.Sequencer.Current())
}

func (s *Server) handleSetStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	step, err := request.RequireInt("step")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return viewResult(s.wizard.Sequencer.Jump(ctx, step))
}

func (s *Server) handleNextStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if request.GetBool("complete", false) {
		if !s.wizard.Sequencer.Finish(ctx) {
			return mcp.NewToolResultError("the wizard can only be completed from the last step"), nil
		}
		return viewResult(s.wizard.Sequencer.Current())
	}
	return viewResult(s.wizard.Sequencer.Next(ctx))
}

func (s *Server) handlePrevStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return viewResult(s.wizard.Sequencer.Back(ctx))
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.wizard.Store.Reset(ctx)
	return viewResult(s.wizard.Sequencer.Current())
}

func (s *Server) handleComposeSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(compose.Summary(s.wizard.Store.Data())), nil
}

func viewResult(v wizard.View) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode view: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func listFieldNames() []string {
	var names []string
	for _, f := range domain.Fields {
		if f.IsList() {
			names = append(names, string(f))
		}
	}
	return names
}
