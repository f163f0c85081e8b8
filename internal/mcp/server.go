// Package mcp provides an MCP (Model Context Protocol) server that exposes
// clockfill's planning and filling engine as tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsandoval/clockfill/internal/core"
	"github.com/jsandoval/clockfill/internal/integration"
	"github.com/jsandoval/clockfill/pkg/models"
)

// Server wraps the clockfill services and exposes them as MCP tools.
type Server struct {
	server *gomcp.Server
	client integration.ClockifyClient
	runner core.ScheduleRunner
	cfg    *models.Config
}

// NewServer creates a new MCP server over the given client, runner, and
// loaded configuration.
func NewServer(client integration.ClockifyClient, runner core.ScheduleRunner, cfg *models.Config, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		client: client,
		runner: runner,
		cfg:    cfg,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "clockfill", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type weekInput struct {
	StartDate      string `json:"start_date,omitempty" jsonschema:"start of the range in YYYY-MM-DD form (default: this week's Monday)"`
	EndDate        string `json:"end_date,omitempty" jsonschema:"end of the range in YYYY-MM-DD form (default: Friday of the start week)"`
	AnalyzeHistory bool   `json:"analyze_history,omitempty" jsonschema:"seed descriptions from the last 60 days of recorded entries"`
}

type slotOutput struct {
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
	Outcome     string `json:"outcome"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

type weekOutput struct {
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Created   int          `json:"created"`
	Skipped   int          `json:"skipped"`
	Previewed int          `json:"previewed"`
	Failed    int          `json:"failed"`
	Slots     []slotOutput `json:"slots"`
}

type listProjectsInput struct {
	Archived bool `json:"archived,omitempty" jsonschema:"include archived projects"`
}

type projectOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"client_name,omitempty"`
}

type listProjectsOutput struct {
	Projects []projectOutput `json:"projects"`
	Count    int             `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "plan_week",
		Description: "Plan time entries for a date range without creating anything: shows which slots would be skipped as duplicates and the generated description for the rest.",
	}, s.handlePlanWeek)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "fill_week",
		Description: "Create time entries for a date range from the configured schedule, skipping days that already have entries.",
	}, s.handleFillWeek)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_projects",
		Description: "List the projects in the configured Clockify workspace with their IDs.",
	}, s.handleListProjects)
}

// --- Tool handlers ---

func (s *Server) handlePlanWeek(_ context.Context, _ *gomcp.CallToolRequest, input weekInput) (*gomcp.CallToolResult, weekOutput, error) {
	return s.runWeek(input, true)
}

func (s *Server) handleFillWeek(_ context.Context, _ *gomcp.CallToolRequest, input weekInput) (*gomcp.CallToolResult, weekOutput, error) {
	return s.runWeek(input, false)
}

func (s *Server) handleListProjects(_ context.Context, _ *gomcp.CallToolRequest, input listProjectsInput) (*gomcp.CallToolResult, listProjectsOutput, error) {
	projects, err := s.client.Projects(input.Archived)
	if err != nil {
		return errorResult(fmt.Sprintf("listing projects: %s", err)), listProjectsOutput{}, nil
	}

	out := listProjectsOutput{
		Projects: make([]projectOutput, len(projects)),
		Count:    len(projects),
	}
	for i, p := range projects {
		out.Projects[i] = projectOutput{
			ID:         p.ID,
			Name:       p.Name,
			ClientName: p.ClientName,
		}
	}

	return nil, out, nil
}

// runWeek is the shared body of plan_week and fill_week; the only difference
// between the two tools is the dry-run flag.
func (s *Server) runWeek(input weekInput, dryRun bool) (*gomcp.CallToolResult, weekOutput, error) {
	start, end, err := core.ResolveRange(input.StartDate, input.EndDate, time.Now())
	if err != nil {
		return errorResult(err.Error()), weekOutput{}, nil
	}

	queryStart, queryEnd := core.DayBounds(start, end)
	existing, err := s.client.TimeEntries(queryStart, queryEnd, "")
	if err != nil {
		return errorResult(fmt.Sprintf("fetching existing entries: %s", err)), weekOutput{}, nil
	}
	index := core.BuildEntryIndex(existing)

	var history []models.RecordedEntry
	if input.AnalyzeHistory {
		history, err = s.client.TimeEntries(start.AddDate(0, 0, -core.HistoryLookbackDays), start, "")
		if err != nil {
			return errorResult(fmt.Sprintf("fetching entry history: %s", err)), weekOutput{}, nil
		}
	}

	summary := s.runner.Run(start, end, s.cfg.Schedule, s.cfg.DayStartHour, index, core.RunOptions{
		DryRun:  dryRun,
		History: history,
	})

	out := weekOutput{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Created:   summary.Created,
		Skipped:   summary.Skipped,
		Previewed: summary.Previewed,
		Failed:    summary.Failed,
		Slots:     make([]slotOutput, len(summary.Results)),
	}
	for i, result := range summary.Results {
		out.Slots[i] = slotToOutput(result)
	}

	return nil, out, nil
}

// --- Helpers ---

func slotToOutput(result models.SlotResult) slotOutput {
	out := slotOutput{
		Date:        result.Slot.Date(),
		Start:       result.Slot.Start.Format("15:04"),
		End:         result.Slot.End.Format("15:04"),
		ProjectID:   result.Slot.ProjectID,
		ProjectName: result.Slot.ProjectName,
		Outcome:     string(result.Outcome),
		Description: result.Description,
	}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
