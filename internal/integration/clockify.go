// Package integration provides the Clockify REST API client used by
// clockfill. Only the endpoints the planner needs are covered: user lookup,
// workspace and project listing, time-entry queries, and entry creation.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jsandoval/clockfill/pkg/models"
)

// defaultBaseURL is the public Clockify API endpoint.
const defaultBaseURL = "https://api.clockify.me/api/v1"

// maxPageSize is the largest page Clockify allows on time-entry queries.
// Ranges with more entries than this must page; clockfill's weekly ranges
// stay well under it.
const maxPageSize = 500

// timestampFormat is the ISO-8601 UTC second-precision form Clockify
// exchanges, with a literal Z suffix.
const timestampFormat = "2006-01-02T15:04:05Z"

// APIError is returned when Clockify responds with a non-success status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clockify API returned status %d: %s", e.StatusCode, e.Body)
}

// ClockifyClient is the transport boundary between clockfill and the remote
// service. All calls are blocking and perform no retries.
type ClockifyClient interface {
	CurrentUser() (*models.User, error)
	Workspaces() ([]models.Workspace, error)
	Projects(archived bool) ([]models.Project, error)
	TimeEntries(start, end time.Time, projectID string) ([]models.RecordedEntry, error)
	CreateTimeEntry(start, end time.Time, projectID, description string, billable bool) (*models.RecordedEntry, error)
}

// ClientConfig holds the values needed to construct a client.
type ClientConfig struct {
	APIKey      string
	WorkspaceID string

	// BaseURL overrides the public API endpoint; used by tests.
	BaseURL string
}

// clockifyClient implements ClockifyClient over net/http.
type clockifyClient struct {
	baseURL     string
	apiKey      string
	workspaceID string
	client      *http.Client

	// userID caches the current user's ID after the first /user call.
	userID string
}

// NewClockifyClient creates a client for the given workspace.
func NewClockifyClient(cfg ClientConfig) ClockifyClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &clockifyClient{
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		workspaceID: cfg.WorkspaceID,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// CurrentUser fetches the authenticated user and caches its ID for
// time-entry queries.
func (c *clockifyClient) CurrentUser() (*models.User, error) {
	var user models.User
	if err := c.get("/user", nil, &user); err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	c.userID = user.ID
	return &user, nil
}

// Workspaces lists the workspaces the user belongs to.
func (c *clockifyClient) Workspaces() ([]models.Workspace, error) {
	var workspaces []models.Workspace
	if err := c.get("/workspaces", nil, &workspaces); err != nil {
		return nil, fmt.Errorf("fetching workspaces: %w", err)
	}
	return workspaces, nil
}

// Projects lists the projects in the configured workspace.
func (c *clockifyClient) Projects(archived bool) ([]models.Project, error) {
	params := url.Values{}
	params.Set("archived", strconv.FormatBool(archived))

	var projects []models.Project
	path := fmt.Sprintf("/workspaces/%s/projects", c.workspaceID)
	if err := c.get(path, params, &projects); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	return projects, nil
}

// timeEntryPayload mirrors Clockify's time-entry JSON shape.
type timeEntryPayload struct {
	ID           string `json:"id,omitempty"`
	ProjectID    string `json:"projectId"`
	Description  string `json:"description"`
	TimeInterval struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"timeInterval"`
}

// TimeEntries fetches the current user's entries within [start, end].
// projectID, when non-empty, narrows the query to one project.
func (c *clockifyClient) TimeEntries(start, end time.Time, projectID string) ([]models.RecordedEntry, error) {
	userID, err := c.currentUserID()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("start", formatTimestamp(start))
	params.Set("end", formatTimestamp(end))
	params.Set("page-size", strconv.Itoa(maxPageSize))
	if projectID != "" {
		params.Set("project", projectID)
	}

	var payload []timeEntryPayload
	path := fmt.Sprintf("/workspaces/%s/user/%s/time-entries", c.workspaceID, userID)
	if err := c.get(path, params, &payload); err != nil {
		return nil, fmt.Errorf("fetching time entries: %w", err)
	}

	entries := make([]models.RecordedEntry, len(payload))
	for i, p := range payload {
		entries[i] = models.RecordedEntry{
			ProjectID:   p.ProjectID,
			Start:       p.TimeInterval.Start,
			Description: p.Description,
		}
	}
	return entries, nil
}

// CreateTimeEntry creates a new entry in the workspace.
func (c *clockifyClient) CreateTimeEntry(start, end time.Time, projectID, description string, billable bool) (*models.RecordedEntry, error) {
	body := map[string]interface{}{
		"start":       formatTimestamp(start),
		"end":         formatTimestamp(end),
		"projectId":   projectID,
		"description": description,
		"billable":    billable,
		"type":        "REGULAR",
	}

	var created timeEntryPayload
	path := fmt.Sprintf("/workspaces/%s/time-entries", c.workspaceID)
	if err := c.post(path, body, &created); err != nil {
		return nil, fmt.Errorf("creating time entry: %w", err)
	}

	return &models.RecordedEntry{
		ProjectID:   created.ProjectID,
		Start:       created.TimeInterval.Start,
		Description: created.Description,
	}, nil
}

// currentUserID returns the cached user ID, fetching it on first use.
func (c *clockifyClient) currentUserID() (string, error) {
	if c.userID != "" {
		return c.userID, nil
	}
	user, err := c.CurrentUser()
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (c *clockifyClient) get(path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *clockifyClient) post(path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *clockifyClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// formatTimestamp renders a timestamp the way Clockify expects: UTC, second
// precision, literal Z suffix.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}
