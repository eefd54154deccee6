package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"teamtask/internal/model"
)

// Returned when the store answers a write with 404: the record behind the
// submitted id no longer exists. Callers match with errors.Is.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assignee not found")
)

// Actions understood by the task store endpoint.
const (
	actionCreate         = "create"
	actionUpdate         = "update"
	actionDelete         = "delete"
	actionCreateAssignee = "createAssignee"
	actionUpdateAssignee = "updateAssignee"
	actionDeleteAssignee = "deleteAssignee"
)

// Client talks to the remote task store: GET lists records (a "type" query
// switches between tasks and assignees), POST carries an action-keyed JSON
// body. Writes are sent as text/plain because the scripted endpoint rejects
// preflighted content types.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type request struct {
	Action   string          `json:"action"`
	Task     *model.Task     `json:"task,omitempty"`
	Assignee *model.Assignee `json:"assignee,omitempty"`
	ID       string          `json:"id,omitempty"`
}

type response struct {
	Task     *model.Task     `json:"task"`
	Assignee *model.Assignee `json:"assignee"`
	Error    string          `json:"error"`
}

// ListTasks fetches every task. A response that is not a JSON array (the
// endpoint returns an empty object for a blank sheet) yields an empty slice.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	body, err := c.get(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	if !looksLikeArray(body) {
		return []model.Task{}, nil
	}
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, fmt.Errorf("decoding task list: %w", err)
	}
	return tasks, nil
}

// ListAssignees fetches every assignee.
func (c *Client) ListAssignees(ctx context.Context) ([]model.Assignee, error) {
	body, err := c.get(ctx, c.baseURL+"?type=assignees")
	if err != nil {
		return nil, err
	}

	var assignees []model.Assignee
	if !looksLikeArray(body) {
		return []model.Assignee{}, nil
	}
	if err := json.Unmarshal(body, &assignees); err != nil {
		return nil, fmt.Errorf("decoding assignee list: %w", err)
	}
	return assignees, nil
}

// SaveTask creates or updates a task depending on whether it carries an id,
// and returns the record as the store saved it.
func (c *Client) SaveTask(ctx context.Context, task model.Task) (*model.Task, error) {
	action := actionUpdate
	if task.IsNew() {
		action = actionCreate
	}

	resp, err := c.post(ctx, request{Action: action, Task: &task})
	if err != nil {
		return nil, err
	}
	if resp.Task == nil {
		return nil, fmt.Errorf("store response for %q carried no task", action)
	}
	return resp.Task, nil
}

// DeleteTask removes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.post(ctx, request{Action: actionDelete, ID: id})
	return err
}

// SaveAssignee creates or updates an assignee.
func (c *Client) SaveAssignee(ctx context.Context, assignee model.Assignee) (*model.Assignee, error) {
	action := actionUpdateAssignee
	if assignee.IsNew() {
		action = actionCreateAssignee
	}

	resp, err := c.post(ctx, request{Action: action, Assignee: &assignee})
	if err != nil {
		return nil, err
	}
	if resp.Assignee == nil {
		return nil, fmt.Errorf("store response for %q carried no assignee", action)
	}
	return resp.Assignee, nil
}

// DeleteAssignee removes the assignee with the given id.
func (c *Client) DeleteAssignee(ctx context.Context, id string) error {
	_, err := c.post(ctx, request{Action: actionDeleteAssignee, ID: id})
	return err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) post(ctx context.Context, payload request) (*response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %q request: %w", payload.Action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded response
	if resp.StatusCode == http.StatusNotFound {
		return nil, notFoundError(payload.Action)
	}
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(respBody, &decoded) == nil && decoded.Error != "" {
			return nil, fmt.Errorf("store error: %s", decoded.Error)
		}
		return nil, fmt.Errorf("store returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decoding %q response: %w", payload.Action, err)
	}
	return &decoded, nil
}

func notFoundError(action string) error {
	switch action {
	case actionCreateAssignee, actionUpdateAssignee, actionDeleteAssignee:
		return ErrAssigneeNotFound
	default:
		return ErrTaskNotFound
	}
}

func looksLikeArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
