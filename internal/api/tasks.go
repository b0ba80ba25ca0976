package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetTasks returns all tasks visible to the authenticated user.
// Handles pagination automatically, fetching all pages.
func (c *Client) GetTasks(ctx context.Context) ([]Task, error) {
	allTasks := make([]Task, 0)
	query := url.Values{}
	query.Set("limit", strconv.Itoa(DefaultPageSize))

	for {
		var response PaginatedResponse[Task]
		if err := c.GetWithQuery(ctx, "/tasks", query, &response); err != nil {
			return nil, fmt.Errorf("failed to get tasks: %w", err)
		}

		allTasks = append(allTasks, response.Results...)

		if response.NextCursor == nil || *response.NextCursor == "" {
			break
		}
		query.Set("cursor", *response.NextCursor)
	}

	return allTasks, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req TaskInput) (*Task, error) {
	var t Task
	if err := c.Post(ctx, "/tasks", req, &t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &t, nil
}

// UpdateTask overwrites the editable fields of an existing task.
func (c *Client) UpdateTask(ctx context.Context, id string, req TaskInput) (*Task, error) {
	var t Task
	if err := c.Post(ctx, "/tasks/"+url.PathEscape(id), req, &t); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return &t, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/tasks/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}
