package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hy4ri/daycal/internal/task"
)

// mockServer creates a test HTTP server for mocking API responses.
func mockServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

func strPtr(s string) *string {
	return &s
}

func TestNewClient(t *testing.T) {
	client := NewClient("https://tasks.example.com/v1/", "test-token")

	if client.accessToken != "test-token" {
		t.Errorf("expected token %q, got %q", "test-token", client.accessToken)
	}

	if client.baseURL != "https://tasks.example.com/v1" {
		t.Errorf("unexpected base URL: %s", client.baseURL)
	}
}

func TestGetTasks(t *testing.T) {
	tests := []struct {
		name       string
		pages      []PaginatedResponse[Task]
		statusCode int
		wantCount  int
		wantErr    bool
	}{
		{
			name: "single page",
			pages: []PaginatedResponse[Task]{
				{Results: []Task{{ID: "1", Title: "Dentist", Date: strPtr("2025-03-20")}}},
			},
			statusCode: http.StatusOK,
			wantCount:  1,
		},
		{
			name: "follows cursor",
			pages: []PaginatedResponse[Task]{
				{Results: []Task{{ID: "1", Title: "a"}}, NextCursor: strPtr("page-2")},
				{Results: []Task{{ID: "2", Title: "b"}, {ID: "3", Title: "c"}}},
			},
			statusCode: http.StatusOK,
			wantCount:  3,
		},
		{
			name:       "unauthorized",
			pages:      []PaginatedResponse[Task]{{}},
			statusCode: http.StatusUnauthorized,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				if r.URL.Path != "/tasks" {
					t.Errorf("expected path /tasks, got %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("expected Bearer token, got %q", got)
				}

				page := 0
				if r.URL.Query().Get("cursor") == "page-2" {
					page = 1
				}

				w.WriteHeader(tt.statusCode)
				json.NewEncoder(w).Encode(tt.pages[page])
			})
			defer server.Close()

			client := NewClient(server.URL, "test-token")
			tasks, err := client.GetTasks(context.Background())

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				apiErr, ok := IsAPIError(err)
				if !ok || !apiErr.IsUnauthorized() {
					t.Errorf("expected unauthorized APIError, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tasks) != tt.wantCount {
				t.Errorf("expected %d tasks, got %d", tt.wantCount, len(tasks))
			}
		})
	}
}

func TestCreateTask(t *testing.T) {
	var received map[string]interface{}

	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}

		json.NewEncoder(w).Encode(Task{ID: "new-1", Title: "Walk", Unplanned: true})
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	fields := task.Fields{Title: "Walk"}.Normalize()

	created, err := client.CreateTask(context.Background(), NewTaskInput(fields))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "new-1" {
		t.Errorf("expected id new-1, got %q", created.ID)
	}

	if received["title"] != "Walk" {
		t.Errorf("expected title Walk, got %v", received["title"])
	}
	if v, ok := received["date"]; !ok || v != nil {
		t.Errorf("expected null date, got %v (present=%v)", v, ok)
	}
	if received["unplanned"] != true {
		t.Errorf("expected unplanned=true, got %v", received["unplanned"])
	}
}

func TestUpdateTask(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/abc" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var in TaskInput
		json.NewDecoder(r.Body).Decode(&in)
		if in.StartTime != nil || !in.AllDay {
			t.Errorf("expected all-day input without start time, got %+v", in)
		}

		json.NewEncoder(w).Encode(Task{ID: "abc", Title: in.Title, AllDay: in.AllDay, Date: in.Date})
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	fields := task.Fields{Title: "Trip", Date: "2025-05-01", AllDay: true, StartTime: "08:00"}.Normalize()

	updated, err := client.UpdateTask(context.Background(), "abc", NewTaskInput(fields))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ToTask().Date != "2025-05-01" {
		t.Errorf("unexpected date %q", updated.ToTask().Date)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE request, got %s", r.Method)
		}
		http.Error(w, "no such task", http.StatusNotFound)
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	err := client.DeleteTask(context.Background(), "missing")

	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("expected 404, got %d", apiErr.StatusCode)
	}
}

func TestToTaskLegacyTimes(t *testing.T) {
	wire := Task{
		ID:        "1",
		Title:     "Standup",
		Date:      strPtr("2025-03-20"),
		FromTime:  strPtr("09:00"),
		ToTime:    strPtr("09:15"),
		Unplanned: true,
		CreatedAt: "2025-03-01T10:00:00Z",
	}

	got := wire.ToTask()
	if got.StartTime != "09:00" || got.EndTime != "09:15" {
		t.Errorf("expected legacy times to be used, got %q - %q", got.StartTime, got.EndTime)
	}
	if got.Unplanned {
		t.Error("expected a dated record not to be unplanned")
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be parsed")
	}
}

func TestAPIErrorMessages(t *testing.T) {
	err := &APIError{StatusCode: 503}
	if !err.IsServerError() {
		t.Error("expected 503 to be a server error")
	}
	if err.Error() != "API error (status 503)" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if (&APIError{StatusCode: 429}).IsRateLimited() != true {
		t.Error("expected 429 to be rate limited")
	}
}
