package clickup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task/abc123" {
			t.Errorf("path = %s, want /task/abc123", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "pk_test" {
			t.Errorf("Authorization header = %q, want %q", got, "pk_test")
		}
		fmt.Fprint(w, `{
			"id": "abc123",
			"name": "Add login page",
			"text_content": "Implement the login page with OAuth.",
			"description": "short",
			"status": {"status": "in progress", "color": "#4194f6", "type": "custom"},
			"url": "https://app.clickup.com/t/abc123"
		}`)
	}))
	defer server.Close()

	client := NewClient("pk_test", WithBaseURL(server.URL))

	task, err := client.GetTask(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if task == nil {
		t.Fatal("GetTask() = nil, want task")
	}
	if task.ID != "abc123" || task.Name != "Add login page" {
		t.Errorf("GetTask() = %+v", task)
	}
	if task.TextContent != "Implement the login page with OAuth." {
		t.Errorf("TextContent = %q", task.TextContent)
	}
	if task.Status.Status != "in progress" {
		t.Errorf("Status.Status = %q, want %q", task.Status.Status, "in progress")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"err": "Task not found", "ECODE": "ITEM_013"}`)
	}))
	defer server.Close()

	client := NewClient("pk_test", WithBaseURL(server.URL))

	task, err := client.GetTask(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetTask() error = %v, want nil for missing task", err)
	}
	if task != nil {
		t.Errorf("GetTask() = %+v, want nil", task)
	}
}

func TestGetTaskServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("pk_test", WithBaseURL(server.URL))

	if _, err := client.GetTask(context.Background(), "abc123"); err == nil {
		t.Error("GetTask() error = nil, want error on 500")
	}
}

func TestGetTaskEmptyID(t *testing.T) {
	client := NewClient("pk_test")

	task, err := client.GetTask(context.Background(), "   ")
	if err != nil || task != nil {
		t.Errorf("GetTask(blank) = (%+v, %v), want (nil, nil)", task, err)
	}
}
