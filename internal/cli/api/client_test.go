package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus-dev/campus/internal/cli/session"
)

func TestClient_AttachesBearerTokenWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: "u-1"})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemoryWithToken("tok-1"))

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_OmitsAuthorizationHeaderWhenAbsent(t *testing.T) {
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		json.NewEncoder(w).Encode(LoginResponse{Token: "fresh"})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	token, err := client.Login(context.Background(), "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "fresh" {
		t.Errorf("expected token %q, got %q", "fresh", token)
	}
	if hadHeader {
		t.Error("Authorization header must be omitted, not sent empty")
	}
}

func TestClient_NonOKStatusBecomesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Account suspended"})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	_, err := client.Login(context.Background(), "ana@example.com", "secret123")
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", statusErr.StatusCode)
	}
	if statusErr.Message != "Account suspended" {
		t.Errorf("expected server message to be carried, got %q", statusErr.Message)
	}
}

func TestClient_TransportErrorIsNotStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(url, session.NewMemoryWithToken("tok"))

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("expected a transport error")
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("transport failures must not look like HTTP status failures: %v", err)
	}
}

func TestClient_CoursePathsAndDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/courses":
			json.NewEncoder(w).Encode([]Course{{ID: "c-1", Title: "Go basics", Slug: "go-basics"}})
		case "/api/courses/c-1/enroll":
			if r.Method != http.MethodPost {
				t.Errorf("unexpected method for enroll: %s", r.Method)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Enrollment{ID: "e-1", CourseID: "c-1"})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemoryWithToken("tok"))

	courses, err := client.Courses(context.Background())
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	if len(courses) != 1 || courses[0].Slug != "go-basics" {
		t.Errorf("unexpected catalog: %+v", courses)
	}

	enrollment, err := client.Enroll(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if enrollment.CourseID != "c-1" {
		t.Errorf("unexpected enrollment: %+v", enrollment)
	}
}
