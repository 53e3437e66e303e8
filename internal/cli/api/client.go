// Package api is the portal's HTTP client for the Campus backend. Every
// request attaches the stored session token as a bearer credential when one
// is present; when the store is empty the Authorization header is omitted
// entirely, never sent blank.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/campus-dev/campus/internal/cli/session"
)

// Client represents an HTTP client for the Campus API
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
}

// New creates a new API client reading credentials from the given store
func New(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store: store,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// StatusError is returned for any non-2xx response so callers can classify
// the failure by HTTP status
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (status %d)", e.StatusCode)
}

// do performs one request against the backend, attaching the bearer token
// when the session store holds one, and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token, present := c.store.Get(); present {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &StatusError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// User is the identity record resolved from GET /me
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Suspended bool   `json:"suspended,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Course represents a course in the catalog
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Published   bool     `json:"published"`
	Modules     []Module `json:"modules,omitempty"`
}

// Module groups lessons within a course
type Module struct {
	ID       string   `json:"id"`
	CourseID string   `json:"course_id"`
	Title    string   `json:"title"`
	Position int      `json:"position"`
	Lessons  []Lesson `json:"lessons,omitempty"`
}

// Lesson is a single unit of course content
type Lesson struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// Enrollment links the current user to a course
type Enrollment struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Course   Course `json:"course,omitzero"`
}

// CourseProgress summarizes progress within one course
type CourseProgress struct {
	CourseID         string  `json:"course_id"`
	CourseTitle      string  `json:"course_title"`
	TotalLessons     int64   `json:"total_lessons"`
	CompletedLessons int64   `json:"completed_lessons"`
	Percent          float64 `json:"percent"`
}

// Notice is an announcement posted by an administrator
type Notice struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	CreatedBy *User  `json:"created_by,omitempty"`
}

// Exam represents a scheduled assessment
type Exam struct {
	ID          string  `json:"id"`
	CourseID    string  `json:"course_id"`
	Title       string  `json:"title"`
	ScheduledAt *string `json:"scheduled_at"`
	Course      Course  `json:"course,omitzero"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the user and returns a session token. The token is
// not stored; saving it is the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", RegisterRequest{Name: name, Email: email, Password: password}, nil)
}

// Me resolves the identity behind the stored token. This is the guard's
// validation round trip.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Courses returns the course catalog
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Course returns one course with its modules and lessons
func (c *Client) Course(ctx context.Context, id string) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+id, nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Enroll enrolls the current user in a course
func (c *Client) Enroll(ctx context.Context, courseID string) (*Enrollment, error) {
	var enrollment Enrollment
	if err := c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/enroll", nil, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// MyCourses returns the current user's enrollments
func (c *Client) MyCourses(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.do(ctx, http.MethodGet, "/api/my-courses", nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// CompleteLesson marks a lesson as completed
func (c *Client) CompleteLesson(ctx context.Context, lessonID string) error {
	return c.do(ctx, http.MethodPost, "/api/lessons/"+lessonID+"/complete", nil, nil)
}

// Journey returns the per-course progress summary
func (c *Client) Journey(ctx context.Context) ([]CourseProgress, error) {
	var journey []CourseProgress
	if err := c.do(ctx, http.MethodGet, "/api/journey", nil, &journey); err != nil {
		return nil, err
	}
	return journey, nil
}

// Notices returns all announcements
func (c *Client) Notices(ctx context.Context) ([]Notice, error) {
	var notices []Notice
	if err := c.do(ctx, http.MethodGet, "/api/notices", nil, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// Exams returns upcoming exams for the current user
func (c *Client) Exams(ctx context.Context) ([]Exam, error) {
	var exams []Exam
	if err := c.do(ctx, http.MethodGet, "/api/exams", nil, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// CreateCoursePayload is the admin course creation payload
type CreateCoursePayload struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// UpdateCoursePayload is the admin partial course update payload
type UpdateCoursePayload struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// CreateModulePayload is the admin module creation payload
type CreateModulePayload struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// CreateLessonPayload is the admin lesson creation payload
type CreateLessonPayload struct {
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// CreateNoticePayload is the admin notice posting payload
type CreateNoticePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateCourse creates a course (admin only)
func (c *Client) CreateCourse(ctx context.Context, payload CreateCoursePayload) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse updates a course (admin only)
func (c *Client) UpdateCourse(ctx context.Context, id string, payload UpdateCoursePayload) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodPut, "/api/courses/"+id, payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse deletes a course (admin only)
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+id, nil, nil)
}

// CreateModule adds a module to a course (admin only)
func (c *Client) CreateModule(ctx context.Context, courseID string, payload CreateModulePayload) (*Module, error) {
	var module Module
	if err := c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/modules", payload, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// DeleteModule deletes a module (admin only)
func (c *Client) DeleteModule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/modules/"+id, nil, nil)
}

// CreateLesson adds a lesson to a module (admin only)
func (c *Client) CreateLesson(ctx context.Context, moduleID string, payload CreateLessonPayload) (*Lesson, error) {
	var lesson Lesson
	if err := c.do(ctx, http.MethodPost, "/api/modules/"+moduleID+"/lessons", payload, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// DeleteLesson deletes a lesson (admin only)
func (c *Client) DeleteLesson(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/lessons/"+id, nil, nil)
}

// CreateNotice posts an announcement (admin only)
func (c *Client) CreateNotice(ctx context.Context, payload CreateNoticePayload) (*Notice, error) {
	var notice Notice
	if err := c.do(ctx, http.MethodPost, "/api/notices", payload, &notice); err != nil {
		return nil, err
	}
	return &notice, nil
}

// Users lists all accounts (admin only)
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SuspendUser toggles suspension on an account (admin only)
func (c *Client) SuspendUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/api/users/"+id+"/suspend", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SystemMetrics holds host metrics reported by the server
type SystemMetrics struct {
	CPUCount        int     `json:"cpu_count"`
	MemoryTotalGB   float64 `json:"memory_total_gb"`
	MemoryUsedGB    float64 `json:"memory_used_gb"`
	MemoryFreeGB    float64 `json:"memory_free_gb"`
	DiskTotalGB     float64 `json:"disk_total_gb"`
	DiskUsedGB      float64 `json:"disk_used_gb"`
	DiskAvailableGB float64 `json:"disk_available_gb"`
	DiskUsedPercent float64 `json:"disk_used_percent"`
}

// SystemStatus is the server's health snapshot for operators
type SystemStatus struct {
	Version string        `json:"version"`
	Metrics SystemMetrics `json:"metrics"`
}

// System returns the server's host metrics (admin only)
func (c *Client) System(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.do(ctx, http.MethodGet, "/api/system", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
