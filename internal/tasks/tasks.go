package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TypeWelcomeEmail   = "email:welcome"
	TypeProgressDigest = "progress:digest"
)

// WelcomeEmailPayload carries the recipient of a welcome email
type WelcomeEmailPayload struct {
	UserID string `json:"user_id"`
}

// NewWelcomeEmailTask creates a task to send a welcome email after registration
func NewWelcomeEmailTask(userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeWelcomeEmail, payload), nil
}

// NewProgressDigestTask creates a task that aggregates lesson completion per user
func NewProgressDigestTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeProgressDigest, nil), nil
}

// ParseWelcomeEmailPayload parses a welcome email payload from an Asynq task
func ParseWelcomeEmailPayload(task *asynq.Task) (WelcomeEmailPayload, error) {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}
