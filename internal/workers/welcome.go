package workers

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-dev/campus/internal/models"
	"github.com/campus-dev/campus/internal/tasks"
)

// HandleWelcomeEmail sends the post-registration welcome email.
// Delivery is logged only; SMTP wiring is deployment-specific.
func HandleWelcomeEmail(ctx context.Context, task *asynq.Task, db *gorm.DB, log zerolog.Logger) error {
	payload, err := tasks.ParseWelcomeEmailPayload(task)
	if err != nil {
		return err
	}

	var user models.User
	if err := models.FindByID(db, payload.UserID, &user); err != nil {
		// User deleted between enqueue and processing; nothing to send
		log.Warn().Str("user_id", payload.UserID).Msg("Welcome email skipped, user not found")
		return nil
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("Welcome email dispatched")

	return nil
}
