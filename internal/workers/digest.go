package workers

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-dev/campus/internal/models"
)

// userCompletion is one row of the nightly digest aggregation
type userCompletion struct {
	UserID    string
	Email     string
	Completed int64
}

// HandleProgressDigest aggregates lesson completions per user and logs the
// digest. Runs nightly, scheduled by the worker's cron loop.
func HandleProgressDigest(ctx context.Context, task *asynq.Task, db *gorm.DB, log zerolog.Logger) error {
	var rows []userCompletion
	err := db.Model(&models.LessonProgress{}).
		Select("users.id AS user_id, users.email AS email, COUNT(lesson_progresses.id) AS completed").
		Joins("JOIN users ON users.id = lesson_progresses.user_id").
		Group("users.id, users.email").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		log.Info().
			Str("user_id", row.UserID).
			Str("email", row.Email).
			Int64("completed_lessons", row.Completed).
			Msg("Progress digest")
	}

	log.Info().Int("users", len(rows)).Msg("Progress digest complete")

	return nil
}
