package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-dev/campus/internal/models"
)

// CourseProgress summarizes a student's progress within one course
type CourseProgress struct {
	CourseID         string  `json:"course_id"`
	CourseTitle      string  `json:"course_title"`
	TotalLessons     int64   `json:"total_lessons"`
	CompletedLessons int64   `json:"completed_lessons"`
	Percent          float64 `json:"percent"`
}

// @Summary Enroll in course
// @Description Enrolls the current user. Enrolling twice is a no-op.
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Enrollment
// @Failure 404 {object} map[string]interface{}
// @Router /api/courses/{id}/enroll [post]
func (s *Server) enrollCourse(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var course models.Course
	if err := models.FindByID(s.db, c.Param("id"), &course); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if !course.Published && sessionData.Role != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var existing models.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", sessionData.UserID, course.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if err != gorm.ErrRecordNotFound {
		s.logger.Error().Err(err).Msg("Failed to check enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	enrollment := &models.Enrollment{
		UserID:   sessionData.UserID,
		CourseID: course.ID,
	}

	if err := s.db.Create(enrollment).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		return
	}

	s.logger.Info().Str("user_id", sessionData.UserID).Str("course_id", course.ID).Msg("User enrolled")

	c.JSON(http.StatusCreated, enrollment)
}

// @Summary List my courses
// @Description Courses the current user is enrolled in
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Enrollment
// @Router /api/my-courses [get]
func (s *Server) listMyCourses(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var enrollments []models.Enrollment
	err := s.db.Preload("Course").
		Where("user_id = ?", sessionData.UserID).
		Order("created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list enrollments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// @Summary Complete lesson
// @Description Marks a lesson as completed by the current user. Idempotent.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.LessonProgress
// @Failure 404 {object} map[string]interface{}
// @Router /api/lessons/{id}/complete [post]
func (s *Server) completeLesson(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var lesson models.Lesson
	if err := models.FindByID(s.db, c.Param("id"), &lesson); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var existing models.LessonProgress
	err := s.db.Where("user_id = ? AND lesson_id = ?", sessionData.UserID, lesson.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if err != gorm.ErrRecordNotFound {
		s.logger.Error().Err(err).Msg("Failed to check lesson progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	progress := &models.LessonProgress{
		UserID:      sessionData.UserID,
		LessonID:    lesson.ID,
		CompletedAt: time.Now().UTC(),
	}

	if err := s.db.Create(progress).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to record lesson progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}

	c.JSON(http.StatusCreated, progress)
}

// @Summary Journey
// @Description Per-course progress summary for the current user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CourseProgress
// @Router /api/journey [get]
func (s *Server) getJourney(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var enrollments []models.Enrollment
	err := s.db.Preload("Course").
		Where("user_id = ?", sessionData.UserID).
		Order("created_at ASC").
		Find(&enrollments).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list enrollments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	journey := make([]CourseProgress, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var total int64
		err := s.db.Model(&models.Lesson{}).
			Joins("JOIN modules ON modules.id = lessons.module_id").
			Where("modules.course_id = ?", enrollment.CourseID).
			Count(&total).Error
		if err != nil {
			s.logger.Error().Err(err).Str("course_id", enrollment.CourseID).Msg("Failed to count lessons")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		var completed int64
		err = s.db.Model(&models.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
			Joins("JOIN modules ON modules.id = lessons.module_id").
			Where("modules.course_id = ? AND lesson_progresses.user_id = ?", enrollment.CourseID, sessionData.UserID).
			Count(&completed).Error
		if err != nil {
			s.logger.Error().Err(err).Str("course_id", enrollment.CourseID).Msg("Failed to count progress")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		percent := 0.0
		if total > 0 {
			percent = float64(completed) / float64(total) * 100
		}

		journey = append(journey, CourseProgress{
			CourseID:         enrollment.CourseID,
			CourseTitle:      enrollment.Course.Title,
			TotalLessons:     total,
			CompletedLessons: completed,
			Percent:          percent,
		})
	}

	c.JSON(http.StatusOK, journey)
}
