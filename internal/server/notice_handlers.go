package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-dev/campus/internal/models"
)

// CreateNoticeRequest represents a notice posting request
type CreateNoticeRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// CreateExamRequest represents an exam scheduling request
type CreateExamRequest struct {
	CourseID    string     `json:"course_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// @Summary List notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notice
// @Router /api/notices [get]
func (s *Server) listNotices(c *gin.Context) {
	var notices []models.Notice
	err := s.db.Preload("CreatedBy").Order("created_at DESC").Find(&notices).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list notices")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, notices)
}

// @Summary Post notice
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Notice
// @Router /api/notices [post]
func (s *Server) createNotice(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var req CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice := &models.Notice{
		Title:       req.Title,
		Body:        req.Body,
		CreatedByID: sessionData.UserID,
	}

	if err := s.db.Create(notice).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create notice")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notice"})
		return
	}

	s.logger.Info().Str("notice_id", notice.ID).Str("created_by", sessionData.UserID).Msg("Notice posted")

	c.JSON(http.StatusCreated, notice)
}

// @Summary List exams
// @Description Exams for courses the current user is enrolled in (all exams for admins)
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Exam
// @Router /api/exams [get]
func (s *Server) listExams(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	query := s.db.Preload("Course").Order("scheduled_at ASC")
	if sessionData.Role != models.RoleAdmin {
		query = query.
			Joins("JOIN enrollments ON enrollments.course_id = exams.course_id").
			Where("enrollments.user_id = ?", sessionData.UserID)
	}

	var exams []models.Exam
	if err := query.Find(&exams).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list exams")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, exams)
}

// @Summary Schedule exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Exam
// @Router /api/exams [post]
func (s *Server) createExam(c *gin.Context) {
	var req CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course models.Course
	if err := models.FindByID(s.db, req.CourseID, &course); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	exam := &models.Exam{
		CourseID:    course.ID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
	}

	if err := s.db.Create(exam).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create exam")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exam"})
		return
	}

	c.JSON(http.StatusCreated, exam)
}
