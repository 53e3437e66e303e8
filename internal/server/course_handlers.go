package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-dev/campus/internal/models"
)

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
}

// CreateModuleRequest represents a module creation request
type CreateModuleRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

// UpdateModuleRequest represents a partial module update
type UpdateModuleRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

// CreateLessonRequest represents a lesson creation request
type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"video_url"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// UpdateLessonRequest represents a partial lesson update
type UpdateLessonRequest struct {
	Title    *string `json:"title"`
	VideoURL *string `json:"video_url"`
	Content  *string `json:"content"`
	Position *int    `json:"position"`
}

// @Summary List courses
// @Description Catalog listing. Students see published courses only, admins see everything.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course
// @Router /api/courses [get]
func (s *Server) listCourses(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	query := s.db.Order("created_at DESC")
	if sessionData == nil || sessionData.Role != models.RoleAdmin {
		query = query.Where("published = ?", true)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list courses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, courses)
}

// @Summary Get course
// @Description Course detail with ordered modules and lessons
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Course
// @Failure 404 {object} map[string]interface{}
// @Router /api/courses/{id} [get]
func (s *Server) getCourse(c *gin.Context) {
	var course models.Course
	err := s.db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", c.Param("id")).
		First(&course).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	sessionData, _ := GetSessionData(c)
	if !course.Published && (sessionData == nil || sessionData.Role != models.RoleAdmin) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Course
// @Router /api/courses [post]
func (s *Server) createCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.validator.Var(req.Slug, "slug"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must contain only lowercase letters, digits and hyphens"})
		return
	}

	course := &models.Course{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Published:   req.Published,
	}

	if err := s.db.Create(course).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	s.logger.Info().Str("course_id", course.ID).Str("slug", course.Slug).Msg("Course created")

	c.JSON(http.StatusCreated, course)
}

// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Course
// @Router /api/courses/{id} [put]
func (s *Server) updateCourse(c *gin.Context) {
	var course models.Course
	if err := models.FindByID(s.db, c.Param("id"), &course); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := s.db.Save(&course).Error; err != nil {
		s.logger.Error().Err(err).Str("course_id", course.ID).Msg("Failed to update course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Summary Delete course
// @Tags courses
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/courses/{id} [delete]
func (s *Server) deleteCourse(c *gin.Context) {
	var course models.Course
	if err := models.FindByID(s.db, c.Param("id"), &course); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if err := s.db.Delete(&course).Error; err != nil {
		s.logger.Error().Err(err).Str("course_id", course.ID).Msg("Failed to delete course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	s.logger.Info().Str("course_id", course.ID).Msg("Course deleted")

	c.JSON(http.StatusOK, gin.H{"deleted": course.ID})
}

// @Summary Create module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Module
// @Router /api/courses/{id}/modules [post]
func (s *Server) createModule(c *gin.Context) {
	var course models.Course
	if err := models.FindByID(s.db, c.Param("id"), &course); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var req CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module := &models.Module{
		CourseID: course.ID,
		Title:    req.Title,
		Position: req.Position,
	}

	if err := s.db.Create(module).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create module")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create module"})
		return
	}

	c.JSON(http.StatusCreated, module)
}

// @Summary Update module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Module
// @Router /api/modules/{id} [put]
func (s *Server) updateModule(c *gin.Context) {
	var module models.Module
	if err := models.FindByID(s.db, c.Param("id"), &module); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	var req UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Position != nil {
		module.Position = *req.Position
	}

	if err := s.db.Save(&module).Error; err != nil {
		s.logger.Error().Err(err).Str("module_id", module.ID).Msg("Failed to update module")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update module"})
		return
	}

	c.JSON(http.StatusOK, module)
}

// @Summary Delete module
// @Tags modules
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/modules/{id} [delete]
func (s *Server) deleteModule(c *gin.Context) {
	var module models.Module
	if err := models.FindByID(s.db, c.Param("id"), &module); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	if err := s.db.Delete(&module).Error; err != nil {
		s.logger.Error().Err(err).Str("module_id", module.ID).Msg("Failed to delete module")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete module"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": module.ID})
}

// @Summary Create lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Lesson
// @Router /api/modules/{id}/lessons [post]
func (s *Server) createLesson(c *gin.Context) {
	var module models.Module
	if err := models.FindByID(s.db, c.Param("id"), &module); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := &models.Lesson{
		ModuleID: module.ID,
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Content:  req.Content,
		Position: req.Position,
	}

	if err := s.db.Create(lesson).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// @Summary Update lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Lesson
// @Router /api/lessons/{id} [put]
func (s *Server) updateLesson(c *gin.Context) {
	var lesson models.Lesson
	if err := models.FindByID(s.db, c.Param("id"), &lesson); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}
	if req.Position != nil {
		lesson.Position = *req.Position
	}

	if err := s.db.Save(&lesson).Error; err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to update lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// @Summary Delete lesson
// @Tags lessons
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/lessons/{id} [delete]
func (s *Server) deleteLesson(c *gin.Context) {
	var lesson models.Lesson
	if err := models.FindByID(s.db, c.Param("id"), &lesson); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if err := s.db.Delete(&lesson).Error; err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to delete lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": lesson.ID})
}
