package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// User roles. Role is a free-form string on the wire but only these two
// values are ever written by the server.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents a portal account (student or administrator)
type User struct {
	BaseModel
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	Role         string    `json:"role" gorm:"not null;default:student"`
	Suspended    bool      `json:"suspended" gorm:"not null;default:false"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Course represents a published or draft course
type Course struct {
	BaseModel
	Title       string `json:"title" gorm:"not null"`
	Slug        string `json:"slug" gorm:"unique;not null"`
	Description string `json:"description" gorm:"type:text"`
	Published   bool   `json:"published" gorm:"not null;default:false"`

	// Relationships
	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Module groups lessons within a course, ordered by Position
type Module struct {
	BaseModel
	CourseID string `json:"course_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null"`
	Position int    `json:"position" gorm:"not null;default:0"`

	// Relationships
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}

// Lesson is a single unit of course content, ordered within its module
type Lesson struct {
	BaseModel
	ModuleID string `json:"module_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null"`
	VideoURL string `json:"video_url"`
	Content  string `json:"content" gorm:"type:text"`
	Position int    `json:"position" gorm:"not null;default:0"`
}

// Enrollment links a student to a course. One enrollment per user+course.
type Enrollment struct {
	BaseModel
	UserID   string `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID string `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`

	// Relationships
	Course Course `json:"course,omitzero" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// LessonProgress marks a lesson as completed by a user
type LessonProgress struct {
	BaseModel
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID    string    `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null"`
}

// Notice is an announcement posted by an administrator
type Notice struct {
	BaseModel
	Title       string `json:"title" gorm:"not null"`
	Body        string `json:"body" gorm:"type:text"`
	CreatedByID string `json:"created_by_id" gorm:"not null"`

	// Relationships
	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:SET NULL"`
}

// Exam represents a scheduled assessment attached to a course
type Exam struct {
	BaseModel
	CourseID    string     `json:"course_id" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	ScheduledAt *time.Time `json:"scheduled_at"`

	// Relationships
	Course Course `json:"course,omitzero" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Course{}, &Module{}, &Lesson{},
		&Enrollment{}, &LessonProgress{}, &Notice{}, &Exam{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}

// FindByIDWithPreload finds a record by ID with preloading
func FindByIDWithPreload[T any](db *gorm.DB, id string, model *T, preloads ...string) error {
	query := db
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	return query.Where("id = ?", id).First(model).Error
}
