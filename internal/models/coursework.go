package models

import "time"

// Coursework file types accepted for assignment and quiz hand-outs.
const (
	FileTypePDF  = "pdf"
	FileTypeDOCX = "docx"
)

// Assignment is a piece of coursework published by a teacher for one section.
// Year and Department carry hierarchy codes rather than foreign keys because
// the student feed matches them against the roll-number components.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CourseName  string    `gorm:"size:255;not null" json:"course_name"`
	Year        string    `gorm:"size:16;index" json:"year"`
	Department  string    `gorm:"size:16;index" json:"department"`
	Section     string    `gorm:"size:4;not null;index" json:"section"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	FileURL     string    `gorm:"size:512" json:"file_url"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	FileType    string    `gorm:"size:8" json:"file_type"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   Account   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Quiz mirrors Assignment with an additional marks total.
type Quiz struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CourseName  string    `gorm:"size:255;not null" json:"course_name"`
	Year        string    `gorm:"size:16;index" json:"year"`
	Department  string    `gorm:"size:16;index" json:"department"`
	Section     string    `gorm:"size:4;not null;index" json:"section"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	Marks       float64   `gorm:"not null" json:"marks"`
	FileURL     string    `gorm:"size:512" json:"file_url"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	FileType    string    `gorm:"size:8" json:"file_type"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   Account   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
