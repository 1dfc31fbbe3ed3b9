package models

import "time"

// Submission statuses.
const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusSubmitted = "submitted"
)

// Submission records a student's hand-in for an assignment. The compound
// unique index guarantees at most one row per (assignment, student) pair so
// resubmission is an update, never a duplicate.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"student_id"`
	FileURL      string     `gorm:"size:512" json:"submission_file_url"`
	FileName     string     `gorm:"size:255" json:"submission_file_name"`
	FileType     string     `gorm:"size:8" json:"submission_file_type"`
	Status       string     `gorm:"size:16;not null;default:pending" json:"status"`
	SubmittedAt  *time.Time `json:"submitted_at"`
	Student      Account    `json:"student,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// QuizSubmission mirrors Submission for quizzes.
type QuizSubmission struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	QuizID      uint       `gorm:"not null;uniqueIndex:idx_quiz_submissions_quiz_student" json:"quiz_id"`
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_quiz_submissions_quiz_student" json:"student_id"`
	FileURL     string     `gorm:"size:512" json:"submission_file_url"`
	FileName    string     `gorm:"size:255" json:"submission_file_name"`
	FileType    string     `gorm:"size:8" json:"submission_file_type"`
	Status      string     `gorm:"size:16;not null;default:pending" json:"status"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Student     Account    `json:"student,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
