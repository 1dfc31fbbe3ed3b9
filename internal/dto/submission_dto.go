package dto

import (
	"time"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

// SubmitterLite summarizes a student on submission roster views.
type SubmitterLite struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number,omitempty"`
	Section    string `json:"section,omitempty"`
}

// SubmissionResponse is returned when viewing a hand-in. A never-submitted
// item yields the synthetic pending shape with a zero ID.
type SubmissionResponse struct {
	ID          uint          `json:"id,omitempty"`
	ItemID      uint          `json:"item_id,omitempty"`
	StudentID   uint          `json:"student_id,omitempty"`
	FileURL     string        `json:"submission_file_url,omitempty"`
	FileName    string        `json:"submission_file_name,omitempty"`
	FileType    string        `json:"submission_file_type,omitempty"`
	Status      string        `json:"status"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
	Student     SubmitterLite `json:"student,omitempty"`
}

// PendingSubmissionResponse is the placeholder returned when no hand-in exists.
func PendingSubmissionResponse() SubmissionResponse {
	return SubmissionResponse{Status: models.SubmissionStatusPending}
}

// NewSubmissionResponse converts an assignment submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:          model.ID,
		ItemID:      model.AssignmentID,
		StudentID:   model.StudentID,
		FileURL:     model.FileURL,
		FileName:    model.FileName,
		FileType:    model.FileType,
		Status:      model.Status,
		SubmittedAt: model.SubmittedAt,
	}
	if model.Student.ID != 0 {
		response.Student = newSubmitterLite(model.Student)
	}
	return response
}

// NewSubmissionResponseSlice converts assignment submission models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}

// NewQuizSubmissionResponse converts a quiz submission model into a DTO.
func NewQuizSubmissionResponse(model models.QuizSubmission) SubmissionResponse {
	response := SubmissionResponse{
		ID:          model.ID,
		ItemID:      model.QuizID,
		StudentID:   model.StudentID,
		FileURL:     model.FileURL,
		FileName:    model.FileName,
		FileType:    model.FileType,
		Status:      model.Status,
		SubmittedAt: model.SubmittedAt,
	}
	if model.Student.ID != 0 {
		response.Student = newSubmitterLite(model.Student)
	}
	return response
}

// NewQuizSubmissionResponseSlice converts quiz submission models into DTOs.
func NewQuizSubmissionResponseSlice(submissions []models.QuizSubmission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewQuizSubmissionResponse(submission))
	}
	return responses
}

func newSubmitterLite(account models.Account) SubmitterLite {
	lite := SubmitterLite{
		ID:      account.ID,
		Name:    account.Name,
		Email:   account.Email,
		Section: account.Section,
	}
	if account.RollNumber != nil {
		lite.RollNumber = *account.RollNumber
	}
	return lite
}

// UploadResponse reports the stored location of an uploaded image.
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}
