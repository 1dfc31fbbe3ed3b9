package dto

import (
	"time"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

// AssignmentCreateRequest is the multipart form payload for new assignments.
// Dates arrive as RFC 3339 strings because the body is form-encoded.
type AssignmentCreateRequest struct {
	Title      string `form:"title" validate:"required,min=1,max=255"`
	CourseName string `form:"course_name" validate:"required,min=1,max=255"`
	Year       string `form:"year" validate:"omitempty,max=16"`
	Department string `form:"department" validate:"omitempty,max=16"`
	Section    string `form:"section" validate:"required,oneof=A B C D E F"`
	StartDate  string `form:"start_date" validate:"required"`
	DueDate    string `form:"due_date" validate:"required"`
}

// AssignmentUpdateRequest mutates an assignment; nil fields are untouched.
type AssignmentUpdateRequest struct {
	Title      *string `form:"title" validate:"omitempty,min=1,max=255"`
	CourseName *string `form:"course_name" validate:"omitempty,min=1,max=255"`
	Section    *string `form:"section" validate:"omitempty,oneof=A B C D E F"`
	StartDate  *string `form:"start_date"`
	DueDate    *string `form:"due_date"`
}

// QuizCreateRequest is the multipart form payload for new quizzes.
type QuizCreateRequest struct {
	Title      string  `form:"title" validate:"required,min=1,max=255"`
	CourseName string  `form:"course_name" validate:"required,min=1,max=255"`
	Year       string  `form:"year" validate:"omitempty,max=16"`
	Department string  `form:"department" validate:"omitempty,max=16"`
	Section    string  `form:"section" validate:"required,oneof=A B C D E F"`
	StartDate  string  `form:"start_date" validate:"required"`
	DueDate    string  `form:"due_date" validate:"required"`
	Marks      float64 `form:"marks" validate:"required,gt=0"`
}

// QuizUpdateRequest mutates a quiz; nil fields are untouched.
type QuizUpdateRequest struct {
	Title      *string  `form:"title" validate:"omitempty,min=1,max=255"`
	CourseName *string  `form:"course_name" validate:"omitempty,min=1,max=255"`
	Section    *string  `form:"section" validate:"omitempty,oneof=A B C D E F"`
	StartDate  *string  `form:"start_date"`
	DueDate    *string  `form:"due_date"`
	Marks      *float64 `form:"marks" validate:"omitempty,gt=0"`
}

// CreatorLite summarizes the authoring teacher on coursework views.
type CreatorLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssignmentResponse is returned to API clients when viewing assignments.
type AssignmentResponse struct {
	ID         uint        `json:"id"`
	Title      string      `json:"title"`
	CourseName string      `json:"course_name"`
	Year       string      `json:"year"`
	Department string      `json:"department"`
	Section    string      `json:"section"`
	StartDate  time.Time   `json:"start_date"`
	DueDate    time.Time   `json:"due_date"`
	FileURL    string      `json:"file_url"`
	FileName   string      `json:"file_name"`
	FileType   string      `json:"file_type"`
	CreatedBy  CreatorLite `json:"created_by"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// QuizResponse is returned to API clients when viewing quizzes.
type QuizResponse struct {
	ID         uint        `json:"id"`
	Title      string      `json:"title"`
	CourseName string      `json:"course_name"`
	Year       string      `json:"year"`
	Department string      `json:"department"`
	Section    string      `json:"section"`
	StartDate  time.Time   `json:"start_date"`
	DueDate    time.Time   `json:"due_date"`
	Marks      float64     `json:"marks"`
	FileURL    string      `json:"file_url"`
	FileName   string      `json:"file_name"`
	FileType   string      `json:"file_type"`
	CreatedBy  CreatorLite `json:"created_by"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:         model.ID,
		Title:      model.Title,
		CourseName: model.CourseName,
		Year:       model.Year,
		Department: model.Department,
		Section:    model.Section,
		StartDate:  model.StartDate,
		DueDate:    model.DueDate,
		FileURL:    model.FileURL,
		FileName:   model.FileName,
		FileType:   model.FileType,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}

	if model.CreatedBy.ID != 0 {
		response.CreatedBy = CreatorLite{ID: model.CreatedBy.ID, Name: model.CreatedBy.Name, Email: model.CreatedBy.Email}
	} else {
		response.CreatedBy = CreatorLite{ID: model.CreatedByID}
	}

	return response
}

// NewAssignmentResponseSlice converts assignment models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}

// NewQuizResponse converts a Quiz model into a DTO.
func NewQuizResponse(model models.Quiz) QuizResponse {
	response := QuizResponse{
		ID:         model.ID,
		Title:      model.Title,
		CourseName: model.CourseName,
		Year:       model.Year,
		Department: model.Department,
		Section:    model.Section,
		StartDate:  model.StartDate,
		DueDate:    model.DueDate,
		Marks:      model.Marks,
		FileURL:    model.FileURL,
		FileName:   model.FileName,
		FileType:   model.FileType,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}

	if model.CreatedBy.ID != 0 {
		response.CreatedBy = CreatorLite{ID: model.CreatedBy.ID, Name: model.CreatedBy.Name, Email: model.CreatedBy.Email}
	} else {
		response.CreatedBy = CreatorLite{ID: model.CreatedByID}
	}

	return response
}

// NewQuizResponseSlice converts quiz models into DTOs.
func NewQuizResponseSlice(quizzes []models.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz))
	}
	return responses
}
