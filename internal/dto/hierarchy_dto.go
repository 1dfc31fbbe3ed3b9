package dto

import (
	"time"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

// YearCreateRequest creates an academic year.
type YearCreateRequest struct {
	Code  string `json:"code" validate:"required,min=2,max=16"`
	Label string `json:"label" validate:"required,min=2,max=255"`
}

// YearUpdateRequest mutates an academic year.
type YearUpdateRequest struct {
	Code  *string `json:"code" validate:"omitempty,min=2,max=16"`
	Label *string `json:"label" validate:"omitempty,min=2,max=255"`
}

// DepartmentCreateRequest creates a department under a year.
type DepartmentCreateRequest struct {
	Code   string `json:"code" validate:"required,min=2,max=16"`
	Label  string `json:"label" validate:"required,min=2,max=255"`
	YearID uint   `json:"year_id" validate:"required,gt=0"`
}

// DepartmentUpdateRequest mutates a department.
type DepartmentUpdateRequest struct {
	Code  *string `json:"code" validate:"omitempty,min=2,max=16"`
	Label *string `json:"label" validate:"omitempty,min=2,max=255"`
}

// SectionCreateRequest creates a lettered section under a department.
type SectionCreateRequest struct {
	Code         string `json:"code" validate:"required,oneof=A B C D E F"`
	DepartmentID uint   `json:"department_id" validate:"required,gt=0"`
}

// YearResponse serializes a year.
type YearResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// DepartmentResponse serializes a department with its sections.
type DepartmentResponse struct {
	ID        uint              `json:"id"`
	Code      string            `json:"code"`
	Label     string            `json:"label"`
	YearID    uint              `json:"year_id"`
	Sections  []SectionResponse `json:"sections,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// SectionResponse serializes a section.
type SectionResponse struct {
	ID           uint      `json:"id"`
	Code         string    `json:"code"`
	DepartmentID uint      `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewYearResponse converts a year model.
func NewYearResponse(model models.Year) YearResponse {
	return YearResponse{ID: model.ID, Code: model.Code, Label: model.Label, CreatedAt: model.CreatedAt}
}

// NewYearResponseSlice converts year models.
func NewYearResponseSlice(years []models.Year) []YearResponse {
	responses := make([]YearResponse, 0, len(years))
	for _, year := range years {
		responses = append(responses, NewYearResponse(year))
	}
	return responses
}

// NewDepartmentResponse converts a department model.
func NewDepartmentResponse(model models.Department) DepartmentResponse {
	response := DepartmentResponse{
		ID:        model.ID,
		Code:      model.Code,
		Label:     model.Label,
		YearID:    model.YearID,
		CreatedAt: model.CreatedAt,
	}
	for _, section := range model.Sections {
		response.Sections = append(response.Sections, NewSectionResponse(section))
	}
	return response
}

// NewDepartmentResponseSlice converts department models.
func NewDepartmentResponseSlice(departments []models.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, NewDepartmentResponse(department))
	}
	return responses
}

// NewSectionResponse converts a section model.
func NewSectionResponse(model models.Section) SectionResponse {
	return SectionResponse{ID: model.ID, Code: model.Code, DepartmentID: model.DepartmentID, CreatedAt: model.CreatedAt}
}

// NewSectionResponseSlice converts section models.
func NewSectionResponseSlice(sections []models.Section) []SectionResponse {
	responses := make([]SectionResponse, 0, len(sections))
	for _, section := range sections {
		responses = append(responses, NewSectionResponse(section))
	}
	return responses
}
