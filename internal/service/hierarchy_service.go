package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

var (
	// ErrYearNotFound indicates the year id does not exist.
	ErrYearNotFound = errors.New("year not found")
	// ErrDepartmentNotFound indicates the department id does not exist.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrSectionNotFound indicates the section id does not exist.
	ErrSectionNotFound = errors.New("section not found")
	// ErrYearCodeTaken indicates a duplicate year code.
	ErrYearCodeTaken = errors.New("year code already exists")
	// ErrDepartmentCodeTaken indicates a duplicate department code.
	ErrDepartmentCodeTaken = errors.New("department code already exists")
	// ErrSectionExists indicates the department already holds that letter.
	ErrSectionExists = errors.New("section already exists for this department")
	// ErrYearInUse rejects deleting a year that still has departments.
	ErrYearInUse = errors.New("year still has departments and cannot be deleted")
	// ErrDepartmentInUse rejects deleting a department that still has sections.
	ErrDepartmentInUse = errors.New("department still has sections and cannot be deleted")
)

// HierarchyService manages the Year -> Department -> Section tree.
type HierarchyService interface {
	ListYears(ctx context.Context) ([]dto.YearResponse, error)
	CreateYear(ctx context.Context, payload dto.YearCreateRequest) (dto.YearResponse, error)
	UpdateYear(ctx context.Context, id uint, payload dto.YearUpdateRequest) (dto.YearResponse, error)
	DeleteYear(ctx context.Context, id uint) error

	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	CreateDepartment(ctx context.Context, payload dto.DepartmentCreateRequest) (dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id uint, payload dto.DepartmentUpdateRequest) (dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id uint) error

	ListSections(ctx context.Context) ([]dto.SectionResponse, error)
	ListSectionsByDepartment(ctx context.Context, departmentID uint) ([]dto.SectionResponse, error)
	CreateSection(ctx context.Context, payload dto.SectionCreateRequest) (dto.SectionResponse, error)
	DeleteSection(ctx context.Context, id uint) error
}

type hierarchyService struct {
	years       repository.YearRepository
	departments repository.DepartmentRepository
	sections    repository.SectionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewHierarchyService constructs a HierarchyService instance.
func NewHierarchyService(years repository.YearRepository, departments repository.DepartmentRepository, sections repository.SectionRepository, validate *validator.Validate, logger zerolog.Logger) HierarchyService {
	return &hierarchyService{
		years:       years,
		departments: departments,
		sections:    sections,
		validator:   validate,
		logger:      logger.With().Str("component", "hierarchy_service").Logger(),
	}
}

func (s *hierarchyService) ListYears(ctx context.Context) ([]dto.YearResponse, error) {
	years, err := s.years.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewYearResponseSlice(years), nil
}

func (s *hierarchyService) CreateYear(ctx context.Context, payload dto.YearCreateRequest) (dto.YearResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.YearResponse{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))

	taken, err := s.years.CodeTaken(ctx, code, 0)
	if err != nil {
		return dto.YearResponse{}, err
	}
	if taken {
		return dto.YearResponse{}, ErrYearCodeTaken
	}

	year := models.Year{Code: code, Label: strings.TrimSpace(payload.Label)}
	if err := s.years.Create(ctx, &year); err != nil {
		return dto.YearResponse{}, err
	}

	s.logger.Info().Uint("year_id", year.ID).Str("code", year.Code).Msg("year created")

	return dto.NewYearResponse(year), nil
}

func (s *hierarchyService) UpdateYear(ctx context.Context, id uint, payload dto.YearUpdateRequest) (dto.YearResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.YearResponse{}, err
	}

	year, err := s.years.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.YearResponse{}, ErrYearNotFound
	}
	if err != nil {
		return dto.YearResponse{}, err
	}

	if payload.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*payload.Code))
		taken, err := s.years.CodeTaken(ctx, code, year.ID)
		if err != nil {
			return dto.YearResponse{}, err
		}
		if taken {
			return dto.YearResponse{}, ErrYearCodeTaken
		}
		year.Code = code
	}

	if payload.Label != nil {
		year.Label = strings.TrimSpace(*payload.Label)
	}

	if err := s.years.Update(ctx, &year); err != nil {
		return dto.YearResponse{}, err
	}

	return dto.NewYearResponse(year), nil
}

func (s *hierarchyService) DeleteYear(ctx context.Context, id uint) error {
	if _, err := s.years.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrYearNotFound
		}
		return err
	}

	dependents, err := s.departments.CountByYear(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return ErrYearInUse
	}

	return s.years.Delete(ctx, id)
}

func (s *hierarchyService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponseSlice(departments), nil
}

func (s *hierarchyService) CreateDepartment(ctx context.Context, payload dto.DepartmentCreateRequest) (dto.DepartmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DepartmentResponse{}, err
	}

	if _, err := s.years.GetByID(ctx, payload.YearID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DepartmentResponse{}, ErrYearNotFound
		}
		return dto.DepartmentResponse{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))

	taken, err := s.departments.CodeTaken(ctx, code, 0)
	if err != nil {
		return dto.DepartmentResponse{}, err
	}
	if taken {
		return dto.DepartmentResponse{}, ErrDepartmentCodeTaken
	}

	department := models.Department{
		Code:   code,
		Label:  strings.TrimSpace(payload.Label),
		YearID: payload.YearID,
	}
	if err := s.departments.Create(ctx, &department); err != nil {
		return dto.DepartmentResponse{}, err
	}

	s.logger.Info().Uint("department_id", department.ID).Str("code", department.Code).Msg("department created")

	return dto.NewDepartmentResponse(department), nil
}

func (s *hierarchyService) UpdateDepartment(ctx context.Context, id uint, payload dto.DepartmentUpdateRequest) (dto.DepartmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DepartmentResponse{}, err
	}

	department, err := s.departments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DepartmentResponse{}, ErrDepartmentNotFound
	}
	if err != nil {
		return dto.DepartmentResponse{}, err
	}

	if payload.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*payload.Code))
		taken, err := s.departments.CodeTaken(ctx, code, department.ID)
		if err != nil {
			return dto.DepartmentResponse{}, err
		}
		if taken {
			return dto.DepartmentResponse{}, ErrDepartmentCodeTaken
		}
		department.Code = code
	}

	if payload.Label != nil {
		department.Label = strings.TrimSpace(*payload.Label)
	}

	if err := s.departments.Update(ctx, &department); err != nil {
		return dto.DepartmentResponse{}, err
	}

	return dto.NewDepartmentResponse(department), nil
}

func (s *hierarchyService) DeleteDepartment(ctx context.Context, id uint) error {
	if _, err := s.departments.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}

	dependents, err := s.sections.CountByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return ErrDepartmentInUse
	}

	return s.departments.Delete(ctx, id)
}

func (s *hierarchyService) ListSections(ctx context.Context) ([]dto.SectionResponse, error) {
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSectionResponseSlice(sections), nil
}

func (s *hierarchyService) ListSectionsByDepartment(ctx context.Context, departmentID uint) ([]dto.SectionResponse, error) {
	sections, err := s.sections.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return dto.NewSectionResponseSlice(sections), nil
}

func (s *hierarchyService) CreateSection(ctx context.Context, payload dto.SectionCreateRequest) (dto.SectionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SectionResponse{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	if !models.IsValidSectionCode(code) {
		return dto.SectionResponse{}, ErrInvalidSection
	}

	if _, err := s.departments.GetByID(ctx, payload.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SectionResponse{}, ErrDepartmentNotFound
		}
		return dto.SectionResponse{}, err
	}

	taken, err := s.sections.Exists(ctx, code, payload.DepartmentID)
	if err != nil {
		return dto.SectionResponse{}, err
	}
	if taken {
		return dto.SectionResponse{}, ErrSectionExists
	}

	section := models.Section{Code: code, DepartmentID: payload.DepartmentID}
	if err := s.sections.Create(ctx, &section); err != nil {
		return dto.SectionResponse{}, err
	}

	s.logger.Info().Uint("section_id", section.ID).Str("code", section.Code).Msg("section created")

	return dto.NewSectionResponse(section), nil
}

func (s *hierarchyService) DeleteSection(ctx context.Context, id uint) error {
	if _, err := s.sections.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	return s.sections.Delete(ctx, id)
}
