package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// AssignmentService orchestrates teacher-side assignment workflows.
type AssignmentService interface {
	ListOwn(ctx context.Context, teacherID uint) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error)
	Update(ctx context.Context, teacherID uint, id uint, payload dto.AssignmentUpdateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, teacherID uint, id uint) error
}

type assignmentService struct {
	assignments      repository.AssignmentRepository
	years            repository.YearRepository
	departments      repository.DepartmentRepository
	validator        *validator.Validate
	uploader         FileUploader
	cache            *FeedCache
	policy           *bluemonday.Policy
	enforceOwnership bool
	logger           zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignments repository.AssignmentRepository, years repository.YearRepository, departments repository.DepartmentRepository, validate *validator.Validate, uploader FileUploader, cache *FeedCache, enforceOwnership bool, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments:      assignments,
		years:            years,
		departments:      departments,
		validator:        validate,
		uploader:         uploader,
		cache:            cache,
		policy:           bluemonday.StrictPolicy(),
		enforceOwnership: enforceOwnership,
		logger:           logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) ListOwn(ctx context.Context, teacherID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByCreator(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	startDate, err := parseDateField(payload.StartDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	dueDate, err := parseDateField(payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	year := strings.ToUpper(strings.TrimSpace(payload.Year))
	department := strings.ToUpper(strings.TrimSpace(payload.Department))
	if err := checkCohortCodes(ctx, s.years, s.departments, year, department); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		Title:       s.policy.Sanitize(strings.TrimSpace(payload.Title)),
		CourseName:  s.policy.Sanitize(strings.TrimSpace(payload.CourseName)),
		Year:        year,
		Department:  department,
		Section:     payload.Section,
		StartDate:   startDate,
		DueDate:     dueDate,
		CreatedByID: teacherID,
	}

	if file != nil {
		fileType, err := detectCourseworkFileType(file)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}

		url, err := uploadCourseworkFile(ctx, s.uploader, FolderAssignments, file)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}

		assignment.FileURL = url
		assignment.FileName = file.Filename
		assignment.FileType = fileType
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.cache.Invalidate(ctx, FeedKindAssignments)
	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("teacher_id", teacherID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, teacherID uint, id uint, payload dto.AssignmentUpdateRequest, file *multipart.FileHeader) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if s.enforceOwnership && assignment.CreatedByID != teacherID {
		return dto.AssignmentResponse{}, ErrNotOwner
	}

	if payload.Title != nil {
		assignment.Title = s.policy.Sanitize(strings.TrimSpace(*payload.Title))
	}
	if payload.CourseName != nil {
		assignment.CourseName = s.policy.Sanitize(strings.TrimSpace(*payload.CourseName))
	}
	if payload.Section != nil {
		assignment.Section = *payload.Section
	}
	if payload.StartDate != nil {
		startDate, err := parseDateField(*payload.StartDate)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.StartDate = startDate
	}
	if payload.DueDate != nil {
		dueDate, err := parseDateField(*payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.DueDate = dueDate
	}

	if file != nil {
		fileType, err := detectCourseworkFileType(file)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}

		url, err := uploadCourseworkFile(ctx, s.uploader, FolderAssignments, file)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}

		assignment.FileURL = url
		assignment.FileName = file.Filename
		assignment.FileType = fileType
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.cache.Invalidate(ctx, FeedKindAssignments)
	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment updated")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, teacherID uint, id uint) error {
	assignment, err := s.assignments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssignmentNotFound
	}
	if err != nil {
		return err
	}

	if s.enforceOwnership && assignment.CreatedByID != teacherID {
		return ErrNotOwner
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, FeedKindAssignments)
	return nil
}
