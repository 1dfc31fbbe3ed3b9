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

// QuizService orchestrates teacher-side quiz workflows.
type QuizService interface {
	ListOwn(ctx context.Context, teacherID uint) ([]dto.QuizResponse, error)
	Get(ctx context.Context, id uint) (dto.QuizResponse, error)
	Create(ctx context.Context, teacherID uint, payload dto.QuizCreateRequest, file *multipart.FileHeader) (dto.QuizResponse, error)
	Update(ctx context.Context, teacherID uint, id uint, payload dto.QuizUpdateRequest, file *multipart.FileHeader) (dto.QuizResponse, error)
	Delete(ctx context.Context, teacherID uint, id uint) error
}

type quizService struct {
	quizzes          repository.QuizRepository
	years            repository.YearRepository
	departments      repository.DepartmentRepository
	validator        *validator.Validate
	uploader         FileUploader
	cache            *FeedCache
	policy           *bluemonday.Policy
	enforceOwnership bool
	logger           zerolog.Logger
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizzes repository.QuizRepository, years repository.YearRepository, departments repository.DepartmentRepository, validate *validator.Validate, uploader FileUploader, cache *FeedCache, enforceOwnership bool, logger zerolog.Logger) QuizService {
	return &quizService{
		quizzes:          quizzes,
		years:            years,
		departments:      departments,
		validator:        validate,
		uploader:         uploader,
		cache:            cache,
		policy:           bluemonday.StrictPolicy(),
		enforceOwnership: enforceOwnership,
		logger:           logger.With().Str("component", "quiz_service").Logger(),
	}
}

func (s *quizService) ListOwn(ctx context.Context, teacherID uint) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.ListByCreator(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizResponseSlice(quizzes), nil
}

func (s *quizService) Get(ctx context.Context, id uint) (dto.QuizResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.QuizResponse{}, ErrQuizNotFound
	}
	if err != nil {
		return dto.QuizResponse{}, err
	}
	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Create(ctx context.Context, teacherID uint, payload dto.QuizCreateRequest, file *multipart.FileHeader) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	startDate, err := parseDateField(payload.StartDate)
	if err != nil {
		return dto.QuizResponse{}, err
	}
	dueDate, err := parseDateField(payload.DueDate)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	year := strings.ToUpper(strings.TrimSpace(payload.Year))
	department := strings.ToUpper(strings.TrimSpace(payload.Department))
	if err := checkCohortCodes(ctx, s.years, s.departments, year, department); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz := models.Quiz{
		Title:       s.policy.Sanitize(strings.TrimSpace(payload.Title)),
		CourseName:  s.policy.Sanitize(strings.TrimSpace(payload.CourseName)),
		Year:        year,
		Department:  department,
		Section:     payload.Section,
		StartDate:   startDate,
		DueDate:     dueDate,
		Marks:       payload.Marks,
		CreatedByID: teacherID,
	}

	if file != nil {
		fileType, err := detectCourseworkFileType(file)
		if err != nil {
			return dto.QuizResponse{}, err
		}

		url, err := uploadCourseworkFile(ctx, s.uploader, FolderQuizzes, file)
		if err != nil {
			return dto.QuizResponse{}, err
		}

		quiz.FileURL = url
		quiz.FileName = file.Filename
		quiz.FileType = fileType
	}

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.cache.Invalidate(ctx, FeedKindQuizzes)
	s.logger.Info().Uint("quiz_id", quiz.ID).Uint("teacher_id", teacherID).Msg("quiz created")

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Update(ctx context.Context, teacherID uint, id uint, payload dto.QuizUpdateRequest, file *multipart.FileHeader) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.QuizResponse{}, ErrQuizNotFound
	}
	if err != nil {
		return dto.QuizResponse{}, err
	}

	if s.enforceOwnership && quiz.CreatedByID != teacherID {
		return dto.QuizResponse{}, ErrNotOwner
	}

	if payload.Title != nil {
		quiz.Title = s.policy.Sanitize(strings.TrimSpace(*payload.Title))
	}
	if payload.CourseName != nil {
		quiz.CourseName = s.policy.Sanitize(strings.TrimSpace(*payload.CourseName))
	}
	if payload.Section != nil {
		quiz.Section = *payload.Section
	}
	if payload.Marks != nil {
		quiz.Marks = *payload.Marks
	}
	if payload.StartDate != nil {
		startDate, err := parseDateField(*payload.StartDate)
		if err != nil {
			return dto.QuizResponse{}, err
		}
		quiz.StartDate = startDate
	}
	if payload.DueDate != nil {
		dueDate, err := parseDateField(*payload.DueDate)
		if err != nil {
			return dto.QuizResponse{}, err
		}
		quiz.DueDate = dueDate
	}

	if file != nil {
		fileType, err := detectCourseworkFileType(file)
		if err != nil {
			return dto.QuizResponse{}, err
		}

		url, err := uploadCourseworkFile(ctx, s.uploader, FolderQuizzes, file)
		if err != nil {
			return dto.QuizResponse{}, err
		}

		quiz.FileURL = url
		quiz.FileName = file.Filename
		quiz.FileType = fileType
	}

	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.cache.Invalidate(ctx, FeedKindQuizzes)
	s.logger.Info().Uint("quiz_id", quiz.ID).Msg("quiz updated")

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Delete(ctx context.Context, teacherID uint, id uint) error {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrQuizNotFound
	}
	if err != nil {
		return err
	}

	if s.enforceOwnership && quiz.CreatedByID != teacherID {
		return ErrNotOwner
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, FeedKindQuizzes)
	return nil
}
