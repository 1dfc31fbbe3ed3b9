package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/observability"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// AssignmentSubmissionService covers the hand-in flow for assignments.
type AssignmentSubmissionService interface {
	Submit(ctx context.Context, assignmentID, studentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	Status(ctx context.Context, assignmentID, studentID uint) (dto.SubmissionResponse, error)
	Roster(ctx context.Context, teacherID, assignmentID uint) ([]dto.SubmissionResponse, error)
}

// QuizSubmissionService covers the hand-in flow for quizzes.
type QuizSubmissionService interface {
	Submit(ctx context.Context, quizID, studentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	Status(ctx context.Context, quizID, studentID uint) (dto.SubmissionResponse, error)
	Roster(ctx context.Context, teacherID, quizID uint) ([]dto.SubmissionResponse, error)
}

type assignmentSubmissionService struct {
	assignments      repository.AssignmentRepository
	submissions      repository.SubmissionRepository
	uploader         FileUploader
	enforceOwnership bool
	logger           zerolog.Logger
	tracer           trace.Tracer
}

// NewAssignmentSubmissionService constructs an AssignmentSubmissionService.
func NewAssignmentSubmissionService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, uploader FileUploader, enforceOwnership bool, logger zerolog.Logger) AssignmentSubmissionService {
	return &assignmentSubmissionService{
		assignments:      assignments,
		submissions:      submissions,
		uploader:         uploader,
		enforceOwnership: enforceOwnership,
		logger:           logger.With().Str("component", "assignment_submission_service").Logger(),
		tracer:           otel.Tracer("github.com/noah-isme/vclass-go-api/internal/service/submission"),
	}
}

func (s *assignmentSubmissionService) Submit(ctx context.Context, assignmentID, studentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submission.assignment.submit")
	defer span.End()
	span.SetAttributes(attribute.Int("assignment.id", int(assignmentID)))

	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment missing")
			observability.SubmissionOutcomes().WithLabelValues("assignment", "missing_item").Inc()
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if file == nil {
		span.SetStatus(codes.Error, "no file attached")
		observability.SubmissionOutcomes().WithLabelValues("assignment", "no_file").Inc()
		return dto.SubmissionResponse{}, ErrFileRequired
	}

	fileType, err := detectCourseworkFileType(file)
	if err != nil {
		span.SetStatus(codes.Error, "unsupported file type")
		observability.SubmissionOutcomes().WithLabelValues("assignment", "bad_file").Inc()
		return dto.SubmissionResponse{}, err
	}

	url, err := uploadCourseworkFile(ctx, s.uploader, FolderSubmissions, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		observability.SubmissionOutcomes().WithLabelValues("assignment", "upload_error").Inc()
		return dto.SubmissionResponse{}, err
	}

	now := time.Now()
	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileURL:      url,
		FileName:     file.Filename,
		FileType:     fileType,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  &now,
	}

	if err := s.submissions.Upsert(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.SubmissionOutcomes().WithLabelValues("assignment", "error").Inc()
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionOutcomes().WithLabelValues("assignment", "submitted").Inc()
	s.logger.Info().Uint("assignment_id", assignmentID).Uint("student_id", studentID).Msg("assignment submitted")
	span.SetStatus(codes.Ok, "submitted")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *assignmentSubmissionService) Status(ctx context.Context, assignmentID, studentID uint) (dto.SubmissionResponse, error) {
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PendingSubmissionResponse(), nil
	}
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *assignmentSubmissionService) Roster(ctx context.Context, teacherID, assignmentID uint) ([]dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.enforceOwnership && assignment.CreatedByID != teacherID {
		return nil, ErrNotOwner
	}

	submissions, err := s.submissions.ListForAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

type quizSubmissionService struct {
	quizzes          repository.QuizRepository
	submissions      repository.QuizSubmissionRepository
	uploader         FileUploader
	enforceOwnership bool
	logger           zerolog.Logger
	tracer           trace.Tracer
}

// NewQuizSubmissionService constructs a QuizSubmissionService.
func NewQuizSubmissionService(quizzes repository.QuizRepository, submissions repository.QuizSubmissionRepository, uploader FileUploader, enforceOwnership bool, logger zerolog.Logger) QuizSubmissionService {
	return &quizSubmissionService{
		quizzes:          quizzes,
		submissions:      submissions,
		uploader:         uploader,
		enforceOwnership: enforceOwnership,
		logger:           logger.With().Str("component", "quiz_submission_service").Logger(),
		tracer:           otel.Tracer("github.com/noah-isme/vclass-go-api/internal/service/submission"),
	}
}

func (s *quizSubmissionService) Submit(ctx context.Context, quizID, studentID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submission.quiz.submit")
	defer span.End()
	span.SetAttributes(attribute.Int("quiz.id", int(quizID)))

	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "quiz missing")
			observability.SubmissionOutcomes().WithLabelValues("quiz", "missing_item").Inc()
			return dto.SubmissionResponse{}, ErrQuizNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if file == nil {
		span.SetStatus(codes.Error, "no file attached")
		observability.SubmissionOutcomes().WithLabelValues("quiz", "no_file").Inc()
		return dto.SubmissionResponse{}, ErrFileRequired
	}

	fileType, err := detectCourseworkFileType(file)
	if err != nil {
		span.SetStatus(codes.Error, "unsupported file type")
		observability.SubmissionOutcomes().WithLabelValues("quiz", "bad_file").Inc()
		return dto.SubmissionResponse{}, err
	}

	url, err := uploadCourseworkFile(ctx, s.uploader, FolderQuizSubmissions, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		observability.SubmissionOutcomes().WithLabelValues("quiz", "upload_error").Inc()
		return dto.SubmissionResponse{}, err
	}

	now := time.Now()
	submission := models.QuizSubmission{
		QuizID:      quizID,
		StudentID:   studentID,
		FileURL:     url,
		FileName:    file.Filename,
		FileType:    fileType,
		Status:      models.SubmissionStatusSubmitted,
		SubmittedAt: &now,
	}

	if err := s.submissions.Upsert(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.SubmissionOutcomes().WithLabelValues("quiz", "error").Inc()
		return dto.SubmissionResponse{}, err
	}

	observability.SubmissionOutcomes().WithLabelValues("quiz", "submitted").Inc()
	s.logger.Info().Uint("quiz_id", quizID).Uint("student_id", studentID).Msg("quiz submitted")
	span.SetStatus(codes.Ok, "submitted")

	return dto.NewQuizSubmissionResponse(submission), nil
}

func (s *quizSubmissionService) Status(ctx context.Context, quizID, studentID uint) (dto.SubmissionResponse, error) {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrQuizNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByQuizAndStudent(ctx, quizID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PendingSubmissionResponse(), nil
	}
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	return dto.NewQuizSubmissionResponse(submission), nil
}

func (s *quizSubmissionService) Roster(ctx context.Context, teacherID, quizID uint) ([]dto.SubmissionResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.enforceOwnership && quiz.CreatedByID != teacherID {
		return nil, ErrNotOwner
	}

	submissions, err := s.submissions.ListForQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizSubmissionResponseSlice(submissions), nil
}
