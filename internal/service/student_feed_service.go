package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// ErrSectionMissing rejects feed requests from students without a section on
// their profile; the feed cannot be scoped without one.
var ErrSectionMissing = errors.New("student profile has no section assigned")

// StudentIdentity carries the cohort attributes used to scope the feed.
type StudentIdentity struct {
	ID       uint
	Section  string
	RollYear string
	RollDept string
}

// StudentFeedService assembles the coursework feed visible to a student.
type StudentFeedService interface {
	Assignments(ctx context.Context, student StudentIdentity) ([]dto.AssignmentResponse, error)
	Quizzes(ctx context.Context, student StudentIdentity) ([]dto.QuizResponse, error)
}

type studentFeedService struct {
	assignments repository.AssignmentRepository
	quizzes     repository.QuizRepository
	cache       *FeedCache
	logger      zerolog.Logger
}

// NewStudentFeedService constructs a StudentFeedService instance.
func NewStudentFeedService(assignments repository.AssignmentRepository, quizzes repository.QuizRepository, cache *FeedCache, logger zerolog.Logger) StudentFeedService {
	return &studentFeedService{
		assignments: assignments,
		quizzes:     quizzes,
		cache:       cache,
		logger:      logger.With().Str("component", "student_feed_service").Logger(),
	}
}

func (s *studentFeedService) Assignments(ctx context.Context, student StudentIdentity) ([]dto.AssignmentResponse, error) {
	filter, err := feedFilter(student)
	if err != nil {
		return nil, err
	}

	var cached []dto.AssignmentResponse
	if s.cache.Get(ctx, FeedKindAssignments, filter, &cached) {
		return cached, nil
	}

	assignments, err := s.assignments.ListForStudent(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := dto.NewAssignmentResponseSlice(assignments)
	s.cache.Set(ctx, FeedKindAssignments, filter, responses)
	return responses, nil
}

func (s *studentFeedService) Quizzes(ctx context.Context, student StudentIdentity) ([]dto.QuizResponse, error) {
	filter, err := feedFilter(student)
	if err != nil {
		return nil, err
	}

	var cached []dto.QuizResponse
	if s.cache.Get(ctx, FeedKindQuizzes, filter, &cached) {
		return cached, nil
	}

	quizzes, err := s.quizzes.ListForStudent(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := dto.NewQuizResponseSlice(quizzes)
	s.cache.Set(ctx, FeedKindQuizzes, filter, responses)
	return responses, nil
}

// feedFilter scopes a student's feed. Section always narrows the match; year
// and department narrow it only when the student profile carries them, so
// accounts created before roll codes existed still see their section's work.
func feedFilter(student StudentIdentity) (repository.StudentFeedFilter, error) {
	section := strings.ToUpper(strings.TrimSpace(student.Section))
	if section == "" {
		return repository.StudentFeedFilter{}, ErrSectionMissing
	}

	return repository.StudentFeedFilter{
		Section:    section,
		Year:       strings.ToUpper(strings.TrimSpace(student.RollYear)),
		Department: strings.ToUpper(strings.TrimSpace(student.RollDept)),
	}, nil
}
