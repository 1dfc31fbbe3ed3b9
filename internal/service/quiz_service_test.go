package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

func newQuizService(t *testing.T, enforceOwnership bool) (QuizService, *stubUploader) {
	t.Helper()
	db := openTestDB(t)
	seedCohort(t, db)
	uploader := &stubUploader{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewQuizService(repository.NewQuizRepository(db), repository.NewYearRepository(db), repository.NewDepartmentRepository(db), validate, uploader, nil, enforceOwnership, testLogger())
	return svc, uploader
}

func quizPayload() dto.QuizCreateRequest {
	return dto.QuizCreateRequest{
		Title:      "Databases Quiz 2",
		CourseName: "Databases",
		Year:       "fa24",
		Department: "bcs",
		Section:    "B",
		StartDate:  time.Now().Format(time.RFC3339),
		DueDate:    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		Marks:      20,
	}
}

func TestQuizCreateUppercasesCohortCodes(t *testing.T) {
	svc, _ := newQuizService(t, true)

	created, err := svc.Create(context.Background(), 5, quizPayload(), nil)
	require.NoError(t, err)
	require.Equal(t, "FA24", created.Year)
	require.Equal(t, "BCS", created.Department)
	require.Equal(t, float64(20), created.Marks)
}

func TestQuizCreateRejectsUnknownCohortCodes(t *testing.T) {
	svc, _ := newQuizService(t, true)

	payload := quizPayload()
	payload.Year = "sp30"
	_, err := svc.Create(context.Background(), 5, payload, nil)
	require.ErrorIs(t, err, ErrYearUnknown)

	payload = quizPayload()
	payload.Department = "xyz"
	_, err = svc.Create(context.Background(), 5, payload, nil)
	require.ErrorIs(t, err, ErrDepartmentUnknown)
}

func TestQuizUpdateEnforcesOwnership(t *testing.T) {
	svc, _ := newQuizService(t, true)

	created, err := svc.Create(context.Background(), 5, quizPayload(), nil)
	require.NoError(t, err)

	marks := 35.0
	_, err = svc.Update(context.Background(), 6, created.ID, dto.QuizUpdateRequest{Marks: &marks}, nil)
	require.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(context.Background(), 5, created.ID, dto.QuizUpdateRequest{Marks: &marks}, nil)
	require.NoError(t, err)
	require.Equal(t, marks, updated.Marks)
}
