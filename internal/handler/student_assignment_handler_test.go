package handler_test

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/handler"
	"github.com/noah-isme/vclass-go-api/internal/middleware"
	"github.com/noah-isme/vclass-go-api/internal/service"
)

type mockFeedService struct {
	lastIdentity service.StudentIdentity
	assignments  []dto.AssignmentResponse
	quizzes      []dto.QuizResponse
	err          error
}

func (m *mockFeedService) Assignments(_ context.Context, student service.StudentIdentity) ([]dto.AssignmentResponse, error) {
	m.lastIdentity = student
	return m.assignments, m.err
}

func (m *mockFeedService) Quizzes(_ context.Context, student service.StudentIdentity) ([]dto.QuizResponse, error) {
	m.lastIdentity = student
	return m.quizzes, m.err
}

type mockAssignmentSubmissionService struct {
	status dto.SubmissionResponse
	err    error
}

func (m *mockAssignmentSubmissionService) Submit(_ context.Context, _, _ uint, _ *multipart.FileHeader) (dto.SubmissionResponse, error) {
	return m.status, m.err
}

func (m *mockAssignmentSubmissionService) Status(_ context.Context, _, _ uint) (dto.SubmissionResponse, error) {
	return m.status, m.err
}

func (m *mockAssignmentSubmissionService) Roster(_ context.Context, _, _ uint) ([]dto.SubmissionResponse, error) {
	return []dto.SubmissionResponse{m.status}, m.err
}

func newStudentApp(feed service.StudentFeedService, submissions service.AssignmentSubmissionService, identity middleware.Identity) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/student-assignments", func(c *fiber.Ctx) error {
		c.Locals("identity", identity)
		return c.Next()
	})
	handler.NewStudentAssignmentHandler(feed, submissions, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestStudentAssignmentFeedUsesCallerCohort(t *testing.T) {
	feed := &mockFeedService{assignments: []dto.AssignmentResponse{{ID: 1, Title: "Lab"}}}
	identity := middleware.Identity{ID: 9, Role: "student", Section: "A", RollYear: "FA24", RollDept: "BCS"}
	app := newStudentApp(feed, &mockAssignmentSubmissionService{}, identity)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student-assignments", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, uint(9), feed.lastIdentity.ID)
	require.Equal(t, "A", feed.lastIdentity.Section)
	require.Equal(t, "FA24", feed.lastIdentity.RollYear)
	require.Equal(t, "BCS", feed.lastIdentity.RollDept)
}

func TestStudentAssignmentFeedSectionMissing(t *testing.T) {
	feed := &mockFeedService{err: service.ErrSectionMissing}
	app := newStudentApp(feed, &mockAssignmentSubmissionService{}, middleware.Identity{ID: 9, Role: "student"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student-assignments", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentAssignmentStatusAndErrors(t *testing.T) {
	submissions := &mockAssignmentSubmissionService{status: dto.PendingSubmissionResponse()}
	app := newStudentApp(&mockFeedService{}, submissions, middleware.Identity{ID: 9, Role: "student", Section: "A"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student-assignments/3/submission-status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.SubmissionResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "pending", response.Data.Status)

	submissions.err = service.ErrAssignmentNotFound
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/student-assignments/99/submission-status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/student-assignments/bogus/submission-status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentAssignmentSubmitFileRequired(t *testing.T) {
	submissions := &mockAssignmentSubmissionService{err: service.ErrFileRequired}
	app := newStudentApp(&mockFeedService{}, submissions, middleware.Identity{ID: 9, Role: "student", Section: "A"})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/student-assignments/3/submit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
