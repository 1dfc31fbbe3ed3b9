package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/service"
	"github.com/noah-isme/vclass-go-api/internal/utils"
)

// StudentAssignmentHandler wires the student-facing assignment routes.
type StudentAssignmentHandler struct {
	feed        service.StudentFeedService
	submissions service.AssignmentSubmissionService
	logger      zerolog.Logger
}

// NewStudentAssignmentHandler constructs the handler.
func NewStudentAssignmentHandler(feed service.StudentFeedService, submissions service.AssignmentSubmissionService, logger zerolog.Logger) *StudentAssignmentHandler {
	return &StudentAssignmentHandler{
		feed:        feed,
		submissions: submissions,
		logger:      logger.With().Str("component", "student_assignment_handler").Logger(),
	}
}

// Register attaches the student assignment endpoints to the router group.
func (h *StudentAssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id/submission-status", h.status)
	router.Post("/:id/submit", h.submit)
}

func (h *StudentAssignmentHandler) list(c *fiber.Ctx) error {
	identity := callerIdentity(c)

	assignments, err := h.feed.Assignments(c.UserContext(), service.StudentIdentity{
		ID:       identity.ID,
		Section:  identity.Section,
		RollYear: identity.RollYear,
		RollDept: identity.RollDept,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *StudentAssignmentHandler) status(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.submissions.Status(c.UserContext(), id, callerIdentity(c).ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission status retrieved", submission)
}

func (h *StudentAssignmentHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.submissions.Submit(c.UserContext(), id, callerIdentity(c).ID, formFileOrNil(c, "file"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment submitted", submission)
}

func (h *StudentAssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSectionMissing),
		errors.Is(err, service.ErrFileRequired),
		errors.Is(err, service.ErrUnsupportedFileType):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
