package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/service"
	"github.com/noah-isme/vclass-go-api/internal/utils"
)

// AssignmentHandler wires the teacher-side assignment routes.
type AssignmentHandler struct {
	service     service.AssignmentService
	submissions service.AssignmentSubmissionService
	logger      zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, submissions service.AssignmentSubmissionService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service:     service,
		submissions: submissions,
		logger:      logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the assignment endpoints to the router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Get("/:id/submissions", h.roster)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	assignments, err := h.service.ListOwn(c.UserContext(), callerIdentity(c).ID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	payload := dto.AssignmentCreateRequest{
		Title:      c.FormValue("title"),
		CourseName: c.FormValue("course_name"),
		Year:       c.FormValue("year"),
		Department: c.FormValue("department"),
		Section:    c.FormValue("section"),
		StartDate:  c.FormValue("start_date"),
		DueDate:    c.FormValue("due_date"),
	}

	assignment, err := h.service.Create(c.UserContext(), callerIdentity(c).ID, payload, formFileOrNil(c, "file"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.AssignmentUpdateRequest{}
	if title := c.FormValue("title"); title != "" {
		payload.Title = &title
	}
	if course := c.FormValue("course_name"); course != "" {
		payload.CourseName = &course
	}
	if section := c.FormValue("section"); section != "" {
		payload.Section = &section
	}
	if start := c.FormValue("start_date"); start != "" {
		payload.StartDate = &start
	}
	if due := c.FormValue("due_date"); due != "" {
		payload.DueDate = &due
	}

	assignment, err := h.service.Update(c.UserContext(), callerIdentity(c).ID, id, payload, formFileOrNil(c, "file"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), callerIdentity(c).ID, id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment deleted", fiber.Map{"id": id})
}

func (h *AssignmentHandler) roster(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submissions, err := h.submissions.Roster(c.UserContext(), callerIdentity(c).ID, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUnsupportedFileType),
		errors.Is(err, service.ErrYearUnknown),
		errors.Is(err, service.ErrDepartmentUnknown):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
