package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/service"
	"github.com/noah-isme/vclass-go-api/internal/utils"
)

// QuizHandler wires the teacher-side quiz routes.
type QuizHandler struct {
	service     service.QuizService
	submissions service.QuizSubmissionService
	logger      zerolog.Logger
}

// NewQuizHandler constructs the handler.
func NewQuizHandler(service service.QuizService, submissions service.QuizSubmissionService, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		service:     service,
		submissions: submissions,
		logger:      logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register attaches the quiz endpoints to the router group.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Get("/:id/submissions", h.roster)
}

func (h *QuizHandler) list(c *fiber.Ctx) error {
	quizzes, err := h.service.ListOwn(c.UserContext(), callerIdentity(c).ID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "quizzes retrieved", quizzes)
}

func (h *QuizHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	quiz, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz retrieved", quiz)
}

func (h *QuizHandler) create(c *fiber.Ctx) error {
	payload := dto.QuizCreateRequest{
		Title:      c.FormValue("title"),
		CourseName: c.FormValue("course_name"),
		Year:       c.FormValue("year"),
		Department: c.FormValue("department"),
		Section:    c.FormValue("section"),
		StartDate:  c.FormValue("start_date"),
		DueDate:    c.FormValue("due_date"),
	}

	if marks := c.FormValue("marks"); marks != "" {
		parsed, err := strconv.ParseFloat(marks, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid marks value")
		}
		payload.Marks = parsed
	}

	quiz, err := h.service.Create(c.UserContext(), callerIdentity(c).ID, payload, formFileOrNil(c, "file"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "quiz created", quiz)
}

func (h *QuizHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.QuizUpdateRequest{}
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
	if marks := c.FormValue("marks"); marks != "" {
		parsed, err := strconv.ParseFloat(marks, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid marks value")
		}
		payload.Marks = &parsed
	}

	quiz, err := h.service.Update(c.UserContext(), callerIdentity(c).ID, id, payload, formFileOrNil(c, "file"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz updated", quiz)
}

func (h *QuizHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), callerIdentity(c).ID, id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz deleted", fiber.Map{"id": id})
}

func (h *QuizHandler) roster(c *fiber.Ctx) error {
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

func (h *QuizHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
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
