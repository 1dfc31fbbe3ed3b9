package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/service"
	"github.com/noah-isme/vclass-go-api/internal/utils"
)

// HierarchyHandler wires the year/department/section management routes.
type HierarchyHandler struct {
	service service.HierarchyService
	logger  zerolog.Logger
}

// NewHierarchyHandler constructs the handler.
func NewHierarchyHandler(service service.HierarchyService, logger zerolog.Logger) *HierarchyHandler {
	return &HierarchyHandler{
		service: service,
		logger:  logger.With().Str("component", "hierarchy_handler").Logger(),
	}
}

// RegisterReads attaches the read-only hierarchy endpoints. These back the
// signup form drop-downs and therefore stay public.
func (h *HierarchyHandler) RegisterReads(router fiber.Router) {
	router.Get("/years", h.listYears)
	router.Get("/departments", h.listDepartments)
	router.Get("/sections", h.listSections)
	router.Get("/departments/:id/sections", h.listSectionsByDepartment)
}

// RegisterWrites attaches the admin-only hierarchy mutations.
func (h *HierarchyHandler) RegisterWrites(router fiber.Router) {
	router.Post("/years", h.createYear)
	router.Put("/years/:id", h.updateYear)
	router.Delete("/years/:id", h.deleteYear)

	router.Post("/departments", h.createDepartment)
	router.Put("/departments/:id", h.updateDepartment)
	router.Delete("/departments/:id", h.deleteDepartment)

	router.Post("/sections", h.createSection)
	router.Delete("/sections/:id", h.deleteSection)
}

func (h *HierarchyHandler) listYears(c *fiber.Ctx) error {
	years, err := h.service.ListYears(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "years retrieved", years)
}

func (h *HierarchyHandler) createYear(c *fiber.Ctx) error {
	var payload dto.YearCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	year, err := h.service.CreateYear(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "year created", year)
}

func (h *HierarchyHandler) updateYear(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.YearUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	year, err := h.service.UpdateYear(c.UserContext(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "year updated", year)
}

func (h *HierarchyHandler) deleteYear(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteYear(c.UserContext(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "year deleted", fiber.Map{"id": id})
}

func (h *HierarchyHandler) listDepartments(c *fiber.Ctx) error {
	departments, err := h.service.ListDepartments(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "departments retrieved", departments)
}

func (h *HierarchyHandler) createDepartment(c *fiber.Ctx) error {
	var payload dto.DepartmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	department, err := h.service.CreateDepartment(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "department created", department)
}

func (h *HierarchyHandler) updateDepartment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DepartmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	department, err := h.service.UpdateDepartment(c.UserContext(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "department updated", department)
}

func (h *HierarchyHandler) deleteDepartment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteDepartment(c.UserContext(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "department deleted", fiber.Map{"id": id})
}

func (h *HierarchyHandler) listSections(c *fiber.Ctx) error {
	sections, err := h.service.ListSections(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "sections retrieved", sections)
}

func (h *HierarchyHandler) listSectionsByDepartment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	sections, err := h.service.ListSectionsByDepartment(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "sections retrieved", sections)
}

func (h *HierarchyHandler) createSection(c *fiber.Ctx) error {
	var payload dto.SectionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	section, err := h.service.CreateSection(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "section created", section)
}

func (h *HierarchyHandler) deleteSection(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteSection(c.UserContext(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "section deleted", fiber.Map{"id": id})
}

func (h *HierarchyHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrYearNotFound),
		errors.Is(err, service.ErrDepartmentNotFound),
		errors.Is(err, service.ErrSectionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrYearCodeTaken),
		errors.Is(err, service.ErrDepartmentCodeTaken),
		errors.Is(err, service.ErrSectionExists),
		errors.Is(err, service.ErrInvalidSection):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrYearInUse),
		errors.Is(err, service.ErrDepartmentInUse):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
