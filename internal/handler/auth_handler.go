package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/service"
	"github.com/noah-isme/vclass-go-api/internal/utils"
)

// AuthHandler wires the registration, login and profile routes.
type AuthHandler struct {
	auth     service.AuthService
	accounts service.AccountAdminService
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth service.AuthService, accounts service.AccountAdminService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		accounts: accounts,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public auth endpoints to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/signup", h.signup)
	router.Post("/signin", h.signin)
	router.Post("/admin-login", h.adminLogin)
	router.Post("/check-email", h.checkEmail)
}

// RegisterProtected attaches the token-guarded profile endpoints.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Put("/profile", h.updateProfile)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var payload dto.SignupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	account, err := h.auth.Signup(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account registered", account)
}

func (h *AuthHandler) signin(c *fiber.Ctx) error {
	var payload dto.SigninRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.auth.Signin(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "signin successful", session)
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	var payload dto.AdminLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.auth.AdminLogin(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "admin login successful", session)
}

func (h *AuthHandler) checkEmail(c *fiber.Ctx) error {
	var payload dto.CheckEmailRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.CheckEmail(c.UserContext(), payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "email is available", fiber.Map{"available": true})
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	identity := callerIdentity(c)

	if identity.Admin {
		return utils.SendSuccess(c, "profile retrieved", h.auth.AdminProfile())
	}

	account, err := h.accounts.Get(c.UserContext(), identity.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", account)
}

func (h *AuthHandler) updateProfile(c *fiber.Ctx) error {
	identity := callerIdentity(c)
	if identity.Admin {
		return utils.SendError(c, fiber.StatusForbidden, "the admin credential has no editable profile")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	account, err := h.auth.UpdateProfile(c.UserContext(), identity.ID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", account)
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRollNumberTaken),
		errors.Is(err, service.ErrStudentFieldsRequired),
		errors.Is(err, service.ErrTeacherFieldsRequired),
		errors.Is(err, service.ErrProfileImageRequired),
		errors.Is(err, service.ErrInvalidSection):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAccountNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
