package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
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

type mockAuthService struct {
	signupPayload dto.SignupRequest
	signinPayload dto.SigninRequest
	account       dto.AccountResponse
	session       dto.AuthResponse
	err           error
}

func (m *mockAuthService) Signup(_ context.Context, payload dto.SignupRequest) (dto.AccountResponse, error) {
	m.signupPayload = payload
	return m.account, m.err
}

func (m *mockAuthService) Signin(_ context.Context, payload dto.SigninRequest) (dto.AuthResponse, error) {
	m.signinPayload = payload
	return m.session, m.err
}

func (m *mockAuthService) AdminLogin(_ context.Context, _ dto.AdminLoginRequest) (dto.AuthResponse, error) {
	return m.session, m.err
}

func (m *mockAuthService) AdminProfile() dto.AccountResponse {
	return dto.AccountResponse{Name: "Administrator", Email: "root@campus.edu", Role: "admin"}
}

func (m *mockAuthService) CheckEmail(_ context.Context, _ dto.CheckEmailRequest) error {
	return m.err
}

func (m *mockAuthService) UpdateProfile(_ context.Context, _ uint, _ dto.ProfileUpdateRequest) (dto.AccountResponse, error) {
	return m.account, m.err
}

func (m *mockAuthService) IssueToken(_, _ string) (string, error) {
	return "token", nil
}

type mockAccountAdminService struct {
	account dto.AccountResponse
	err     error
}

func (m *mockAccountAdminService) List(_ context.Context) ([]dto.AccountResponse, error) {
	return []dto.AccountResponse{m.account}, m.err
}

func (m *mockAccountAdminService) Get(_ context.Context, _ uint) (dto.AccountResponse, error) {
	return m.account, m.err
}

func (m *mockAccountAdminService) Update(_ context.Context, _ uint, _ dto.AdminAccountUpdateRequest) (dto.AccountResponse, error) {
	return m.account, m.err
}

func (m *mockAccountAdminService) Delete(_ context.Context, _ uint) error {
	return m.err
}

func decodeResponse(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest))
}

func newAuthApp(auth service.AuthService, accounts service.AccountAdminService) *fiber.App {
	app := fiber.New()
	h := handler.NewAuthHandler(auth, accounts, zerolog.New(io.Discard))
	group := app.Group("/api/auth")
	h.Register(group)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandlerSignupSuccess(t *testing.T) {
	svc := &mockAuthService{account: dto.AccountResponse{ID: 1, Name: "Ayesha Khan", Role: "student", RollNumber: "fa24bcs101"}}
	app := newAuthApp(svc, &mockAccountAdminService{})

	resp := postJSON(t, app, "/api/auth/signup", dto.SignupRequest{
		FirstName: "Ayesha", LastName: "Khan",
		Email: "ayesha@example.com", Password: "secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.AccountResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "fa24bcs101", response.Data.RollNumber)
	require.Equal(t, "ayesha@example.com", svc.signupPayload.Email)
}

func TestAuthHandlerSigninErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "bad credentials", err: service.ErrInvalidCredentials, statusCode: fiber.StatusUnauthorized},
		{name: "email conflict", err: service.ErrEmailTaken, statusCode: fiber.StatusBadRequest},
		{name: "generic", err: io.ErrUnexpectedEOF, statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAuthApp(&mockAuthService{err: tc.err}, &mockAccountAdminService{})
			resp := postJSON(t, app, "/api/auth/signin", dto.SigninRequest{Identifier: "x", Password: "y"})
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestAuthHandlerSigninSuccess(t *testing.T) {
	svc := &mockAuthService{session: dto.AuthResponse{Token: "jwt-token", User: dto.AccountResponse{ID: 3}}}
	app := newAuthApp(svc, &mockAccountAdminService{})

	resp := postJSON(t, app, "/api/auth/signin", dto.SigninRequest{Identifier: "fa24bcs101", Password: "secret123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "jwt-token", response.Data.Token)
	require.Equal(t, "fa24bcs101", svc.signinPayload.Identifier)
}

func TestAuthHandlerCheckEmail(t *testing.T) {
	app := newAuthApp(&mockAuthService{}, &mockAccountAdminService{})
	resp := postJSON(t, app, "/api/auth/check-email", dto.CheckEmailRequest{Email: "free@example.com"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	app = newAuthApp(&mockAuthService{err: service.ErrEmailTaken}, &mockAccountAdminService{})
	resp = postJSON(t, app, "/api/auth/check-email", dto.CheckEmailRequest{Email: "taken@example.com"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandlerAdminProfile(t *testing.T) {
	app := fiber.New()
	h := handler.NewAuthHandler(&mockAuthService{}, &mockAccountAdminService{}, zerolog.New(io.Discard))
	group := app.Group("/api/auth", func(c *fiber.Ctx) error {
		c.Locals("identity", middleware.Identity{Admin: true, Role: "admin"})
		return c.Next()
	})
	h.RegisterProtected(group)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.AccountResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "root@campus.edu", response.Data.Email)
	require.Equal(t, "admin", response.Data.Role)
}

func TestAuthHandlerSignupRejectsBadBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{}, &mockAccountAdminService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
