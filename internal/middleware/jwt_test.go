package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, subject, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func jwtTestApp(t *testing.T, accounts repository.AccountRepository) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(JWTProtected(testSecret, accounts))
	app.Get("/me", func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{
			"id":      identity.ID,
			"admin":   identity.Admin,
			"role":    identity.Role,
			"section": identity.Section,
		})
	})
	return app
}

func TestJWTProtectedRejectsMissingToken(t *testing.T) {
	app := jwtTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsGarbageToken(t *testing.T) {
	app := jwtTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedAdminSubject(t *testing.T) {
	app := jwtTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", models.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTProtectedHydratesStudentIdentity(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))

	account := models.Account{
		Name:         "Hira Butt",
		Email:        "hira@example.com",
		PasswordHash: "x",
		Role:         models.RoleStudent,
		RollYear:     "FA24",
		RollDept:     "BCS",
		RollSerial:   "175",
		Section:      "C",
	}
	require.NoError(t, db.Create(&account).Error)

	accounts := repository.NewAccountRepository(db)
	app := fiber.New()
	app.Use(JWTProtected(testSecret, accounts))

	var captured Identity
	app.Get("/me", func(c *fiber.Ctx) error {
		captured, _ = IdentityFromCtx(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, fmt.Sprintf("%d", account.ID), models.RoleStudent))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, account.ID, captured.ID)
	require.False(t, captured.Admin)
	require.Equal(t, "C", captured.Section)
	require.Equal(t, "FA24", captured.RollYear)
	require.Equal(t, "BCS", captured.RollDept)
}

func TestJWTProtectedToleratesDeletedAccount(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))

	app := jwtTestApp(t, repository.NewAccountRepository(db))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "314", models.RoleStudent))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
