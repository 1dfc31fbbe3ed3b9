package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

func newAuthService(t *testing.T) (AuthService, repository.AccountRepository) {
	t.Helper()
	db := openTestDB(t)
	accounts := repository.NewAccountRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(accounts, validate, AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-pass",
	}, testLogger())
	return svc, accounts
}

func studentSignup() dto.SignupRequest {
	return dto.SignupRequest{
		FirstName:    "Ayesha",
		LastName:     "Khan",
		Email:        "ayesha@example.com",
		Password:     "secret123",
		Role:         models.RoleStudent,
		RollYear:     "FA24",
		RollDept:     "BCS",
		RollSerial:   "101",
		Section:      "A",
		ProfileImage: "https://cdn.example.com/p.png",
	}
}

func TestAuthSignupStudentDerivesRollNumber(t *testing.T) {
	svc, _ := newAuthService(t)

	account, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)
	require.Equal(t, "fa24bcs101", account.RollNumber)
	require.Equal(t, models.RoleStudent, account.Role)
	require.Equal(t, "Ayesha Khan", account.Name)
}

func TestAuthSignupStudentMissingSection(t *testing.T) {
	svc, _ := newAuthService(t)

	payload := studentSignup()
	payload.Section = ""
	_, err := svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrStudentFieldsRequired)
}

func TestAuthSignupTeacherRequiresClasses(t *testing.T) {
	svc, _ := newAuthService(t)

	payload := studentSignup()
	payload.Role = models.RoleTeacher
	payload.Classes = nil
	_, err := svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrTeacherFieldsRequired)

	payload.Classes = []string{"CS-301"}
	account, err := svc.Signup(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, []string{"CS-301"}, account.Classes)
	require.Empty(t, account.RollNumber)
}

func TestAuthSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	payload := studentSignup()
	payload.RollSerial = "102"
	_, err = svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthSignupDuplicateRollNumber(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	payload := studentSignup()
	payload.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrRollNumberTaken)
}

func TestAuthSigninByEmailAndRollNumber(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	byEmail, err := svc.Signin(context.Background(), dto.SigninRequest{
		Identifier: "AYESHA@example.com",
		Password:   "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, byEmail.Token)

	byRoll, err := svc.Signin(context.Background(), dto.SigninRequest{
		Identifier: "FA24BCS101",
		Password:   "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, byEmail.User.ID, byRoll.User.ID)
}

func TestAuthSigninWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	_, err = svc.Signin(context.Background(), dto.SigninRequest{
		Identifier: "ayesha@example.com",
		Password:   "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthSigninUnknownIdentifier(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signin(context.Background(), dto.SigninRequest{
		Identifier: "nobody@example.com",
		Password:   "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthAdminLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	session, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{
		Email:    "Admin@Example.com",
		Password: "admin-pass",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, session.User.Role)

	token, err := jwt.Parse(session.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, AdminSubject, claims["sub"])
	require.Equal(t, models.RoleAdmin, claims["role"])

	_, err = svc.AdminLogin(context.Background(), dto.AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "nope",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	account, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	name := "Ayesha K."
	updated, err := svc.UpdateProfile(context.Background(), account.ID, dto.ProfileUpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)

	_, err = svc.UpdateProfile(context.Background(), 9999, dto.ProfileUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAuthCheckEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.CheckEmail(ctx, dto.CheckEmailRequest{Email: "free@example.com"}))

	_, err := svc.Signup(ctx, studentSignup())
	require.NoError(t, err)

	err = svc.CheckEmail(ctx, dto.CheckEmailRequest{Email: "Ayesha@Example.com"})
	require.ErrorIs(t, err, ErrEmailTaken)

	require.Error(t, svc.CheckEmail(ctx, dto.CheckEmailRequest{Email: "not-an-email"}))
}

func TestAuthAdminProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	profile := svc.AdminProfile()
	require.Equal(t, "Administrator", profile.Name)
	require.Equal(t, "admin@example.com", profile.Email)
	require.Equal(t, models.RoleAdmin, profile.Role)
}
