package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// AdminSubject is the token subject used for the configuration-supplied admin
// credential, which has no backing account row.
const AdminSubject = "admin"

var (
	// ErrInvalidCredentials indicates an unknown identifier or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already in use")
	// ErrRollNumberTaken indicates the derived roll number is already registered.
	ErrRollNumberTaken = errors.New("roll number already registered")
	// ErrAccountNotFound indicates no account matches the requested id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrStudentFieldsRequired indicates a student signup misses roll or section data.
	ErrStudentFieldsRequired = errors.New("email, roll number components (year, dept, serial) and section are required for students")
	// ErrTeacherFieldsRequired indicates a teacher signup misses class assignments.
	ErrTeacherFieldsRequired = errors.New("email and at least one class are required for teachers")
	// ErrProfileImageRequired indicates signup without a profile picture.
	ErrProfileImageRequired = errors.New("profile picture is required")
	// ErrInvalidSection indicates a section letter outside A-F.
	ErrInvalidSection = errors.New("section must be one of A, B, C, D, E, F")
)

// AuthConfig carries the credential and token settings the auth flow needs.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

// AuthService implements signup, signin and profile maintenance.
type AuthService interface {
	Signup(ctx context.Context, payload dto.SignupRequest) (dto.AccountResponse, error)
	Signin(ctx context.Context, payload dto.SigninRequest) (dto.AuthResponse, error)
	AdminLogin(ctx context.Context, payload dto.AdminLoginRequest) (dto.AuthResponse, error)
	AdminProfile() dto.AccountResponse
	CheckEmail(ctx context.Context, payload dto.CheckEmailRequest) error
	UpdateProfile(ctx context.Context, accountID uint, payload dto.ProfileUpdateRequest) (dto.AccountResponse, error)
	IssueToken(subject, role string) (string, error)
}

type authService struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	cfg       AuthConfig
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(accounts repository.AccountRepository, validate *validator.Validate, cfg AuthConfig, logger zerolog.Logger) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}

	return &authService{
		accounts:  accounts,
		validator: validate,
		policy:    bluemonday.StrictPolicy(),
		cfg:       cfg,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, payload dto.SignupRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccountResponse{}, err
	}

	role := strings.ToLower(strings.TrimSpace(payload.Role))
	if role == "" {
		role = models.RoleStudent
	}

	section := strings.ToUpper(strings.TrimSpace(payload.Section))

	switch role {
	case models.RoleStudent:
		if payload.RollYear == "" || payload.RollDept == "" || payload.RollSerial == "" || section == "" {
			return dto.AccountResponse{}, ErrStudentFieldsRequired
		}
		if !models.IsValidSectionCode(section) {
			return dto.AccountResponse{}, ErrInvalidSection
		}
		if payload.ProfileImage == "" {
			return dto.AccountResponse{}, ErrProfileImageRequired
		}
	case models.RoleTeacher:
		if len(payload.Classes) == 0 {
			return dto.AccountResponse{}, ErrTeacherFieldsRequired
		}
		if payload.ProfileImage == "" {
			return dto.AccountResponse{}, ErrProfileImageRequired
		}
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	taken, err := s.accounts.EmailTaken(ctx, email, 0)
	if err != nil {
		return dto.AccountResponse{}, err
	}
	if taken {
		return dto.AccountResponse{}, ErrEmailTaken
	}

	if role == models.RoleStudent {
		roll := models.DeriveRollNumber(payload.RollYear, payload.RollDept, payload.RollSerial)
		rollTaken, err := s.accounts.RollNumberTaken(ctx, roll, 0)
		if err != nil {
			return dto.AccountResponse{}, err
		}
		if rollTaken {
			return dto.AccountResponse{}, ErrRollNumberTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), 10)
	if err != nil {
		return dto.AccountResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		Name:            s.policy.Sanitize(strings.TrimSpace(payload.FirstName + " " + payload.LastName)),
		Email:           email,
		PasswordHash:    string(hash),
		Role:            role,
		ProfileImageURL: payload.ProfileImage,
	}

	if role == models.RoleStudent {
		account.RollYear = payload.RollYear
		account.RollDept = payload.RollDept
		account.RollSerial = payload.RollSerial
		account.Section = section
	}

	if role == models.RoleTeacher {
		classes, err := json.Marshal(payload.Classes)
		if err != nil {
			return dto.AccountResponse{}, err
		}
		account.Classes = classes
	}

	if err := s.accounts.Create(ctx, &account); err != nil {
		return dto.AccountResponse{}, err
	}

	s.logger.Info().Uint("account_id", account.ID).Str("role", role).Msg("account registered")

	return dto.NewAccountResponse(account), nil
}

func (s *authService) Signin(ctx context.Context, payload dto.SigninRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	identifier := strings.ToLower(strings.TrimSpace(payload.Identifier))

	account, err := s.accounts.GetByEmail(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) && !strings.Contains(identifier, "@") {
		account, err = s.accounts.GetByRollNumber(ctx, identifier)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(payload.Password)) != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(fmt.Sprintf("%d", account.ID), account.Role)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("account_id", account.ID).Str("role", account.Role).Msg("signin succeeded")

	return dto.AuthResponse{Token: token, User: dto.NewAccountResponse(account)}, nil
}

func (s *authService) AdminLogin(ctx context.Context, payload dto.AdminLoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email != s.cfg.AdminEmail || payload.Password != s.cfg.AdminPassword {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(AdminSubject, models.RoleAdmin)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: s.AdminProfile()}, nil
}

// AdminProfile is the synthetic account view for the configuration-supplied
// admin credential, which has no backing row.
func (s *authService) AdminProfile() dto.AccountResponse {
	return dto.AccountResponse{
		Name:  "Administrator",
		Email: s.cfg.AdminEmail,
		Role:  models.RoleAdmin,
	}
}

// CheckEmail reports whether an email is still free to register. The signup
// form calls this before submitting.
func (s *authService) CheckEmail(ctx context.Context, payload dto.CheckEmailRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	taken, err := s.accounts.EmailTaken(ctx, email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	return nil
}

func (s *authService) UpdateProfile(ctx context.Context, accountID uint, payload dto.ProfileUpdateRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccountResponse{}, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AccountResponse{}, ErrAccountNotFound
	}
	if err != nil {
		return dto.AccountResponse{}, err
	}

	if payload.Name != nil {
		account.Name = s.policy.Sanitize(strings.TrimSpace(*payload.Name))
	}

	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		taken, err := s.accounts.EmailTaken(ctx, email, account.ID)
		if err != nil {
			return dto.AccountResponse{}, err
		}
		if taken {
			return dto.AccountResponse{}, ErrEmailTaken
		}
		account.Email = email
	}

	if payload.ProfileImage != nil {
		account.ProfileImageURL = *payload.ProfileImage
	}

	if err := s.accounts.Update(ctx, &account); err != nil {
		return dto.AccountResponse{}, err
	}

	s.logger.Info().Uint("account_id", account.ID).Msg("profile updated")

	return dto.NewAccountResponse(account), nil
}

// IssueToken signs a bearer token embedding the subject and role claims.
func (s *authService) IssueToken(subject, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
