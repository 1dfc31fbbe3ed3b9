package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// AccountAdminService exposes the admin-side account management surface.
type AccountAdminService interface {
	List(ctx context.Context) ([]dto.AccountResponse, error)
	Get(ctx context.Context, id uint) (dto.AccountResponse, error)
	Update(ctx context.Context, id uint, payload dto.AdminAccountUpdateRequest) (dto.AccountResponse, error)
	Delete(ctx context.Context, id uint) error
}

type accountAdminService struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAccountAdminService constructs an AccountAdminService instance.
func NewAccountAdminService(accounts repository.AccountRepository, validate *validator.Validate, logger zerolog.Logger) AccountAdminService {
	return &accountAdminService{
		accounts:  accounts,
		validator: validate,
		logger:    logger.With().Str("component", "account_admin_service").Logger(),
	}
}

func (s *accountAdminService) List(ctx context.Context) ([]dto.AccountResponse, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAccountResponseSlice(accounts), nil
}

func (s *accountAdminService) Get(ctx context.Context, id uint) (dto.AccountResponse, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AccountResponse{}, ErrAccountNotFound
	}
	if err != nil {
		return dto.AccountResponse{}, err
	}
	return dto.NewAccountResponse(account), nil
}

func (s *accountAdminService) Update(ctx context.Context, id uint, payload dto.AdminAccountUpdateRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccountResponse{}, err
	}

	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AccountResponse{}, ErrAccountNotFound
	}
	if err != nil {
		return dto.AccountResponse{}, err
	}

	if payload.Name != nil {
		account.Name = strings.TrimSpace(*payload.Name)
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

	if payload.Role != nil {
		account.Role = strings.ToLower(*payload.Role)
	}
	if payload.RollYear != nil {
		account.RollYear = *payload.RollYear
	}
	if payload.RollDept != nil {
		account.RollDept = *payload.RollDept
	}
	if payload.RollSerial != nil {
		account.RollSerial = *payload.RollSerial
	}
	if payload.Section != nil {
		account.Section = strings.ToUpper(*payload.Section)
	}

	if account.Role == models.RoleStudent && account.RollYear != "" && account.RollDept != "" && account.RollSerial != "" {
		roll := models.DeriveRollNumber(account.RollYear, account.RollDept, account.RollSerial)
		taken, err := s.accounts.RollNumberTaken(ctx, roll, account.ID)
		if err != nil {
			return dto.AccountResponse{}, err
		}
		if taken {
			return dto.AccountResponse{}, ErrRollNumberTaken
		}
	} else {
		// The hook only derives a roll number when every component is present,
		// so an incomplete set (or a role change away from student) must clear
		// the stale handle here.
		account.RollNumber = nil
	}

	// Save goes through the model hook, so roll component changes re-derive
	// the roll number.
	if err := s.accounts.Update(ctx, &account); err != nil {
		return dto.AccountResponse{}, err
	}

	s.logger.Info().Uint("account_id", account.ID).Msg("account updated by admin")

	return dto.NewAccountResponse(account), nil
}

func (s *accountAdminService) Delete(ctx context.Context, id uint) error {
	err := s.accounts.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	return err
}
