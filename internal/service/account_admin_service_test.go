package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/dto"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

func newAccountAdminService(t *testing.T) (AccountAdminService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAccountAdminService(repository.NewAccountRepository(db), validate, testLogger())
	return svc, db
}

func seedAdminStudent(t *testing.T, db *gorm.DB, email, serial string) models.Account {
	t.Helper()
	account := models.Account{
		Name:         "Seed Student",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleStudent,
		RollYear:     "FA24",
		RollDept:     "BCS",
		RollSerial:   serial,
		Section:      "A",
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func TestAccountAdminUpdateRollCollision(t *testing.T) {
	svc, db := newAccountAdminService(t)
	ctx := context.Background()

	seedAdminStudent(t, db, "first@example.com", "101")
	second := seedAdminStudent(t, db, "second@example.com", "102")

	serial := "101"
	_, err := svc.Update(ctx, second.ID, dto.AdminAccountUpdateRequest{RollSerial: &serial})
	require.ErrorIs(t, err, ErrRollNumberTaken)
}

func TestAccountAdminUpdateRollReassignsSelf(t *testing.T) {
	svc, db := newAccountAdminService(t)
	ctx := context.Background()

	account := seedAdminStudent(t, db, "solo@example.com", "150")

	// Re-submitting the account's own components must not collide with itself.
	serial := "150"
	updated, err := svc.Update(ctx, account.ID, dto.AdminAccountUpdateRequest{RollSerial: &serial})
	require.NoError(t, err)
	require.Equal(t, "fa24bcs150", updated.RollNumber)
}

func TestAccountAdminUpdateRoleChangeClearsRollNumber(t *testing.T) {
	svc, db := newAccountAdminService(t)
	ctx := context.Background()

	account := seedAdminStudent(t, db, "promoted@example.com", "160")

	role := models.RoleTeacher
	updated, err := svc.Update(ctx, account.ID, dto.AdminAccountUpdateRequest{Role: &role})
	require.NoError(t, err)
	require.Empty(t, updated.RollNumber)

	var stored models.Account
	require.NoError(t, db.First(&stored, account.ID).Error)
	require.Nil(t, stored.RollNumber)
}

func TestAccountAdminUpdateNotFound(t *testing.T) {
	svc, _ := newAccountAdminService(t)

	name := "Nobody"
	_, err := svc.Update(context.Background(), 9999, dto.AdminAccountUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrAccountNotFound)
}
