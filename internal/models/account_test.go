package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Account{}))
	return db
}

func TestAccountDerivesRollNumberOnSave(t *testing.T) {
	db := openTestDB(t)

	account := Account{
		Name:         "Ayesha Khan",
		Email:        "Ayesha@Example.com",
		PasswordHash: "x",
		Role:         RoleStudent,
		RollYear:     "FA24",
		RollDept:     "BCS",
		RollSerial:   "101",
		Section:      "A",
	}
	require.NoError(t, db.Create(&account).Error)

	require.NotNil(t, account.RollNumber)
	require.Equal(t, "fa24bcs101", *account.RollNumber)
	require.Equal(t, "ayesha@example.com", account.Email)
}

func TestAccountRollNumberTracksComponentChanges(t *testing.T) {
	db := openTestDB(t)

	account := Account{
		Name:         "Bilal Ahmed",
		Email:        "bilal@example.com",
		PasswordHash: "x",
		Role:         RoleStudent,
		RollYear:     "FA24",
		RollDept:     "BCS",
		RollSerial:   "102",
		Section:      "B",
	}
	require.NoError(t, db.Create(&account).Error)

	account.RollSerial = "203"
	require.NoError(t, db.Save(&account).Error)

	require.NotNil(t, account.RollNumber)
	require.Equal(t, "fa24bcs203", *account.RollNumber)
}

func TestAccountTeacherHasNoRollNumber(t *testing.T) {
	db := openTestDB(t)

	account := Account{
		Name:         "Sana Tariq",
		Email:        "sana@example.com",
		PasswordHash: "x",
		Role:         RoleTeacher,
	}
	require.NoError(t, db.Create(&account).Error)
	require.Nil(t, account.RollNumber)
}

func TestAccountEmailUniqueAcrossRoles(t *testing.T) {
	db := openTestDB(t)

	first := Account{Name: "One", Email: "shared@example.com", PasswordHash: "x", Role: RoleTeacher}
	require.NoError(t, db.Create(&first).Error)

	second := Account{
		Name:         "Two",
		Email:        "shared@example.com",
		PasswordHash: "x",
		Role:         RoleStudent,
		RollYear:     "FA24",
		RollDept:     "BSE",
		RollSerial:   "001",
		Section:      "A",
	}
	require.Error(t, db.Create(&second).Error)
}

func TestDeriveRollNumberLowercases(t *testing.T) {
	require.Equal(t, "fa24bcs101", DeriveRollNumber("FA24", "BCS", "101"))
}
