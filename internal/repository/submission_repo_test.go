package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Assignment{},
		&models.Quiz{},
		&models.Submission{},
		&models.QuizSubmission{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, email, serial string) models.Account {
	t.Helper()
	account := models.Account{
		Name:         "Student " + serial,
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

func TestSubmissionUpsertKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	assignment := models.Assignment{
		Title: "Lab 1", CourseName: "OS", Section: "A",
		StartDate: time.Now(), DueDate: time.Now().Add(24 * time.Hour),
		CreatedByID: 1,
	}
	require.NoError(t, db.Create(&assignment).Error)
	student := seedStudent(t, db, "s1@example.com", "101")

	first := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Upsert(ctx, &models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		FileURL:      "https://cdn.example.com/v1.pdf",
		FileName:     "v1.pdf",
		FileType:     models.FileTypePDF,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  &first,
	}))

	second := time.Now()
	require.NoError(t, repo.Upsert(ctx, &models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		FileURL:      "https://cdn.example.com/v2.pdf",
		FileName:     "v2.pdf",
		FileType:     models.FileTypePDF,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  &second,
	}))

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	stored, err := repo.GetByAssignmentAndStudent(ctx, assignment.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, "v2.pdf", stored.FileName)
	require.Equal(t, "https://cdn.example.com/v2.pdf", stored.FileURL)
}

func TestSubmissionListForAssignmentNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	assignment := models.Assignment{
		Title: "Lab 2", CourseName: "OS", Section: "A",
		StartDate: time.Now(), DueDate: time.Now().Add(24 * time.Hour),
		CreatedByID: 1,
	}
	require.NoError(t, db.Create(&assignment).Error)

	early := time.Now().Add(-2 * time.Hour)
	late := time.Now().Add(-10 * time.Minute)
	for i, stamp := range []time.Time{early, late} {
		student := seedStudent(t, db, fmt.Sprintf("s%d@example.com", i), fmt.Sprintf("10%d", i))
		when := stamp
		require.NoError(t, repo.Upsert(ctx, &models.Submission{
			AssignmentID: assignment.ID,
			StudentID:    student.ID,
			FileURL:      "https://cdn.example.com/x.pdf",
			FileName:     "x.pdf",
			FileType:     models.FileTypePDF,
			Status:       models.SubmissionStatusSubmitted,
			SubmittedAt:  &when,
		}))
	}

	listed, err := repo.ListForAssignment(ctx, assignment.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.True(t, listed[0].SubmittedAt.After(*listed[1].SubmittedAt))
	require.NotZero(t, listed[0].Student.ID)
}

func TestQuizSubmissionUpsertKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewQuizSubmissionRepository(db)
	ctx := context.Background()

	quiz := models.Quiz{
		Title: "Quiz 1", CourseName: "DB", Section: "A", Marks: 10,
		StartDate: time.Now(), DueDate: time.Now().Add(24 * time.Hour),
		CreatedByID: 1,
	}
	require.NoError(t, db.Create(&quiz).Error)
	student := seedStudent(t, db, "q1@example.com", "301")

	now := time.Now()
	for i := 0; i < 2; i++ {
		when := now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Upsert(ctx, &models.QuizSubmission{
			QuizID:      quiz.ID,
			StudentID:   student.ID,
			FileURL:     fmt.Sprintf("https://cdn.example.com/q%d.pdf", i),
			FileName:    fmt.Sprintf("q%d.pdf", i),
			FileType:    models.FileTypePDF,
			Status:      models.SubmissionStatusSubmitted,
			SubmittedAt: &when,
		}))
	}

	var count int64
	require.NoError(t, db.Model(&models.QuizSubmission{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
