package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
)

// Cloudinary folders per artifact kind, mirroring the upload layout the
// front-ends expect.
const (
	FolderAssignments     = "assignments"
	FolderQuizzes         = "quizzes"
	FolderSubmissions     = "student_submissions"
	FolderQuizSubmissions = "student_quiz_submissions"
	FolderProfiles        = "classroom-profiles"

	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedFileType rejects coursework files that are not PDF or DOCX.
	ErrUnsupportedFileType = errors.New("only PDF and DOCX files are allowed")
	// ErrFileRequired indicates a hand-in without an attached file.
	ErrFileRequired = errors.New("file is required for submission")
	// ErrNotOwner rejects coursework mutation by a teacher other than the creator.
	ErrNotOwner = errors.New("only the creating teacher may modify this item")
	// ErrAssignmentNotFound indicates the assignment id does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrQuizNotFound indicates the quiz id does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrYearUnknown rejects coursework targeting a year code that is not in the hierarchy.
	ErrYearUnknown = errors.New("unknown year code")
	// ErrDepartmentUnknown rejects coursework targeting a department code that is not in the hierarchy.
	ErrDepartmentUnknown = errors.New("unknown department code")
)

// FileUploader abstracts the object-storage collaborator.
type FileUploader interface {
	Upload(ctx context.Context, folder, name string, reader io.Reader) (string, error)
}

// detectCourseworkFileType sniffs the payload and maps it onto the stored
// file-type enum. Detection reads content, not the client-supplied header.
func detectCourseworkFileType(file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	switch {
	case mime.Is("application/pdf"):
		return models.FileTypePDF, nil
	case mime.Is(docxMIME):
		return models.FileTypeDOCX, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

// uploadCourseworkFile pushes the file into the given folder and returns the
// secure URL. Upload happens before any database write so a storage failure
// leaves no orphaned metadata.
func uploadCourseworkFile(ctx context.Context, uploader FileUploader, folder string, file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	url, err := uploader.Upload(ctx, folder, file.Filename, reader)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}

// checkCohortCodes verifies that the year and department codes a coursework
// item targets exist in the hierarchy. Empty codes are allowed; the student
// feed then matches on section alone.
func checkCohortCodes(ctx context.Context, years repository.YearRepository, departments repository.DepartmentRepository, year, department string) error {
	if year != "" {
		known, err := years.CodeExists(ctx, year)
		if err != nil {
			return err
		}
		if !known {
			return ErrYearUnknown
		}
	}

	if department != "" {
		known, err := departments.CodeExists(ctx, department)
		if err != nil {
			return err
		}
		if !known {
			return ErrDepartmentUnknown
		}
	}

	return nil
}

// parseDateField accepts RFC 3339 timestamps or bare dates, which is what the
// multipart form clients send.
func parseDateField(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return parsed, nil
}
