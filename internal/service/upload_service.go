package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/dto"
)

// ErrUnsupportedImageType rejects profile uploads that are not images.
var ErrUnsupportedImageType = errors.New("only image files are allowed")

// UploadService stores standalone profile images.
type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error)
}

type uploadService struct {
	uploader FileUploader
	logger   zerolog.Logger
}

// NewUploadService constructs an UploadService instance.
func NewUploadService(uploader FileUploader, logger zerolog.Logger) UploadService {
	return &uploadService{
		uploader: uploader,
		logger:   logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error) {
	if file == nil {
		return dto.UploadResponse{}, ErrFileRequired
	}

	if err := detectImageType(file); err != nil {
		return dto.UploadResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	url, err := s.uploader.Upload(ctx, FolderProfiles, file.Filename, reader)
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Info().Str("file_name", file.Filename).Msg("profile image uploaded")

	return dto.UploadResponse{URL: url, FileName: file.Filename}, nil
}

func detectImageType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	switch {
	case mime.Is("image/jpeg"), mime.Is("image/png"), mime.Is("image/webp"), mime.Is("image/gif"):
		return nil
	default:
		return ErrUnsupportedImageType
	}
}
