package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func TestUploadImageStoresInProfileFolder(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewUploadService(uploader, testLogger())

	result, err := svc.UploadImage(context.Background(), newTestFileHeader(t, "me.png", pngBytes))
	require.NoError(t, err)
	require.Equal(t, "me.png", result.FileName)
	require.NotEmpty(t, result.URL)
	require.Equal(t, []string{FolderProfiles}, uploader.folders)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewUploadService(uploader, testLogger())

	_, err := svc.UploadImage(context.Background(), newTestFileHeader(t, "cv.pdf", pdfBytes))
	require.ErrorIs(t, err, ErrUnsupportedImageType)
	require.Equal(t, 0, uploader.uploads)

	_, err = svc.UploadImage(context.Background(), nil)
	require.ErrorIs(t, err, ErrFileRequired)
}
