package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureImageService records the last upload request it was handed.
type captureImageService struct {
	req services.UploadRequest
}

func (s *captureImageService) StoreUpload(ctx context.Context, req services.UploadRequest) (*models.ImageMetadata, error) {
	s.req = req
	return &models.ImageMetadata{
		ImageID:      "img-1",
		OriginalName: req.OriginalName,
		FileSize:     req.FileSize,
		Width:        req.Width,
		Height:       req.Height,
		UploadedBy:   req.UserID,
	}, nil
}

func uploadRequest(t *testing.T, fields map[string]string, fileName, fileBody string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileBody))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImageForwardsDimensions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	capture := &captureImageService{}
	handler := NewItemHandler(nil, capture)
	router := gin.New()
	router.POST("/upload", handler.UploadImage)

	fileBody := "not really a jpeg"
	req := uploadRequest(t, map[string]string{
		"user_id": "u1",
		"width":   "800",
		"height":  "600",
	}, "jacket.jpg", fileBody)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", capture.req.UserID)
	assert.Equal(t, "jacket.jpg", capture.req.OriginalName)
	assert.Equal(t, int64(len(fileBody)), capture.req.FileSize)
	assert.Equal(t, 800, capture.req.Width)
	assert.Equal(t, 600, capture.req.Height)
}

func TestUploadImageValidatesForm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewItemHandler(nil, &captureImageService{})
	router := gin.New()
	router.POST("/upload", handler.UploadImage)

	// Missing user_id.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, nil, "jacket.jpg", "x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing file.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, map[string]string{"user_id": "u1"}, "", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
