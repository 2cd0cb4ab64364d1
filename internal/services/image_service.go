package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rewoven/marketplace-backend/internal/config"
	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ImageServiceImpl implements ImageService
var _ ImageService = (*ImageServiceImpl)(nil)

// ImageServiceImpl validates and stores upload metadata. The metadata
// record and the upload award commit in one unit of work, so a failed
// store never earns points and a failed award never leaves an orphaned
// record behind.
type ImageServiceImpl struct {
	imageRepo repositories.ImageRepository
	points    PointsService
	cfg       config.UploadConfig
}

// NewImageService creates a new ImageServiceImpl
func NewImageService(imageRepo repositories.ImageRepository, points PointsService, cfg config.UploadConfig) *ImageServiceImpl {
	return &ImageServiceImpl{
		imageRepo: imageRepo,
		points:    points,
		cfg:       cfg,
	}
}

// validate applies the configured size and extension limits.
func (s *ImageServiceImpl) validate(req UploadRequest) error {
	if req.FileSize <= 0 || req.FileSize > s.cfg.MaxFileSize {
		return fmt.Errorf("%w: file too large (max %d bytes)", ErrInvalidFile, s.cfg.MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(req.OriginalName))
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported format %q", ErrInvalidFile, ext)
}

// StoreUpload validates the upload, then stores its metadata and awards
// upload points atomically.
func (s *ImageServiceImpl) StoreUpload(ctx context.Context, req UploadRequest) (*models.ImageMetadata, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	imageID := uuid.NewString()
	image := &models.ImageMetadata{
		ImageID:      imageID,
		OriginalName: req.OriginalName,
		FileName:     imageID + strings.ToLower(filepath.Ext(req.OriginalName)),
		FileSize:     req.FileSize,
		Width:        req.Width,
		Height:       req.Height,
		UploadedBy:   req.UserID,
	}

	_, err := s.points.RecordUpload(ctx, req.UserID, "Uploaded new item", func(ctx context.Context) error {
		if err := s.imageRepo.Create(ctx, image); err != nil {
			return fmt.Errorf("failed to store upload: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Upload stored", "imageId", image.ImageID, "userId", req.UserID, "size", req.FileSize)
	return image, nil
}
