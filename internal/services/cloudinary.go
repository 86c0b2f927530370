package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService handles all Cloudinary operations
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates a new Cloudinary service instance
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadAvatar uploads an avatar image, overwriting the previous one
func (s *CloudinaryService) UploadAvatar(ctx context.Context, file multipart.File, userID string) (string, error) {
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     fmt.Sprintf("avatars/%s", userID),
		Folder:       "sportbuddy/avatars",
		Overwrite:    &overwrite,
		ResourceType: "image",
		Format:       "jpg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// UploadChatImage uploads an image attached to a chat message
func (s *CloudinaryService) UploadChatImage(ctx context.Context, file multipart.File, sessionID, messageID string) (string, error) {
	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     fmt.Sprintf("chat/%s/%s", sessionID, messageID),
		Folder:       "sportbuddy/chat",
		ResourceType: "image",
		Format:       "jpg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload chat image: %w", err)
	}

	return uploadResult.SecureURL, nil
}
