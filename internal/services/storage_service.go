// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/i18n"
)

const recipeImageFolder = "recipes/images"

// ImageStore persists decoded recipe images and returns a public reference.
type ImageStore interface {
	SaveImage(ctx context.Context, payload string) (string, error)
	DeleteImage(ctx context.Context, ref string) error
}

type StorageService struct {
	s3Client *s3.S3
	aws      config.AWSConfig
	media    config.MediaConfig
}

var _ ImageStore = (*StorageService)(nil)

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{aws: cfg.AWS, media: cfg.Media}
	if cfg.AWS.AccessKeyID == "" {
		// Local media directory when S3 is not configured
		return svc, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// UsesS3 reports whether images go to S3 rather than the local media root.
func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

// SaveImage decodes a base64 payload, optionally wrapped in a data URI
// ("data:image/png;base64,..."), and stores it.
func (s *StorageService) SaveImage(ctx context.Context, payload string) (string, error) {
	data, err := decodeImagePayload(payload)
	if err != nil {
		return "", validationError("image", i18n.KeyRecipeImage)
	}

	if s.media.MaxImageBytes > 0 && int64(len(data)) > s.media.MaxImageBytes {
		return "", validationError("image", i18n.KeyRecipeImage)
	}

	ext, contentType, ok := detectImageType(data)
	if !ok {
		return "", validationError("image", i18n.KeyRecipeImage)
	}

	key := s.generateFileName(ext, recipeImageFolder)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, contentType)
	}
	return s.uploadToLocal(data, key)
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.getS3URL(key), nil
}

func (s *StorageService) uploadToLocal(data []byte, key string) (string, error) {
	target := filepath.Join(s.media.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return strings.TrimRight(s.media.BaseURL, "/") + "/" + key, nil
}

// DeleteImage removes a stored image by the reference SaveImage returned.
// Unknown references are ignored.
func (s *StorageService) DeleteImage(ctx context.Context, ref string) error {
	key, ok := s.keyFromRef(ref)
	if !ok {
		return nil
	}

	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.media.Root, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete image: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.aws.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) keyFromRef(ref string) (string, bool) {
	prefix := strings.TrimRight(s.media.BaseURL, "/") + "/"
	if s.s3Client != nil {
		prefix = s.getS3URL("")
	}

	key, found := strings.CutPrefix(ref, prefix)
	if !found || key == "" || strings.Contains(key, "..") {
		logrus.WithField("ref", ref).Debug("Image reference outside managed storage")
		return "", false
	}
	return path.Clean(key), true
}

func (s *StorageService) generateFileName(ext, folder string) string {
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}

	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.aws.S3Bucket, s.aws.Region, key)
}

func decodeImagePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if rest, found := strings.CutPrefix(payload, "data:"); found {
		meta, encoded, ok := strings.Cut(rest, ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("unsupported data URI")
		}
		payload = encoded
	}
	if payload == "" {
		return nil, fmt.Errorf("empty image payload")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// detectImageType checks file signatures for the formats recipes accept.
func detectImageType(buffer []byte) (ext, contentType string, ok bool) {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return ".jpg", "image/jpeg", true
	case len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47:
		return ".png", "image/png", true
	case len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a"):
		return ".gif", "image/gif", true
	}
	return "", "", false
}
