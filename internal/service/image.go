package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/foodgram/backend/config"
)

// ImageStore persists decoded image bytes under a key and returns a
// retrievable URL.
type ImageStore interface {
	Save(ctx context.Context, data []byte, key string) (string, error)
}

// S3ImageStore stores recipe images in an S3 bucket with public-read URLs.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Save(ctx context.Context, data []byte, key string) (string, error) {
	contentType := "image/" + strings.TrimPrefix(filepath.Ext(key), ".")
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	logrus.WithField("url", publicURL).Info("uploaded recipe image to S3")
	return publicURL, nil
}

// LocalImageStore writes images under a directory and serves them from a
// base URL. Used in development and tests where no bucket is configured.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

func (s *LocalImageStore) Save(ctx context.Context, data []byte, key string) (string, error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + key, nil
}

// ImageService decodes inline base64 image payloads and hands them to a
// store.
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// SaveBase64 decodes a "data:image/<ext>;base64,<payload>" string and stores
// it under a generated key. A malformed payload is a validation failure.
func (s *ImageService) SaveBase64(ctx context.Context, payload string) (string, error) {
	data, ext, err := decodeBase64Image(payload)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipes/images/%s.%s", uuid.New().String(), ext)
	return s.store.Save(ctx, data, key)
}

func decodeBase64Image(payload string) ([]byte, string, error) {
	if !strings.HasPrefix(payload, "data:image/") {
		return nil, "", ErrInvalidImage
	}

	format, encoded, found := strings.Cut(payload, ";base64,")
	if !found {
		return nil, "", ErrInvalidImage
	}
	ext := strings.TrimPrefix(format, "data:image/")
	if ext == "" {
		return nil, "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	return data, ext, nil
}
