// Package storage uploads images to Cloudflare R2 (S3-compatible).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"lapak-storefront/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string
	UploadTimeout   time.Duration
}

// objectAPI is the part of *s3.Client the storage uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type R2Storage struct {
	client        objectAPI
	bucketName    string
	publicURL     string
	uploadTimeout time.Duration
}

func NewR2Storage(ctx context.Context, c R2Config) (*R2Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.AccessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID))
		o.UsePathStyle = true
	})

	return newR2Storage(client, c), nil
}

func newR2Storage(client objectAPI, c R2Config) *R2Storage {
	timeout := c.UploadTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &R2Storage{
		client:        client,
		bucketName:    c.BucketName,
		publicURL:     strings.TrimSuffix(c.PublicURL, "/"),
		uploadTimeout: timeout,
	}
}

// Upload stores data under folder with a unique key derived from name and
// returns its public URL.
func (s *R2Storage) Upload(ctx context.Context, folder, name string, data []byte, contentType string) (string, error) {
	key := objectKey(folder, name, contentType)

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes an object by its public URL. URLs outside the bucket's
// public domain are refused.
func (s *R2Storage) Delete(ctx context.Context, fileURL string) error {
	key, err := s.keyFromURL(fileURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from R2: %w", err)
	}
	return nil
}

func (s *R2Storage) keyFromURL(fileURL string) (string, error) {
	if s.publicURL == "" || !strings.HasPrefix(fileURL, s.publicURL+"/") {
		return "", fmt.Errorf("invalid file URL: domain mismatch")
	}
	key := strings.TrimPrefix(fileURL, s.publicURL+"/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid file key derived from URL")
	}
	return key, nil
}

func objectKey(folder, name, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/webp":
		ext = ".webp"
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	}
	base := utils.GenerateSlug(strings.TrimSuffix(name, path.Ext(name)))
	if base == "" {
		base = "file"
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s-%s%s", folder, base, uuid.NewString(), ext)
}
