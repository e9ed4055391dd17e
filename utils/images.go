package utils

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// ImageStore persists uploaded meal images and returns the public URL plus
// the storage key/path the record keeps for later cleanup.
type ImageStore interface {
	Save(ctx context.Context, data []byte, contentType string) (url, path string, err error)
	Remove(ctx context.Context, path string) error
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}

// LocalImageStore writes images under a directory served as static files.
type LocalImageStore struct {
	Dir     string
	BaseURL string // e.g. "/uploads"
}

func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *LocalImageStore) Save(_ context.Context, data []byte, contentType string) (string, string, error) {
	name := uuid.NewString() + extensionFor(contentType)
	path := filepath.Join(l.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write image: %w", err)
	}
	return l.BaseURL + "/" + name, path, nil
}

func (l *LocalImageStore) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// S3ImageStore uploads images to an S3 bucket under meal-images/ and serves
// them through a CloudFront distribution.
type S3ImageStore struct {
	Client        *s3.Client
	Bucket        string
	CloudFrontURL string
}

func (u *S3ImageStore) Save(ctx context.Context, data []byte, contentType string) (string, string, error) {
	key := fmt.Sprintf("meal-images/%s%s", uuid.NewString(), extensionFor(contentType))

	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(u.CloudFrontURL, "/"), key), key, nil
}

func (u *S3ImageStore) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	_, err := u.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(path),
	})
	return err
}
