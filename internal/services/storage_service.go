package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const logoURLExpiry = 15 * time.Minute

// StorageService stores tenant logos in object storage. Object keys are
// prefixed with the tenant ID so one tenant can never address another's files.
type StorageService interface {
	UploadLogo(ctx context.Context, tenantID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	LogoURL(tenantID uuid.UUID, objectKey string) (string, error)
	DeleteLogo(ctx context.Context, tenantID uuid.UUID, objectKey string) error
	EnsureBucket(ctx context.Context) error
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client, bucket: bucket}, nil
}

func logoKey(tenantID uuid.UUID, objectKey string) string {
	return fmt.Sprintf("%s/%s", tenantID, objectKey)
}

func (m *minioStorage) UploadLogo(ctx context.Context, tenantID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	objectKey := fmt.Sprintf("logo-%s", uuid.NewString())
	_, err := m.client.PutObject(ctx, m.bucket, logoKey(tenantID, objectKey), reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (m *minioStorage) LogoURL(tenantID uuid.UUID, objectKey string) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), m.bucket, logoKey(tenantID, objectKey), logoURLExpiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioStorage) DeleteLogo(ctx context.Context, tenantID uuid.UUID, objectKey string) error {
	return m.client.RemoveObject(ctx, m.bucket, logoKey(tenantID, objectKey), minio.RemoveObjectOptions{})
}

func (m *minioStorage) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
