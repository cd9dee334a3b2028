package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ ports.ObjectStorage = (*MinIOStorage)(nil)

// DefaultURLExpiry vigencia de los enlaces prefirmados de descarga.
const DefaultURLExpiry = 7 * 24 * time.Hour

// MinIOStorage almacenamiento de reportes en un bucket S3/MinIO.
type MinIOStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinIOStorage construye el cliente y asegura que el bucket exista.
func NewMinIOStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: crear cliente: %w", err)
	}
	s := &MinIOStorage{client: client, bucket: bucket, expiry: DefaultURLExpiry}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio: verificar bucket %s: %w", s.bucket, err)
	}
	if found {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio: crear bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put sube el documento y devuelve la llave.
func (s *MinIOStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: subir %s: %w", key, err)
	}
	return key, nil
}

// URL enlace prefirmado de descarga.
func (s *MinIOStorage) URL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("minio: prefirmar %s: %w", key, err)
	}
	return u.String(), nil
}
