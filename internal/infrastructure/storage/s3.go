package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/qrmenu-api/pkg/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ Adapter = (*S3Adapter)(nil)

// S3Adapter almacenamiento en un bucket S3-compatible (Cloudflare R2).
type S3Adapter struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// S3Enabled indica si la configuración trae lo mínimo para usar R2/S3.
func S3Enabled(cfg config.StorageConfig) bool {
	return cfg.S3Endpoint != "" && cfg.S3AccessKey != "" && cfg.S3SecretKey != "" && cfg.S3Bucket != ""
}

// NewS3Adapter construye el cliente del bucket.
func NewS3Adapter(cfg config.StorageConfig) (*S3Adapter, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.S3Endpoint, "https://"), "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cliente S3: %w", err)
	}
	return &S3Adapter{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}, nil
}

// Save sube el objeto y devuelve la URL pública del bucket.
func (a *S3Adapter) Save(ctx context.Context, file File, folder string) (*StoredFile, error) {
	key := path.Join(folder, uuid.New().String()+"-"+SanitizeFilename(file.Name))
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return nil, fmt.Errorf("subir objeto: %w", err)
	}
	return &StoredFile{
		URL: a.publicURL + "/" + key,
		Remove: func(ctx context.Context) error {
			return a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{})
		},
	}, nil
}

// Remove borra el objeto referenciado por una URL pública previa.
func (a *S3Adapter) Remove(ctx context.Context, url string) error {
	key := strings.TrimPrefix(strings.TrimPrefix(url, a.publicURL), "/")
	if key == "" {
		return fmt.Errorf("url de objeto inválida: %s", url)
	}
	return a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{})
}
