package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/qrmenu-api/pkg/config"
)

var _ Adapter = (*SupabaseAdapter)(nil)

// SupabaseAdapter almacenamiento sobre la API REST de Supabase Storage.
type SupabaseAdapter struct {
	baseURL string
	key     string
	bucket  string
	client  *http.Client
}

// SupabaseEnabled indica si la configuración trae lo mínimo para Supabase Storage.
func SupabaseEnabled(cfg config.StorageConfig) bool {
	return cfg.SupabaseURL != "" && cfg.SupabaseKey != "" && cfg.SupabaseBucket != ""
}

// NewSupabaseAdapter construye el adaptador.
func NewSupabaseAdapter(cfg config.StorageConfig) *SupabaseAdapter {
	return &SupabaseAdapter{
		baseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		key:     cfg.SupabaseKey,
		bucket:  cfg.SupabaseBucket,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Save sube el objeto al bucket y devuelve la URL pública.
func (a *SupabaseAdapter) Save(ctx context.Context, file File, folder string) (*StoredFile, error) {
	key := path.Join(folder, uuid.New().String()+"-"+SanitizeFilename(file.Name))
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", a.baseURL, a.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(file.Data))
	if err != nil {
		return nil, fmt.Errorf("request de subida: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", file.ContentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subir a supabase: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("supabase respondió %d: %s", resp.StatusCode, string(body))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", a.baseURL, a.bucket, key)
	return &StoredFile{
		URL: publicURL,
		Remove: func(ctx context.Context) error {
			return a.removeKey(ctx, key)
		},
	}, nil
}

// Remove borra el objeto referenciado por una URL pública previa.
func (a *SupabaseAdapter) Remove(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", a.baseURL, a.bucket)
	key := strings.TrimPrefix(url, prefix)
	if key == url || key == "" {
		return fmt.Errorf("url de supabase inválida: %s", url)
	}
	return a.removeKey(ctx, key)
}

func (a *SupabaseAdapter) removeKey(ctx context.Context, key string) error {
	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", a.baseURL, a.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("request de borrado: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("borrar en supabase: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("supabase respondió %d al borrar", resp.StatusCode)
	}
	return nil
}
