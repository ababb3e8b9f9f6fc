package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var _ Adapter = (*LocalAdapter)(nil)

// LocalAdapter guarda archivos en el filesystem local y los sirve bajo un
// prefijo público (desarrollo y despliegues de una sola máquina).
type LocalAdapter struct {
	dir       string
	publicURL string
}

// NewLocalAdapter construye el adaptador local.
func NewLocalAdapter(dir, publicURL string) *LocalAdapter {
	return &LocalAdapter{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}
}

// Save escribe el archivo con nombre único y devuelve su URL pública.
func (a *LocalAdapter) Save(_ context.Context, file File, folder string) (*StoredFile, error) {
	name := uuid.New().String() + "-" + SanitizeFilename(file.Name)
	dir := filepath.Join(a.dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, file.Data, 0o644); err != nil {
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}
	url := a.publicURL + "/" + path.Join(folder, name)
	return &StoredFile{
		URL: url,
		Remove: func(context.Context) error {
			return os.Remove(fullPath)
		},
	}, nil
}

// Remove borra el archivo referenciado por una URL pública previa.
func (a *LocalAdapter) Remove(_ context.Context, url string) error {
	rel := strings.TrimPrefix(url, a.publicURL)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("url de archivo local inválida: %s", url)
	}
	return os.Remove(filepath.Join(a.dir, filepath.FromSlash(rel)))
}
