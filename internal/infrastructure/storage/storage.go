package storage

import (
	"context"
	"strings"
)

// File archivo recibido en un upload, ya validado por tamaño y MIME.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// StoredFile resultado de guardar: URL pública y borrado opcional del objeto
// recién escrito (compensación si la actualización de DB falla después).
type StoredFile struct {
	URL    string
	Remove func(ctx context.Context) error
}

// Adapter contrato de almacenamiento de imágenes. Tres implementaciones
// intercambiables: filesystem local, objeto S3-compatible (R2) y Supabase
// Storage. La selección es por configuración, transparente para las rutas.
type Adapter interface {
	Save(ctx context.Context, file File, folder string) (*StoredFile, error)
	Remove(ctx context.Context, url string) error
}

// SanitizeFilename normaliza el nombre del archivo subido: minúsculas,
// caracteres fuera de [a-z0-9.-_] a guión, tope de 64 caracteres.
func SanitizeFilename(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	s := b.String()
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}
