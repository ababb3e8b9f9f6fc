package storage

import (
	"fmt"
	"strings"

	"github.com/jhoicas/qrmenu-api/pkg/config"
)

// Resolve selecciona el adaptador según STORAGE_PROVIDER. Un proveedor
// explícito sin su configuración es un error de arranque; "auto" sondea en
// orden configurado-primero (r2 → supabase) y cae a local.
func Resolve(cfg config.StorageConfig) (Adapter, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider != "r2" && provider != "supabase" && provider != "local" {
		provider = "auto"
	}

	switch provider {
	case "r2":
		if !S3Enabled(cfg) {
			return nil, fmt.Errorf("STORAGE_PROVIDER=r2 pero falta configuración S3")
		}
		return NewS3Adapter(cfg)
	case "supabase":
		if !SupabaseEnabled(cfg) {
			return nil, fmt.Errorf("STORAGE_PROVIDER=supabase pero falta configuración de Supabase")
		}
		return NewSupabaseAdapter(cfg), nil
	case "local":
		return NewLocalAdapter(cfg.LocalDir, cfg.LocalPublicURL), nil
	}

	if S3Enabled(cfg) {
		return NewS3Adapter(cfg)
	}
	if SupabaseEnabled(cfg) {
		return NewSupabaseAdapter(cfg), nil
	}
	return NewLocalAdapter(cfg.LocalDir, cfg.LocalPublicURL), nil
}
