package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
)

// Timeout del fetch hacia el origen de la imagen.
const proxyTimeout = 10 * time.Second

// Tamaño máximo de imagen proxyada.
const proxyMaxBytes = 8 << 20

// Hosts de imagen permitidos. Lista fija: el proxy no es un open relay.
var proxyAllowedHosts = map[string]bool{
	"images.unsplash.com":     true,
	"res.cloudinary.com":      true,
	"storage.googleapis.com":  true,
	"qrmenu-assets.b-cdn.net": true,
	"supabase.co":             true,
}

// ImageProxyHandler proxyea imágenes externas del menú con allow-list y
// timeout propio, distinguiendo timeout de error de origen.
type ImageProxyHandler struct {
	client *http.Client
}

// NewImageProxyHandler construye el handler.
func NewImageProxyHandler() *ImageProxyHandler {
	return &ImageProxyHandler{client: &http.Client{Timeout: proxyTimeout}}
}

// Fetch godoc
// @Summary      Proxy de imágenes externas
// @Tags         menu
// @Param        url  query  string  true  "URL de la imagen"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/image-proxy [get]
func (h *ImageProxyHandler) Fetch(c *fiber.Ctx) error {
	raw := c.Query("url")
	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_URL", Message: "url inválida"})
	}
	if !proxyHostAllowed(target.Hostname()) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "HOST_NOT_ALLOWED", Message: "host no permitido"})
	}

	req, err := http.NewRequestWithContext(c.UserContext(), http.MethodGet, target.String(), nil)
	if err != nil {
		return internalError(c, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if (errors.As(err, &urlErr) && urlErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "UPSTREAM_TIMEOUT", Message: "el origen de la imagen no respondió a tiempo"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: "no se pudo obtener la imagen"})
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: "el origen de la imagen respondió con error"})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, proxyMaxBytes))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: "lectura del origen interrumpida"})
	}

	c.Set(fiber.HeaderContentType, resp.Header.Get(fiber.HeaderContentType))
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}

// proxyHostAllowed acepta el host exacto o un subdominio de uno permitido.
func proxyHostAllowed(host string) bool {
	if proxyAllowedHosts[host] {
		return true
	}
	for allowed := range proxyAllowedHosts {
		if len(host) > len(allowed) && host[len(host)-len(allowed)-1] == '.' && host[len(host)-len(allowed):] == allowed {
			return true
		}
	}
	return false
}
