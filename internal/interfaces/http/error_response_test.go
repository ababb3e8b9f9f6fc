package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func internalErrorApp(production bool) *fiber.App {
	app := fiber.New()
	app.Use(errorContext(production, zerolog.Nop()))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return internalError(c, errors.New("insert product: detalle interno de SQL"))
	})
	return app
}

// En producción el cuerpo del 500 es genérico: el detalle del error queda en
// el log, nunca en la respuesta.
func TestInternalErrorProductionHidesDetail(t *testing.T) {
	app := internalErrorApp(true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "error interno")
	assert.NotContains(t, string(body), "SQL", "el detalle interno no debe llegar al cliente")
	assert.NotContains(t, string(body), "insert product")
}

func TestInternalErrorDevelopmentShowsDetail(t *testing.T) {
	app := internalErrorApp(false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "insert product")
}
