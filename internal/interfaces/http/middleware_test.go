package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/qrmenu-api/internal/interfaces/http"
	"github.com/jhoicas/qrmenu-api/pkg/config"
	"github.com/jhoicas/qrmenu-api/pkg/csrf"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
	"github.com/jhoicas/qrmenu-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "secreto-de-test-con-longitud-suficiente"
	testIssuer = "qrmenu-test"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     testSecret,
		CookieName: "qrmenu_session",
		ExpHours:   1,
		Issuer:     testIssuer,
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware(t *testing.T) {
	cfg := testSessionConfig()
	app := fiber.New()
	app.Get("/protected", apphttp.SessionMiddleware(cfg), okHandler)

	t.Run("sin cookie responde 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("cookie inválida responde 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "basura"})
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("cookie válida carga los locals", func(t *testing.T) {
		token, err := session.Generate(testSecret, "user-1", "ana@cafe.test", "ADMIN", testIssuer, 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
		resp := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var out map[string]any
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "ADMIN", out["role"])
	})
}

func TestRequireAdmin(t *testing.T) {
	cfg := testSessionConfig()
	app := fiber.New()
	app.Post("/admin-only", apphttp.SessionMiddleware(cfg), apphttp.RequireAdmin(), okHandler)

	viewerToken, err := session.Generate(testSecret, "user-2", "bea@cafe.test", "VIEWER", testIssuer, 1)
	require.NoError(t, err)
	adminToken, err := session.Generate(testSecret, "user-1", "ana@cafe.test", "ADMIN", testIssuer, 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: viewerToken})
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "VIEWER no puede mutar")

	req = httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: adminToken})
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// CSRF
// ──────────────────────────────────────────────────────────────────────────────

func buildCsrfApp(production, permissive bool) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequireCsrf(production, permissive, zerolog.Nop()))
	app.Post("/mutate", okHandler)
	app.Get("/read", okHandler)
	return app
}

func TestRequireCsrf(t *testing.T) {
	t.Run("GET pasa sin token", func(t *testing.T) {
		app := buildCsrfApp(true, false)
		resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/read", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("mutación sin token responde 403", func(t *testing.T) {
		app := buildCsrfApp(true, false)
		resp := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/mutate", nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("header y cookie iguales pasan", func(t *testing.T) {
		app := buildCsrfApp(true, false)
		req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
		req.Header.Set(csrf.HeaderPrimary, "tok")
		req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: "tok"})
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("header alternativo también vale", func(t *testing.T) {
		app := buildCsrfApp(true, false)
		req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
		req.Header.Set(csrf.HeaderAlt, "tok")
		req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: "tok"})
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("valores distintos responden 403", func(t *testing.T) {
		app := buildCsrfApp(true, false)
		req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
		req.Header.Set(csrf.HeaderPrimary, "tok")
		req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: "otro"})
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("bypass permisivo solo fuera de producción", func(t *testing.T) {
		dev := buildCsrfApp(false, true)
		resp := doRequest(t, dev, httptest.NewRequest(http.MethodPost, "/mutate", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode, "en desarrollo con flag el bypass deja pasar")

		prod := buildCsrfApp(true, true)
		resp = doRequest(t, prod, httptest.NewRequest(http.MethodPost, "/mutate", nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "producción ignora el flag permisivo")
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate de peticiones
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestGate(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, ratelimit.NewMonitor(), zerolog.Nop())
	app := fiber.New()
	app.Use(apphttp.RequestGate(limiter))
	app.Get("/api/venue/cafe/menu", okHandler)
	app.Get("/health", okHandler)
	app.Post("/api/products", okHandler)

	t.Run("mutaciones no pasan por el gate externo", func(t *testing.T) {
		for i := 0; i < 400; i++ {
			resp := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/products", nil))
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})

	t.Run("health está exento", func(t *testing.T) {
		for i := 0; i < 400; i++ {
			resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})

	t.Run("GET sobre presupuesto responde 429 con Retry-After", func(t *testing.T) {
		var last *http.Response
		// La regla del menú permite 300 por minuto; la 301 debe rechazarse.
		for i := 0; i < 301; i++ {
			last = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/venue/cafe/menu", nil))
		}
		require.Equal(t, http.StatusTooManyRequests, last.StatusCode)
		assert.Equal(t, "60", last.Header.Get(fiber.HeaderRetryAfter))
	})
}

// La resolución del identificador prefiere la IP del peer y cae a los
// headers de proxy.
func TestClientIDResolution(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = ratelimit.ClientID(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	_ = doRequest(t, app, req)
	// app.Test entrega una IP de peer; basta con que haya identificador.
	assert.NotEmpty(t, got)
}
