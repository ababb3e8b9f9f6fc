package csrf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qrmenu-api/pkg/csrf"
)

func TestNewToken(t *testing.T) {
	tok, err := csrf.NewToken()
	require.NoError(t, err)
	assert.Len(t, tok, csrf.TokenBytes*2, "el token se emite como hex")

	other, err := csrf.NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other, "dos tokens nunca deben coincidir")
}

func TestReadCookie(t *testing.T) {
	raw := "foo=bar; XSRF-TOKEN=abc123; otra=valor"

	assert.Equal(t, "abc123", csrf.ReadCookie(raw, "XSRF-TOKEN"))
	assert.Equal(t, "bar", csrf.ReadCookie(raw, "foo"))
	assert.Equal(t, "", csrf.ReadCookie(raw, "inexistente"))
	assert.Equal(t, "", csrf.ReadCookie("", "XSRF-TOKEN"))

	// Espacios alrededor del par no afectan la lectura.
	assert.Equal(t, "x", csrf.ReadCookie("  XSRF-TOKEN=x  ", "XSRF-TOKEN"))
}

// Tabla de verdad del double-submit: solo header y cookie presentes e
// iguales pasan; cualquier otra combinación rechaza.
func TestVerify(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		cookies string
		wantOK  bool
	}{
		{"ambos presentes e iguales", "tok", "XSRF-TOKEN=tok", true},
		{"header ausente", "", "XSRF-TOKEN=tok", false},
		{"cookie ausente", "tok", "", false},
		{"ambos ausentes", "", "", false},
		{"valores distintos", "tok", "XSRF-TOKEN=otro", false},
		{"cookie con otro nombre", "tok", "CSRF=tok", false},
		{"iguales entre otras cookies", "tok", "a=1; XSRF-TOKEN=tok; b=2", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := csrf.Verify(tc.header, tc.cookies)
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				// El mensaje es genérico: no revela qué lado falló.
				assert.Equal(t, "token CSRF no válido", err.Error())
			}
		})
	}
}
