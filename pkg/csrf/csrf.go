package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// Contrato de wire fijo: nombre de la cookie y las dos variantes de header
// que aceptan los clientes del panel admin.
const (
	CookieName    = "XSRF-TOKEN"
	HeaderPrimary = "X-CSRF-Token"
	HeaderAlt     = "X-XSRF-Token"
)

// TokenBytes longitud del token aleatorio (se emite como hex de 64 caracteres).
const TokenBytes = 32

// NewToken genera un token CSRF aleatorio en hex.
func NewToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar token csrf: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ReadCookie extrae el valor de una cookie del header Cookie crudo.
// Se lee el string crudo en vez del parseo del framework para comparar
// exactamente lo que mandó el cliente.
func ReadCookie(cookieHeader, name string) string {
	for _, part := range strings.Split(cookieHeader, ";") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if found && k == name {
			return v
		}
	}
	return ""
}

// Verify aplica el double-submit: header y cookie presentes y byte-iguales.
// Cualquier ausencia o desigualdad rechaza; el mensaje nunca revela cuál
// de los dos lados falló.
func Verify(headerToken, rawCookieHeader string) error {
	cookieToken := ReadCookie(rawCookieHeader, CookieName)
	if headerToken == "" || cookieToken == "" {
		return fmt.Errorf("token CSRF no válido")
	}
	if subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 {
		return fmt.Errorf("token CSRF no válido")
	}
	return nil
}
