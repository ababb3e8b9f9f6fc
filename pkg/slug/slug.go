package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make normaliza un texto a slug: quita diacríticos (NFKD), minúsculas,
// espacios a guiones, colapsa guiones repetidos y recorta extremos.
func Make(value string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, value)
	if err != nil {
		ascii = value
	}

	lower := strings.ToLower(strings.TrimSpace(ascii))

	var b strings.Builder
	lastDash := true // evita guión inicial
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// WithSuffix agrega el sufijo numérico usado en el reintento por colisión (ej. "latte-2").
func WithSuffix(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}
