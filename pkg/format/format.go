package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Spanish, cases.NoLower)

// CapitalizeWords pone en mayúscula la primera letra de cada palabra,
// como se muestran los nombres de producto en el menú público.
func CapitalizeWords(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(strings.Join(strings.Fields(trimmed), " "))
}

// Price convierte centavos a importe decimal exacto para mostrar (12050 → "120.5").
// División decimal para no arrastrar errores de flotante.
func Price(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).String()
}
