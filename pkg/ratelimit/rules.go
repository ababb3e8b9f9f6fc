package ratelimit

import (
	"regexp"
	"time"
)

// Rule regla de la tabla de políticas por clase de ruta: patrón → política.
type Rule struct {
	Matcher *regexp.Regexp
	Policy  Policy
}

// Rules tabla fija en proceso, no configurable en runtime. Gana el primer
// patrón que matchea; sin match aplica DefaultRule.
var Rules = []Rule{
	// El menú público necesita límite alto: es lo que escanean los clientes.
	{Matcher: regexp.MustCompile(`^/api/venue/[^/]+/menu`), Policy: Policy{Scope: "api:menu", Limit: 300, Window: time.Minute}},
	{Matcher: regexp.MustCompile(`^/api/products`), Policy: Policy{Scope: "api:products", Limit: 60, Window: 30 * time.Second}},
	{Matcher: regexp.MustCompile(`^/admin(/|$)`), Policy: Policy{Scope: "page:admin", Limit: 30, Window: time.Minute}},
}

// DefaultRule política global conservadora para rutas sin regla propia.
var DefaultRule = Rule{
	Matcher: regexp.MustCompile(`.*`),
	Policy:  Policy{Scope: "global", Limit: 300, Window: time.Minute},
}

// PickRule devuelve la primera regla que matchea el path.
func PickRule(path string) Rule {
	for _, rule := range Rules {
		if rule.Matcher.MatchString(path) {
			return rule
		}
	}
	return DefaultRule
}
