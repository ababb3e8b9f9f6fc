package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/qrmenu-api/pkg/format"
)

func TestCapitalizeWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"latte doble", "Latte Doble"},
		{"  té   verde ", "Té Verde"},
		{"", ""},
		{"café", "Café"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, format.CapitalizeWords(tc.in), "entrada %q", tc.in)
	}
}

func TestPrice(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{12050, "120.5"},
		{100, "1"},
		{99, "0.99"},
		{0, "0"},
		{250075, "2500.75"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, format.Price(tc.cents), "centavos %d", tc.cents)
	}
}
