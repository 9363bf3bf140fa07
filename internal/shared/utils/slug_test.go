package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Cuidados pós-tatuagem", "cuidados-pos-tatuagem"},
		{"Tatuagem Old School: guia completo", "tatuagem-old-school-guia-completo"},
		{"Promoção de Verão!!!", "promocao-de-verao"},
		{"  Sessão   com   João  ", "sessao-com-joao"},
		{"Flash Day 2025", "flash-day-2025"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.input), "input: %q", tc.input)
	}
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Joao Goncalves", RemoveDiacritics("João Gonçalves"))
	assert.Equal(t, "ASCII stays as-is 123", RemoveDiacritics("ASCII stays as-is 123"))
}
