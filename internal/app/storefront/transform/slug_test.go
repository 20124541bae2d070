package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"простое имя", "Fertilizante", "fertilizante"},
		{"диакритика снимается", "Fertilizante líquido", "fertilizante-liquido"},
		{"ñ превращается в n", "Pequeño armario", "pequeno-armario"},
		{"спецсимволы схлопываются в дефис", "Kit 600W + balastro!", "kit-600w-balastro"},
		{"краевые дефисы обрезаются", "  ¡Oferta!  ", "oferta"},
		{"пустая строка", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestProductSlug_AddsIDPrefix(t *testing.T) {
	assert.Equal(t, "26395-fertilizante-liquido", ProductSlug(26395, "fertilizante-liquido"))
}

func TestProductSlug_NoDoublePrefix(t *testing.T) {
	// Слаг из upstream уже может нести префикс
	assert.Equal(t, "26395-fertilizante", ProductSlug(26395, "26395-fertilizante"))
}

func TestProductSlug_EmptySlug(t *testing.T) {
	assert.Equal(t, "26395", ProductSlug(26395, ""))
}

func TestProductIDFromSlug(t *testing.T) {
	assert.Equal(t, 26395, ProductIDFromSlug("26395-fertilizante-liquido"))
	assert.Equal(t, 7, ProductIDFromSlug("7"))
	assert.Equal(t, 0, ProductIDFromSlug("fertilizante"))
	assert.Equal(t, 0, ProductIDFromSlug(""))
}

func TestProductSlug_RoundTrip(t *testing.T) {
	// id восстанавливается из любого сгенерированного слага
	for _, id := range []int{1, 42, 26395} {
		slug := ProductSlug(id, Slugify("Fertilizante líquido"))
		assert.Equal(t, id, ProductIDFromSlug(slug))
	}
}
