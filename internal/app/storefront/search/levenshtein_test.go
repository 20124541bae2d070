package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"sustrato", "sustratos", 1},
		{"fertilizante", "fertilisante", 1},
		{"maceta", "mazeta", 1},
		{"ABC", "abc", 0}, // регистронезависимо
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Distance(tt.a, tt.b), "Distance(%q, %q)", tt.a, tt.b)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.InDelta(t, 0.9, Similarity("fertilizant", "fertilizante"), 0.1)
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSuggestCorrection_FixesTypo(t *testing.T) {
	assert.Equal(t, "fertilizante", SuggestCorrection("fertilisante"))
	assert.Equal(t, "sustrato", SuggestCorrection("sustratto"))
}

func TestSuggestCorrection_DictionaryTermUnchanged(t *testing.T) {
	// Словарное слово не исправляется
	assert.Equal(t, "", SuggestCorrection("fertilizante"))
}

func TestSuggestCorrection_TooShortOrTooFar(t *testing.T) {
	assert.Equal(t, "", SuggestCorrection("ab"))
	assert.Equal(t, "", SuggestCorrection("zzzzzzzzzz"))
}

func TestExpandWithSynonyms_OriginalFirst(t *testing.T) {
	terms := ExpandWithSynonyms("lampara")

	assert.Equal(t, "lampara", terms[0])
	assert.Contains(t, terms, "foco")
}

func TestExpandWithSynonyms_NoSynonyms(t *testing.T) {
	terms := ExpandWithSynonyms("tijeras de podar")

	assert.Equal(t, []string{"tijeras de podar"}, terms)
}

func TestExpandWithSynonyms_MultiWordQuery(t *testing.T) {
	// Синонимы ищутся по каждому слову запроса
	terms := ExpandWithSynonyms("kit riego")

	assert.Contains(t, terms, "goteo")
}

func TestExpandWithSynonyms_NoDuplicates(t *testing.T) {
	terms := ExpandWithSynonyms("fertilizante abono")

	seen := make(map[string]int)
	for _, term := range terms {
		seen[term]++
	}
	for term, count := range seen {
		assert.Equal(t, 1, count, "duplicate term %q", term)
	}
}
