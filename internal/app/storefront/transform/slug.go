package transform

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Цепочка нормализации для снятия диакритики: NFD раскладывает
// символ на базу и комбинирующий знак, Mn-фильтр выкидывает знак
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify строит URL-слаг из произвольного имени: нижний регистр,
// диакритика снята ("Fertilizante líquido" -> "fertilizante-liquido"),
// все прочие не-алфанумерики схлопываются в одиночный дефис
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	prevDash := true // Съедает дефисы в начале
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevDash = false
			continue
		}
		if !prevDash {
			b.WriteByte('-')
			prevDash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// ProductSlug строит слаг товара с id-префиксом "{id}-{slug}".
// Префикс позволяет восстановить id без обращения к upstream.
// Если slug уже начинается с "{id}-", префикс не дублируется
func ProductSlug(id int, slug string) string {
	prefix := strconv.Itoa(id) + "-"
	if strings.HasPrefix(slug, prefix) {
		return slug
	}
	if slug == "" {
		return strconv.Itoa(id)
	}
	return prefix + slug
}

// ProductIDFromSlug восстанавливает id товара из слага "{id}-{slug}"
// или просто "{id}". Нет числового префикса - 0
func ProductIDFromSlug(slug string) int {
	idPart, _, _ := strings.Cut(slug, "-")
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return 0
	}
	return id
}
