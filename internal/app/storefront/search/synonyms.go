package search

import "strings"

// Словарь синонимов домена grow shop: покупатели ищут одно и то же
// разными словами ("foco" и "lampara"), а upstream ищет только по
// точному вхождению. Ключи и значения в нижнем регистре без диакритики
var synonyms = map[string][]string{
	"lampara":      {"foco", "iluminacion", "led"},
	"foco":         {"lampara", "iluminacion"},
	"led":          {"lampara", "panel led"},
	"iluminacion":  {"lampara", "foco"},
	"semilla":      {"semillas", "seeds"},
	"semillas":     {"semilla", "seeds"},
	"fertilizante": {"abono", "nutriente"},
	"abono":        {"fertilizante", "nutriente"},
	"nutriente":    {"fertilizante", "abono"},
	"sustrato":     {"tierra", "fibra de coco"},
	"tierra":       {"sustrato"},
	"maceta":       {"macetas", "contenedor"},
	"armario":      {"carpa", "indoor"},
	"carpa":        {"armario", "indoor"},
	"extractor":    {"ventilacion", "ventilador"},
	"ventilador":   {"extractor", "ventilacion"},
	"filtro":       {"filtro carbon", "antiolor"},
	"medidor":      {"ph", "ec"},
	"esqueje":      {"clon", "propagacion"},
	"riego":        {"irrigacion", "goteo"},
}

// dictionary - словарные термины для исправления опечаток.
// Собирается из ключей и значений словаря синонимов
var dictionary = buildDictionary()

func buildDictionary() []string {
	seen := make(map[string]struct{})
	var terms []string
	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for key, values := range synonyms {
		add(key)
		for _, v := range values {
			add(v)
		}
	}
	return terms
}

// ExpandWithSynonyms возвращает запрос вместе с его синонимами.
// Оригинал всегда первый. Синонимы ищутся по каждому слову запроса
func ExpandWithSynonyms(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	terms := []string{q}
	seen := map[string]struct{}{q: {}}

	for _, word := range strings.Fields(q) {
		for _, syn := range synonyms[word] {
			if _, ok := seen[syn]; ok {
				continue
			}
			seen[syn] = struct{}{}
			terms = append(terms, syn)
		}
	}

	return terms
}
