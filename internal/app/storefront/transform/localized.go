package transform

import "sort"

// LocalizedText вытаскивает строку из мультиязычного поля upstream.
// Одно и то же поле приходит в пяти формах в зависимости от версии
// платформы и endpoint'а:
//
//  1. "строка"
//  2. [{"id": "1", "value": "строка"}, ...] или ["строка", ...]
//  3. {"language": [...]} или {"language": {...}} - массив/объект под ключом
//  4. {"1": "строка", "2": "..."} - объект по id языка, либо {"value": "строка"}
//
// Формы пробуются по порядку, берётся первое непустое значение.
// Ничего не распозналось - пустая строка, решение о placeholder
// принимает вызывающий
func LocalizedText(raw any) string {
	if raw == nil {
		return ""
	}

	// Форма 1: обычная строка
	if s, ok := raw.(string); ok {
		return s
	}

	// Форма 2: массив значений или языковых объектов
	if items, ok := raw.([]any); ok {
		return firstNonEmpty(items)
	}

	m := AsMap(raw)
	if m == nil {
		return ""
	}

	// Форма 3: обёртка {"language": ...} - снимаем один уровень и пробуем заново
	if lang, ok := m["language"]; ok {
		if s := LocalizedText(lang); s != "" {
			return s
		}
	}

	// Форма 4: объект с полем value либо ключи-id языков
	if v, ok := m["value"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	// Порядок обхода map недетерминирован, сортируем ключи,
	// чтобы при нескольких языках результат был стабильным
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := extractValue(m[k]); s != "" {
			return s
		}
	}

	return ""
}

// firstNonEmpty возвращает первое непустое значение из массива
// языковых вариантов (first-wins, язык по умолчанию идёт первым)
func firstNonEmpty(items []any) string {
	for _, item := range items {
		if s := extractValue(item); s != "" {
			return s
		}
	}
	return ""
}

// extractValue достаёт строку из элемента языкового массива:
// либо сам элемент - строка, либо объект с полем value
func extractValue(item any) string {
	if s, ok := item.(string); ok {
		return s
	}
	if m := AsMap(item); m != nil {
		if s, ok := m["value"].(string); ok {
			return s
		}
	}
	return ""
}
