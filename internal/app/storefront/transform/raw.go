package transform

import (
	"strconv"
	"strings"
)

// Upstream webservice отдаёт числа и булевы значения строками
// ("100" вместо 100, "1" вместо true), а иногда и нормальными типами.
// Хелперы ниже принимают любой вариант и никогда не паникуют:
// не распарсили - вернули ноль/false

// Int читает целое из any: int, float64 (так декодируется JSON число)
// или строка. Нераспознанное значение - 0
func Int(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		// "12.00" тоже встречается
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// Float читает число с плавающей точкой из any. Нераспознанное значение - 0
func Float(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

// Bool читает булево из any: true, 1, "1", "true". Всё остальное - false
func Bool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		return s == "1" || s == "true"
	}
	return false
}

// String читает строку из any. Числа конвертируются, остальное - ""
func String(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// AsMap приводит значение к map[string]any или возвращает nil
func AsMap(raw any) map[string]any {
	m, _ := raw.(map[string]any)
	return m
}

// Collection разворачивает коллекцию из ответа upstream в слайс элементов.
// Платформа заворачивает списки непредсказуемо:
//
//	{"products": {"product": [...]}}  - канонический вариант
//	{"products": [...]}               - без внутренней обёртки
//	{"products": {"product": {...}}}  - один элемент схлопнут в объект
//	[...]                             - голый массив (поисковый endpoint)
//	[]                                - пустая выборка (иногда вообще "")
//
// plural и singular - имена внешнего и внутреннего ключа ("products", "product")
func Collection(raw any, plural, singular string) []any {
	if raw == nil {
		return nil
	}

	// Голый массив
	if items, ok := raw.([]any); ok {
		return items
	}

	m := AsMap(raw)
	if m == nil {
		return nil
	}

	inner, ok := m[plural]
	if !ok {
		// Возможно нам передали уже внутренний уровень {"product": [...]}
		inner = raw
	}

	switch v := inner.(type) {
	case []any:
		return v
	case map[string]any:
		switch item := v[singular].(type) {
		case []any:
			return item
		case map[string]any:
			// Единственный элемент без массива
			return []any{item}
		}
	}

	return nil
}

// Maps отбирает из слайса только элементы-объекты
func Maps(items []any) []map[string]any {
	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m := AsMap(item); m != nil {
			result = append(result, m)
		}
	}
	return result
}
