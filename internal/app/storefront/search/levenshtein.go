package search

import "strings"

// Distance считает расстояние Левенштейна между двумя строками
// по рунам (запросы приходят с испанской диакритикой)
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // Удаление
				curr[j-1]+1,    // Вставка
				prev[j-1]+cost, // Замена
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity возвращает похожесть строк от 0 до 1
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

// SuggestCorrection подбирает исправление опечатки по словарю домена.
// Допустимая дистанция зависит от длины слова: короткие запросы
// исправляем максимум на одну букву, длинные - на две.
// Подходящего кандидата нет - пустая строка
func SuggestCorrection(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < 3 {
		return ""
	}

	maxDistance := 1
	if len([]rune(q)) > 5 {
		maxDistance = 2
	}

	best := ""
	bestDistance := maxDistance + 1
	for _, term := range dictionary {
		if term == q {
			return "" // Запрос уже словарный, исправлять нечего
		}
		if d := Distance(q, term); d < bestDistance {
			best = term
			bestDistance = d
		}
	}

	return best
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
