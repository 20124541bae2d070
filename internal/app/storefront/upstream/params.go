package upstream

import (
	"net/url"
	"sort"
	"strconv"
)

// DisplayFull - сентинел для display: запрашивает все поля вместе
// с associations (категории, картинки, стоки). Передаётся без скобок
const DisplayFull = "full"

// Params - параметры запроса к upstream webservice
// Кодирование полей специфично для платформы (см. Encode),
// поэтому обращения к API обязаны идти через этот клиент,
// а не собирать query string вручную
type Params struct {
	Display string            // Список полей "id,name" или сентинел full
	Filter  map[string]string // Точное совпадение: filter[field]=[value]
	Sort    string
	Limit   int
	Offset  int
	Query   string // Поисковый запрос для /search/products
}

// Encode переводит параметры в query string формата upstream API:
//   - output_format=JSON всегда (иначе платформа отвечает XML)
//   - display оборачивается в квадратные скобки, кроме сентинела full
//   - filter[field]=[value] для точного совпадения
//   - пагинация единым параметром limit="{offset},{count}" при offset > 0,
//     иначе просто count
func (p Params) Encode() url.Values {
	values := url.Values{}
	values.Set("output_format", "JSON")

	if p.Display != "" {
		if p.Display == DisplayFull {
			values.Set("display", p.Display)
		} else {
			values.Set("display", "["+p.Display+"]")
		}
	}

	// Сортируем имена фильтров, чтобы URL (и ключ кеша из него) был детерминирован
	names := make([]string, 0, len(p.Filter))
	for name := range p.Filter {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		values.Set("filter["+name+"]", "["+p.Filter[name]+"]")
	}

	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}

	if p.Limit > 0 {
		if p.Offset > 0 {
			values.Set("limit", strconv.Itoa(p.Offset)+","+strconv.Itoa(p.Limit))
		} else {
			values.Set("limit", strconv.Itoa(p.Limit))
		}
	}

	if p.Query != "" {
		values.Set("query", p.Query)
	}

	return values
}
