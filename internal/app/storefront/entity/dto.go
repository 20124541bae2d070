package entity

// Ответы HTTP API. Единый канал ошибок: списки и одиночные сущности
// возвращаются с кодом 200, любая ошибка - не-200 с телом ErrorResponse

type ErrorResponse struct {
	Error string `json:"error"`
}

type ProductListResponse struct {
	Data  []Product `json:"data"`
	Total int       `json:"total"`
}

type ProductResponse struct {
	Data Product `json:"data"`
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`
	Total int        `json:"total"`
}

type CategoryResponse struct {
	Data Category `json:"data"`
}

type BrandListResponse struct {
	Data  []Brand `json:"data"`
	Total int     `json:"total"`
}

// Suggestion - элемент выпадающих подсказок поиска
type Suggestion struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Image string  `json:"image,omitempty"`
	Price float64 `json:"price,omitempty"`
	Type  string  `json:"type"` // product | category
}

type SuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Correction  string       `json:"correction,omitempty"` // Исправленный запрос, если оригинал ничего не нашёл
	Query       string       `json:"query"`
}

// CODFee - расчёт наценки за наложенный платёж
type CODFee struct {
	Fee        float64 `json:"fee"`
	Type       string  `json:"type"` // fixed | percentage
	Percentage float64 `json:"percentage,omitempty"`
}

// ListQuery - общие параметры списочных запросов
type ListQuery struct {
	Limit  int    `form:"limit,default=24" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset,default=0" binding:"omitempty,min=0"`
	Sort   string `form:"sort" binding:"omitempty,max=64"`
}

// SearchQuery - параметры поиска
type SearchQuery struct {
	Q     string `form:"q" binding:"required,min=2,max=128"`
	Limit int    `form:"limit,default=24" binding:"omitempty,min=1,max=300"`
}
