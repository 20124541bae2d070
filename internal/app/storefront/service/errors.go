package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrInvalidSlug      = errors.New("invalid product slug")
)
