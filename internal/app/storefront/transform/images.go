package transform

import "strconv"

// Размеры картинок, которые генерирует upstream
const (
	SizeLarge    = "large_default"
	SizeSmall    = "small_default"
	SizeCategory = "category_default"
)

// Все URL картинок указывают на наш собственный image proxy
// (/api/images/...), а не напрямую на upstream: проксирование прячет
// учётные данные webservice и снимает проблемы CORS у браузера

// ProductImageURL строит путь картинки товара. Upstream хранит картинки
// в каталоге, шардированном по десятичным цифрам id:
// id 26395 -> /api/images/2/6/3/9/5/26395-large_default.jpg
func ProductImageURL(imageID int, size string) string {
	if imageID <= 0 {
		return ""
	}
	idStr := strconv.Itoa(imageID)

	var b []byte
	b = append(b, "/api/images/"...)
	for i := 0; i < len(idStr); i++ {
		b = append(b, idStr[i], '/')
	}
	b = append(b, idStr...)
	b = append(b, '-')
	b = append(b, size...)
	b = append(b, ".jpg"...)
	return string(b)
}

// CategoryImageURL строит путь картинки категории:
// id 12 -> /api/images/categories/12-category_default.jpg
func CategoryImageURL(categoryID int, size string) string {
	if categoryID <= 0 {
		return ""
	}
	return "/api/images/categories/" + strconv.Itoa(categoryID) + "-" + size + ".jpg"
}

// ManufacturerImageURL строит путь картинки марки:
// id 5 -> /api/images/manufacturers/5.jpg
func ManufacturerImageURL(manufacturerID int) string {
	if manufacturerID <= 0 {
		return ""
	}
	return "/api/images/manufacturers/" + strconv.Itoa(manufacturerID) + ".jpg"
}
