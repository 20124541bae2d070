package transform

import (
	"growshop/internal/app/storefront/entity"
)

// Manufacturer нормализует сырую марку из ответа upstream
func Manufacturer(raw map[string]any) entity.Manufacturer {
	if raw == nil {
		return entity.Manufacturer{}
	}

	id := Int(raw["id"])
	name := LocalizedText(raw["name"])

	m := entity.Manufacturer{
		ID:     id,
		Name:   name,
		Slug:   Slugify(name),
		Active: Bool(raw["active"]),
	}
	if id > 0 {
		m.Image = ManufacturerImageURL(id)
	}
	return m
}

// Manufacturers нормализует коллекцию марок
func Manufacturers(raw any) []entity.Manufacturer {
	items := Maps(Collection(raw, "manufacturers", "manufacturer"))
	result := make([]entity.Manufacturer, 0, len(items))
	for _, item := range items {
		result = append(result, Manufacturer(item))
	}
	return result
}
