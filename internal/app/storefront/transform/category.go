package transform

import (
	"growshop/internal/app/storefront/entity"
)

// Category нормализует сырую категорию из ответа upstream.
// В ассоциациях товара категория может приходить минимальной формой
// {"id": "5"} - тогда заполнен только ID
func Category(raw map[string]any) entity.Category {
	if raw == nil {
		return entity.Category{}
	}

	id := Int(raw["id"])
	name := LocalizedText(raw["name"])

	slug := LocalizedText(raw["link_rewrite"])
	if slug == "" && name != "" {
		slug = Slugify(name)
	}

	c := entity.Category{
		ID:            id,
		Name:          name,
		Slug:          slug,
		Description:   LocalizedText(raw["description"]),
		ProductsCount: Int(raw["nb_products_recursive"]),
		LevelDepth:    Int(raw["level_depth"]),
		NLeft:         Int(raw["nleft"]),
		NRight:        Int(raw["nright"]),
		Active:        Bool(raw["active"]),
	}

	if parent, ok := raw["id_parent"]; ok {
		if pid := Int(parent); pid > 0 {
			c.ParentID = &pid
		}
	}

	if id > 0 && name != "" {
		c.Image = CategoryImageURL(id, SizeCategory)
	}

	return c
}

// Categories нормализует коллекцию категорий
func Categories(raw any) []entity.Category {
	items := Maps(Collection(raw, "categories", "category"))
	result := make([]entity.Category, 0, len(items))
	for _, item := range items {
		result = append(result, Category(item))
	}
	return result
}
