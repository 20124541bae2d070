package transform

import (
	"fmt"
	"math"

	"growshop/internal/app/storefront/entity"
)

// Product нормализует сырой товар из ответа upstream в каноническую
// сущность. Функция чистая и никогда не паникует: каждое поле имеет
// типизированный fallback, битый payload даёт частично заполненный
// товар, а не ошибку
func Product(raw map[string]any) entity.Product {
	if raw == nil {
		return entity.Product{}
	}

	id := Int(raw["id"])

	name := LocalizedText(raw["name"])
	if name == "" {
		name = fmt.Sprintf("Producto %d", id)
	}

	slug := LocalizedText(raw["link_rewrite"])
	if slug == "" {
		slug = Slugify(name)
	}

	price, salePrice, discount := resolvePrice(raw)

	active := Bool(raw["active"])
	associations := AsMap(raw["associations"])

	p := entity.Product{
		ID:               id,
		Name:             name,
		Slug:             ProductSlug(id, slug),
		ShortDescription: LocalizedText(raw["description_short"]),
		Description:      LocalizedText(raw["description"]),
		Price:            price,
		SalePrice:        salePrice,
		Discount:         discount,
		IsSaleEnable:     discount > 0,
		Quantity:         Int(raw["quantity"]),
		DefaultCategory:  Int(raw["id_category_default"]),
		Reference:        String(raw["reference"]),
		EAN13:            String(raw["ean13"]),
		UPC:              String(raw["upc"]),
		Active:           active,
	}

	p.StockStatus = resolveStock(p.Quantity, associations, active)
	p.Images, p.Thumbnail = resolveImages(raw, associations)
	p.Categories = resolveCategories(associations)

	if mid := Int(raw["id_manufacturer"]); mid > 0 {
		p.ManufacturerID = &mid
		p.ManufacturerName = String(raw["manufacturer_name"])
	}

	return p
}

// Products нормализует коллекцию товаров в любой из форм упаковки upstream
func Products(raw any) []entity.Product {
	items := Maps(Collection(raw, "products", "product"))
	result := make([]entity.Product, 0, len(items))
	for _, item := range items {
		result = append(result, Product(item))
	}
	return result
}

// resolvePrice разбирает пару price / price_with_reduction.
// price_with_reduction меньше базовой цены - товар со скидкой,
// процент округляется до целого. Пришла только цена со скидкой без
// базовой - считаем её обычной ценой, скидки нет.
// Инварианты: SalePrice <= Price, Discount > 0 только при реальной скидке
func resolvePrice(raw map[string]any) (price, salePrice float64, discount int) {
	base := Float(raw["price"])
	reduced := Float(raw["price_with_reduction"])

	if base <= 0 && reduced > 0 {
		return reduced, reduced, 0
	}

	if reduced > 0 && reduced < base {
		discount = int(math.Round((base - reduced) / base * 100))
		return base, reduced, discount
	}

	return base, base, 0
}

// resolveStock определяет статус наличия по убыванию достоверности:
// явное количество, затем наличие ассоциации stock_availables,
// затем флаг active. Отсутствие данных о стоке у активного товара -
// не причина прятать его из каталога
func resolveStock(quantity int, associations map[string]any, active bool) entity.StockStatus {
	if quantity > 0 {
		return entity.StockStatusInStock
	}
	if quantity == 0 && associations != nil {
		if stocks := Collection(associations["stock_availables"], "stock_availables", "stock_available"); len(stocks) > 0 {
			return entity.StockStatusInStock
		}
	}
	if active {
		return entity.StockStatusInStock
	}
	return entity.StockStatusOutOfStock
}

// resolveImages собирает картинки товара из ассоциаций.
// Первая картинка (или id_default_image) становится thumbnail
func resolveImages(raw, associations map[string]any) ([]entity.Image, *entity.Image) {
	var images []entity.Image

	if associations != nil {
		for _, item := range Maps(Collection(associations["images"], "images", "image")) {
			imageID := Int(item["id"])
			if imageID <= 0 {
				continue
			}
			images = append(images, entity.Image{
				ID:           imageID,
				OriginalURL:  ProductImageURL(imageID, SizeLarge),
				ThumbnailURL: ProductImageURL(imageID, SizeSmall),
			})
		}
	}

	if defaultID := Int(raw["id_default_image"]); defaultID > 0 {
		for i := range images {
			if images[i].ID == defaultID {
				return images, &images[i]
			}
		}
		thumb := entity.Image{
			ID:           defaultID,
			OriginalURL:  ProductImageURL(defaultID, SizeLarge),
			ThumbnailURL: ProductImageURL(defaultID, SizeSmall),
		}
		return images, &thumb
	}

	if len(images) > 0 {
		return images, &images[0]
	}
	return images, nil
}

// resolveCategories читает ассоциации категорий товара
func resolveCategories(associations map[string]any) []entity.CategoryRef {
	if associations == nil {
		return nil
	}
	items := Maps(Collection(associations["categories"], "categories", "category"))
	refs := make([]entity.CategoryRef, 0, len(items))
	for _, item := range items {
		if id := Int(item["id"]); id > 0 {
			refs = append(refs, entity.CategoryRef{ID: id})
		}
	}
	return refs
}
