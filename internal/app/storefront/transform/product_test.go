package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growshop/internal/app/storefront/entity"
)

func TestProduct_FullPayload(t *testing.T) {
	// Arrange: типичный payload upstream - числа строками,
	// мультиязычные поля массивами языковых объектов
	raw := map[string]any{
		"id":                  "26395",
		"name":                []any{map[string]any{"id": "1", "value": "Fertilizante líquido"}},
		"link_rewrite":        []any{map[string]any{"id": "1", "value": "fertilizante-liquido"}},
		"description_short":   "Abono de crecimiento",
		"price":               "12.50",
		"price_with_reduction": "10.00",
		"quantity":            "5",
		"id_category_default": "11",
		"reference":           "FER-001",
		"ean13":               "8412345678901",
		"active":              "1",
		"id_manufacturer":     "3",
		"manufacturer_name":   "BioGrow",
		"id_default_image":    "301",
		"associations": map[string]any{
			"images": map[string]any{
				"image": []any{
					map[string]any{"id": "301"},
					map[string]any{"id": "302"},
				},
			},
			"categories": map[string]any{
				"category": []any{
					map[string]any{"id": "11"},
					map[string]any{"id": "25"},
				},
			},
		},
	}

	// Act
	p := Product(raw)

	// Assert
	assert.Equal(t, 26395, p.ID)
	assert.Equal(t, "Fertilizante líquido", p.Name)
	assert.Equal(t, "26395-fertilizante-liquido", p.Slug)
	assert.Equal(t, 12.50, p.Price)
	assert.Equal(t, 10.00, p.SalePrice)
	assert.Equal(t, 20, p.Discount)
	assert.True(t, p.IsSaleEnable)
	assert.Equal(t, entity.StockStatusInStock, p.StockStatus)
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, 11, p.DefaultCategory)
	assert.Equal(t, "FER-001", p.Reference)
	assert.True(t, p.Active)

	require.NotNil(t, p.ManufacturerID)
	assert.Equal(t, 3, *p.ManufacturerID)
	assert.Equal(t, "BioGrow", p.ManufacturerName)

	require.Len(t, p.Images, 2)
	assert.Equal(t, "/api/images/3/0/1/301-large_default.jpg", p.Images[0].OriginalURL)
	assert.Equal(t, "/api/images/3/0/1/301-small_default.jpg", p.Images[0].ThumbnailURL)

	require.NotNil(t, p.Thumbnail)
	assert.Equal(t, 301, p.Thumbnail.ID)

	assert.Equal(t, []entity.CategoryRef{{ID: 11}, {ID: 25}}, p.Categories)
}

func TestProduct_PlaceholderName(t *testing.T) {
	// Имя не разрезолвилось ни одной формой - подставляется placeholder
	p := Product(map[string]any{"id": "42", "name": map[string]any{}})

	assert.Equal(t, "Producto 42", p.Name)
	assert.Equal(t, "42-producto-42", p.Slug)
}

func TestProduct_NoDiscountWhenReductionEqualsPrice(t *testing.T) {
	p := Product(map[string]any{
		"id":                   "1",
		"name":                 "Test",
		"price":                "10.00",
		"price_with_reduction": "10.00",
	})

	assert.Equal(t, 10.00, p.Price)
	assert.Equal(t, 10.00, p.SalePrice)
	assert.Equal(t, 0, p.Discount)
	assert.False(t, p.IsSaleEnable)
}

func TestProduct_ReductionOnlyTreatedAsLiteralPrice(t *testing.T) {
	// Базовой цены нет - цена со скидкой принимается за обычную
	p := Product(map[string]any{
		"id":                   "1",
		"name":                 "Test",
		"price_with_reduction": "8.00",
	})

	assert.Equal(t, 8.00, p.Price)
	assert.Equal(t, 8.00, p.SalePrice)
	assert.Equal(t, 0, p.Discount)
}

func TestProduct_SalePriceNeverExceedsPrice(t *testing.T) {
	// price_with_reduction выше базовой - скидки нет
	p := Product(map[string]any{
		"id":                   "1",
		"name":                 "Test",
		"price":                "10.00",
		"price_with_reduction": "12.00",
	})

	assert.LessOrEqual(t, p.SalePrice, p.Price)
	assert.Equal(t, 0, p.Discount)
}

func TestProduct_DiscountRounded(t *testing.T) {
	// 29.99 -> 19.99: скидка 33.34%, округляется до 33
	p := Product(map[string]any{
		"id":                   "1",
		"name":                 "Test",
		"price":                "29.99",
		"price_with_reduction": "19.99",
	})

	assert.Equal(t, 33, p.Discount)
}

func TestProduct_StockFromAssociations(t *testing.T) {
	// Количества нет, но stock-ассоциация есть
	p := Product(map[string]any{
		"id":   "1",
		"name": "Test",
		"associations": map[string]any{
			"stock_availables": map[string]any{
				"stock_available": []any{map[string]any{"id": "9"}},
			},
		},
	})

	assert.Equal(t, entity.StockStatusInStock, p.StockStatus)
}

func TestProduct_ActiveWithoutStockDataIsInStock(t *testing.T) {
	// Отсутствие данных о стоке - не out_of_stock
	p := Product(map[string]any{"id": "1", "name": "Test", "active": "1"})

	assert.Equal(t, entity.StockStatusInStock, p.StockStatus)
}

func TestProduct_InactiveWithoutStockDataIsOutOfStock(t *testing.T) {
	p := Product(map[string]any{"id": "1", "name": "Test", "active": "0"})

	assert.Equal(t, entity.StockStatusOutOfStock, p.StockStatus)
}

func TestProduct_NilPayload(t *testing.T) {
	// Нормализатор не паникует на пустом входе
	p := Product(nil)

	assert.Equal(t, 0, p.ID)
}

func TestProducts_UnwrapsCollectionVariants(t *testing.T) {
	canonical := map[string]any{
		"products": map[string]any{
			"product": []any{map[string]any{"id": "1", "name": "A"}},
		},
	}
	flat := map[string]any{
		"products": []any{map[string]any{"id": "1", "name": "A"}},
	}
	collapsed := map[string]any{
		"products": map[string]any{
			"product": map[string]any{"id": "1", "name": "A"},
		},
	}
	bare := []any{map[string]any{"id": "1", "name": "A"}}

	for _, raw := range []any{canonical, flat, collapsed, bare} {
		products := Products(raw)
		require.Len(t, products, 1)
		assert.Equal(t, 1, products[0].ID)
	}
}

func TestProducts_EmptyInput(t *testing.T) {
	assert.Empty(t, Products(nil))
	assert.Empty(t, Products(map[string]any{"products": []any{}}))
	assert.Empty(t, Products(""))
}

func TestProductImageURL_DigitSharding(t *testing.T) {
	assert.Equal(t, "/api/images/2/6/3/9/5/26395-large_default.jpg", ProductImageURL(26395, SizeLarge))
	assert.Equal(t, "/api/images/7/7-small_default.jpg", ProductImageURL(7, SizeSmall))
	assert.Equal(t, "", ProductImageURL(0, SizeLarge))
}

func TestCategoryImageURL(t *testing.T) {
	assert.Equal(t, "/api/images/categories/12-category_default.jpg", CategoryImageURL(12, SizeCategory))
}

func TestManufacturerImageURL(t *testing.T) {
	assert.Equal(t, "/api/images/manufacturers/5.jpg", ManufacturerImageURL(5))
}
