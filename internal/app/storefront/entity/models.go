package entity

// StockStatus - статус наличия товара
// Отсутствие данных о стоке у активного товара трактуется как in_stock:
// upstream часто не отдаёт количество, и прятать товар из-за этого нельзя
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// BrandSource - источник данных марки
// Upstream может моделировать марки двумя способами: как настоящие
// manufacturers или как подкатегории выделенной родительской категории.
// От источника зависит путь получения товаров марки
type BrandSource string

const (
	BrandSourceManufacturer BrandSource = "manufacturer"
	BrandSourceCategory     BrandSource = "category"
)

// Image - картинка товара, сервируется через наш image proxy
type Image struct {
	ID           int    `json:"id"`
	OriginalURL  string `json:"original_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// CategoryRef - слабая ссылка товара на категорию (без владения)
type CategoryRef struct {
	ID int `json:"id"`
}

// Product представляет нормализованный товар каталога
type Product struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"` // Всегда начинается с "{id}-"
	ShortDescription string        `json:"short_description"`
	Description      string        `json:"description"`
	Price            float64       `json:"price"`
	SalePrice        float64       `json:"sale_price"` // Инвариант: SalePrice <= Price
	Discount         int           `json:"discount"`   // Процент скидки, округлённый до целого
	IsSaleEnable     bool          `json:"is_sale_enable"`
	StockStatus      StockStatus   `json:"stock_status"`
	Quantity         int           `json:"quantity"`
	Thumbnail        *Image        `json:"product_thumbnail"`
	Images           []Image       `json:"images"`
	Categories       []CategoryRef `json:"categories"`
	DefaultCategory  int           `json:"default_category_id"`
	Reference        string        `json:"reference"`
	EAN13            string        `json:"ean13"`
	UPC              string        `json:"upc"`
	Active           bool          `json:"active"`
	ManufacturerID   *int          `json:"manufacturer_id"`
	ManufacturerName string        `json:"manufacturer_name,omitempty"`
}

// Category представляет нормализованную категорию
// Дерево строится через указатель на родителя, без вложенных детей
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	Image         string `json:"image,omitempty"`
	ProductsCount int    `json:"products_count"` // Рекурсивный счётчик upstream
	ParentID      *int   `json:"parent_id"`
	LevelDepth    int    `json:"level_depth"`
	NLeft         int    `json:"nleft"`
	NRight        int    `json:"nright"`
	Active        bool   `json:"active"`
}

// Manufacturer представляет марку как её отдаёт upstream
type Manufacturer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Image  string `json:"image,omitempty"`
	Active bool   `json:"active"`
}

// Brand - унифицированная марка для фронтенда
// Source определяет, каким путём получать её товары
type Brand struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Image         string      `json:"image,omitempty"`
	ProductsCount int         `json:"products_count,omitempty"`
	Source        BrandSource `json:"type"`
}
