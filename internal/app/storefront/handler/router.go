package handler

import (
	"net/http"
	"time"

	"growshop/pkg/logger"
	"growshop/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers - все обработчики сервиса для настройки маршрутов
type Handlers struct {
	Catalog  *CatalogHandler
	Brand    *BrandHandler
	Search   *SearchHandler
	Image    *ImageHandler
	Cache    *CacheHandler
	Checkout *CheckoutHandler
}

// SetupRoutes настраивает все маршруты Storefront Service с использованием Gin
// Сервис обращён к браузеру, поэтому CORS включён на всё API
func SetupRoutes(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("storefront"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint - публичный
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Каталог
		api.GET("/products", h.Catalog.GetProducts)
		api.GET("/products/featured", h.Catalog.GetFeaturedProducts)
		api.GET("/products/on-sale", h.Catalog.GetOnSaleProducts)
		api.GET("/product/:slug", h.Catalog.GetProduct)

		api.GET("/category", h.Catalog.GetCategories)
		api.GET("/category/:slug", h.Catalog.GetCategory)
		api.GET("/categories/:id/products", h.Catalog.GetCategoryProducts)
		api.GET("/categories/:id/subcategories", h.Catalog.GetSubcategories)

		// Марки
		api.GET("/brands", h.Brand.GetBrands)
		api.GET("/brands/:id/products", h.Brand.GetBrandProducts)

		// Поиск
		api.GET("/search", h.Search.Search)
		api.GET("/search/suggestions", h.Search.Suggestions)

		// Проксирование картинок
		api.GET("/images/*path", h.Image.GetImage)

		// Администрирование кеша
		api.POST("/cache/clear", h.Cache.Clear)

		// Оформление заказа
		api.POST("/cart", h.Checkout.CreateCart)
		api.GET("/cart/:id", h.Checkout.GetCart)
		api.PUT("/cart/:id", h.Checkout.UpdateCart)
		api.POST("/orders", h.Checkout.CreateOrder)
		api.GET("/orders", h.Checkout.GetOrders)
		api.POST("/customers", h.Checkout.RegisterCustomer)
		api.GET("/checkout/cod-fee", h.Checkout.GetCODFee)
		api.GET("/shop/info", h.Checkout.GetShopInfo)
	}

	return router
}
