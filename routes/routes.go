package routes

import (
	"meraki/admin"
	"meraki/cart"
	"meraki/catalog"
	"meraki/checkout"
	"meraki/middleware"
	"meraki/notify"
	"meraki/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddCatalogRoutes(router *httprouter.Router, h *catalog.Handler) {
	router.GET("/api/products", h.ListProducts)
	router.GET("/api/products/:id", h.GetProduct)
	router.GET("/api/categories", h.ListCategories)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart/items", h.AddItem)
	router.PUT("/api/cart/items/:productid", h.UpdateQuantity)
	router.DELETE("/api/cart/items/:productid", h.RemoveItem)
	router.DELETE("/api/cart", h.ClearCart)
	router.GET("/api/cart/purchases", h.GetPurchases)
	router.DELETE("/api/cart/purchases", h.ClearPurchases)
}

func AddCheckoutRoutes(router *httprouter.Router, h *checkout.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/checkout/summary", h.Summary)
	router.POST("/api/checkout", rl.Limit(h.PlaceOrder))
	router.GET("/api/checkout/qr", h.OrderQR)
	router.POST("/api/track-purchase", h.TrackPurchase)
	router.GET("/api/purchases/:id/receipt", h.Receipt)
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/admin/login", rl.Limit(h.Login))

	router.POST("/api/products", middleware.Authenticate(h.CreateProduct))
	router.PUT("/api/products/:id", middleware.Authenticate(h.UpdateProduct))
	router.DELETE("/api/products/:id", middleware.Authenticate(h.DeleteProduct))

	router.POST("/api/categories", middleware.Authenticate(h.CreateCategory))
	router.PUT("/api/categories/:id", middleware.Authenticate(h.UpdateCategory))
	router.DELETE("/api/categories/:id", middleware.Authenticate(h.DeleteCategory))

	router.GET("/api/dashboard/stats", middleware.Authenticate(h.Stats))
	router.GET("/api/admin/purchases", middleware.Authenticate(h.ListPurchases))
	router.POST("/api/admin/upload", middleware.Authenticate(h.UploadImage))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/admin/notifications", middleware.Authenticate(notify.WebSocketHandler(hub)))
}
