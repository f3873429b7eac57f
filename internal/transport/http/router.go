package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/Gunvolt24/shop_backend/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler — HTTP-обработчики поверх прикладных сервисов.
type Handler struct {
	catalog  *usecase.CatalogService
	orders   *usecase.OrderService
	reviews  *usecase.ReviewService
	contacts ports.ContactRepository
	ship     *shiprocket.Client
	log      ports.Logger
}

func NewHandler(
	catalog *usecase.CatalogService,
	orders *usecase.OrderService,
	reviews *usecase.ReviewService,
	contacts ports.ContactRepository,
	ship *shiprocket.Client,
	log ports.Logger,
) *Handler {
	return &Handler{catalog: catalog, orders: orders, reviews: reviews, contacts: contacts, ship: ship, log: log}
}

// NewRouter — маршруты приложения. adminToken защищает /api/admin/*.
func NewRouter(h *Handler, adminToken string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Публичная витрина.
	api.GET("/products", h.publicListProducts)
	api.GET("/products/:slug", h.publicGetProduct)
	api.GET("/categories", h.publicListCategories)
	api.GET("/reviews", h.listReviews)
	api.POST("/reviews", h.submitReview)
	api.GET("/social-posts", h.listSocialPosts)
	api.POST("/contact", h.submitContact)

	// Оформление и просмотр заказа.
	api.POST("/orders", h.checkout)
	api.GET("/orders/:id", h.getOrder)
	api.GET("/user/orders", h.userOrders)
	api.GET("/user/orders/stats/summary", h.userOrderStats)

	// Админка.
	admin := api.Group("/admin", AdminAuth(adminToken))

	admin.GET("/products", h.adminListProducts)
	admin.GET("/products/:id", h.adminGetProduct)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)

	admin.GET("/categories", h.adminListCategories)
	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.GET("/orders", h.adminListOrders)
	admin.GET("/orders/:id", h.adminGetOrder)
	admin.PUT("/orders/:id", h.updateOrderStatus)
	admin.DELETE("/orders/:id", h.deleteOrder)

	admin.GET("/reviews", h.adminListReviews)
	admin.PATCH("/reviews/:id/approve", h.approveReview)
	admin.PATCH("/reviews/:id/reject", h.rejectReview)
	admin.DELETE("/reviews/:id", h.deleteReview)

	admin.POST("/social-posts", h.createSocialPost)
	admin.PUT("/social-posts/:id", h.updateSocialPost)
	admin.DELETE("/social-posts/:id", h.deleteSocialPost)

	admin.POST("/shipping/rates", h.shippingRates)
	admin.GET("/shipping/label/:orderId", h.shippingLabel)
	admin.GET("/shipping/track/awb/:awb", h.shippingTrackAWB)

	return r
}

// AdminAuth — статический токен в заголовке Authorization: Bearer <token>.
// Пустой токен в конфиге закрывает админку целиком.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		c.Next()
	}
}
