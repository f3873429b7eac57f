package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func (h *Handler) publicListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Featured:     c.Query("featured") == "true",
		CategorySlug: c.Query("category"),
		Limit:        httpx.ParseLimit(c, 100),
	}

	products, err := h.catalog.PublicListProducts(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) publicGetProduct(c *gin.Context) {
	product, err := h.catalog.PublicGetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) publicListCategories(c *gin.Context) {
	categories, err := h.catalog.PublicListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and message are required"})
		return
	}

	msg := &domain.ContactMessage{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
	if err := h.contacts.Create(c.Request.Context(), msg); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message received"})
}
