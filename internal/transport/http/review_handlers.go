package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listReviews(c *gin.Context) {
	sort := domain.NormalizeReviewSort(c.Query("sort"))
	reviews, err := h.reviews.ListApproved(c.Request.Context(), sort)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

type reviewRequest struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Rating      int    `json:"rating"`
	ReviewText  string `json:"review_text"`
	PhotoURL    string `json:"photo_url"`
	ProductID   string `json:"product_id"`
}

func (h *Handler) submitReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), usecase.ReviewInput{
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Rating:      req.Rating,
		ReviewText:  req.ReviewText,
		PhotoURL:    req.PhotoURL,
		ProductID:   req.ProductID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted for moderation", "review": review})
}

func (h *Handler) listSocialPosts(c *gin.Context) {
	posts, err := h.reviews.ListActivePosts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if posts == nil {
		posts = []*domain.SocialPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// ---------- админка: модерация отзывов ----------

func (h *Handler) adminListReviews(c *gin.Context) {
	filter := domain.ReviewFilter(c.DefaultQuery("filter", string(domain.ReviewFilterAll)))
	switch filter {
	case domain.ReviewFilterAll, domain.ReviewFilterPending, domain.ReviewFilterApproved:
	default:
		filter = domain.ReviewFilterAll
	}

	reviews, err := h.reviews.AdminList(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) approveReview(c *gin.Context) {
	review, err := h.reviews.SetApproved(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handler) rejectReview(c *gin.Context) {
	review, err := h.reviews.SetApproved(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handler) deleteReview(c *gin.Context) {
	if err := h.reviews.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// ---------- админка: посты соцсетей ----------

type socialPostRequest struct {
	Platform     string `json:"platform"`
	PostURL      string `json:"post_url"`
	ImageURL     string `json:"image_url"`
	Caption      string `json:"caption"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

func (h *Handler) createSocialPost(c *gin.Context) {
	var req socialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if req.Platform == "" || req.PostURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Platform and post_url are required"})
		return
	}

	post := &domain.SocialPost{
		Platform:     req.Platform,
		PostURL:      req.PostURL,
		ImageURL:     req.ImageURL,
		Caption:      req.Caption,
		IsActive:     req.IsActive == nil || *req.IsActive,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.reviews.CreatePost(c.Request.Context(), post); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) updateSocialPost(c *gin.Context) {
	var req socialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	post := &domain.SocialPost{
		ID:           c.Param("id"),
		Platform:     req.Platform,
		PostURL:      req.PostURL,
		ImageURL:     req.ImageURL,
		Caption:      req.Caption,
		IsActive:     req.IsActive == nil || *req.IsActive,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.reviews.UpdatePost(c.Request.Context(), post); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) deleteSocialPost(c *gin.Context) {
	if err := h.reviews.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
