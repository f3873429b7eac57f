package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// respondError — единое сопоставление ошибок приложений в HTTP-статусы.
// Детали внутренних ошибок наружу не уходят — только в лог.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case usecase.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": trimInvalidPrefix(err)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, domain.ErrSlugTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Slug already exists"})
	case errors.Is(err, domain.ErrCategoryInUse):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete category with products"})
	default:
		h.log.Errorf(c.Request.Context(), "%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// trimInvalidPrefix — в 400 уходит только содержательная часть после "invalid input: ".
func trimInvalidPrefix(err error) string {
	const prefix = "invalid input: "
	msg := err.Error()
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
