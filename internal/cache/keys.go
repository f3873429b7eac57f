package cache

import (
	"fmt"
	"strconv"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

// Ключи кэша. Пространства имён разделяются двоеточием; параметры выборки
// входят в ключ, чтобы разные запросы не перезаписывали друг друга.

func AdminProductsKey(page, limit int) string {
	return fmt.Sprintf("admin:products:page:%d:limit:%d", page, limit)
}

func AdminProductKey(id string) string { return "admin:product:" + id }

const AdminCategoriesKey = "admin:categories"

const AdminOrdersKey = "admin:orders"

func AdminOrderKey(id string) string { return "admin:order:" + id }

// ContentProductsKey — ключ публичного списка товаров; отсутствие фильтра
// кодируется как "all", чтобы ключ оставался стабильным.
func ContentProductsKey(f domain.ProductFilter) string {
	featured := "all"
	if f.Featured {
		featured = "true"
	}
	category := f.CategorySlug
	if category == "" {
		category = "all"
	}
	limit := "all"
	if f.Limit > 0 {
		limit = strconv.Itoa(f.Limit)
	}
	return fmt.Sprintf("content:products:featured:%s:category:%s:limit:%s", featured, category, limit)
}

func ContentProductKey(slug string) string { return "content:product:" + slug }

const ContentCategoriesKey = "content:categories"

func ReviewsKey(sort domain.ReviewSort) string { return "reviews:" + string(sort) }

const SocialPostsKey = "social-posts:active"
