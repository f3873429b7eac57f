package domain

import "time"

// Product — товар каталога. Category заполняется при чтении (денормализация),
// в БД хранится только CategoryID.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountedPrice *float64  `json:"discountedPrice"`
	CategoryID      string    `json:"category_id,omitempty"`
	Category        *Category `json:"category,omitempty"`
	Images          []string  `json:"images"`
	InStock         bool      `json:"in_stock"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Category — категория каталога.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url"`
}

// ProductFilter — фильтры публичного списка товаров.
// Нулевые значения означают «без фильтра».
type ProductFilter struct {
	Featured     bool
	CategorySlug string
	Limit        int
}

// ProductPage — страница товаров для админки.
type ProductPage struct {
	Products   []*Product `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination — параметры и итоги постраничной выборки.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
