package domain

import "time"

// Review — отзыв покупателя. Публикуется только после одобрения админом.
type Review struct {
	ID               string    `json:"id"`
	AuthorName       string    `json:"author_name"`
	AuthorEmail      string    `json:"author_email"`
	Rating           int       `json:"rating"`
	ReviewText       string    `json:"review_text"`
	PhotoURL         string    `json:"photo_url"`
	ProductID        string    `json:"product_id,omitempty"`
	IsApproved       bool      `json:"is_approved"`
	VerifiedPurchase bool      `json:"verified_purchase"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReviewSort — порядок сортировки публичного списка отзывов.
type ReviewSort string

const (
	ReviewSortLatest  ReviewSort = "latest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
)

// NormalizeReviewSort — приводит произвольную строку запроса к допустимому значению.
func NormalizeReviewSort(s string) ReviewSort {
	switch ReviewSort(s) {
	case ReviewSortHighest, ReviewSortLowest:
		return ReviewSort(s)
	default:
		return ReviewSortLatest
	}
}

// ReviewFilter — фильтр админского списка отзывов.
type ReviewFilter string

const (
	ReviewFilterAll      ReviewFilter = "all"
	ReviewFilterPending  ReviewFilter = "pending"
	ReviewFilterApproved ReviewFilter = "approved"
)

// SocialPost — пост из соцсетей для витрины.
type SocialPost struct {
	ID           string    `json:"id"`
	Platform     string    `json:"platform"`
	PostURL      string    `json:"post_url"`
	ImageURL     string    `json:"image_url"`
	Caption      string    `json:"caption"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ContactMessage — сообщение из формы обратной связи.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
