package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
)

// ReviewService — отзывы и посты соцсетей.
type ReviewService struct {
	reviews  ports.ReviewRepository
	posts    ports.SocialPostRepository
	store    ports.CacheStore
	inv      *cache.Invalidator
	log      ports.Logger
	ttl      time.Duration
	postsTTL time.Duration
}

func NewReviewService(
	reviews ports.ReviewRepository,
	posts ports.SocialPostRepository,
	store ports.CacheStore,
	inv *cache.Invalidator,
	log ports.Logger,
	ttl, postsTTL time.Duration,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		posts:    posts,
		store:    store,
		inv:      inv,
		log:      log,
		ttl:      ttl,
		postsTTL: postsTTL,
	}
}

// ListApproved — публичный список одобренных отзывов; кэш на каждый вариант сортировки.
func (s *ReviewService) ListApproved(ctx context.Context, sort domain.ReviewSort) ([]*domain.Review, error) {
	key := cache.ReviewsKey(sort)
	return cache.Cached(ctx, s.store, s.log, key, s.ttl, func(ctx context.Context) ([]*domain.Review, error) {
		return s.reviews.ListApproved(ctx, sort)
	})
}

// ReviewInput — данные публичной отправки отзыва.
type ReviewInput struct {
	AuthorName  string
	AuthorEmail string
	Rating      int
	ReviewText  string
	PhotoURL    string
	ProductID   string
}

// Submit — новый отзыв; попадает в очередь модерации (is_approved=false),
// поэтому публичный кэш не трогаем.
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	if in.AuthorName == "" || in.AuthorEmail == "" || in.Rating == 0 || in.ReviewText == "" {
		return nil, fmt.Errorf("%w: all fields are required", errInvalidInput)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", errInvalidInput)
	}

	rv := &domain.Review{
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
		Rating:      in.Rating,
		ReviewText:  in.ReviewText,
		PhotoURL:    in.PhotoURL,
		ProductID:   in.ProductID,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// AdminList — список отзывов для модерации (без кэша).
func (s *ReviewService) AdminList(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error) {
	return s.reviews.ListAdmin(ctx, filter)
}

// SetApproved — одобрить/отклонить отзыв и снять кэш отзывов.
func (s *ReviewService) SetApproved(ctx context.Context, id string, approved bool) (*domain.Review, error) {
	rv, err := s.reviews.SetApproved(ctx, id, approved)
	if err != nil {
		return nil, err
	}
	s.inv.Invalidate(ctx, cache.GroupReviews)
	return rv, nil
}

// DeleteReview — удалить отзыв и снять кэш отзывов.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.inv.Invalidate(ctx, cache.GroupReviews)
	return nil
}

// ---------- посты соцсетей ----------

// ListActivePosts — активные посты для витрины (кэшируются единым списком).
func (s *ReviewService) ListActivePosts(ctx context.Context) ([]*domain.SocialPost, error) {
	return cache.Cached(ctx, s.store, s.log, cache.SocialPostsKey, s.postsTTL,
		func(ctx context.Context) ([]*domain.SocialPost, error) {
			return s.posts.ListActive(ctx)
		})
}

func (s *ReviewService) CreatePost(ctx context.Context, p *domain.SocialPost) error {
	if err := s.posts.Create(ctx, p); err != nil {
		return err
	}
	s.inv.Invalidate(ctx, cache.GroupSocialPosts)
	return nil
}

func (s *ReviewService) UpdatePost(ctx context.Context, p *domain.SocialPost) error {
	if err := s.posts.Update(ctx, p); err != nil {
		return err
	}
	s.inv.Invalidate(ctx, cache.GroupSocialPosts)
	return nil
}

func (s *ReviewService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.inv.Invalidate(ctx, cache.GroupSocialPosts)
	return nil
}
