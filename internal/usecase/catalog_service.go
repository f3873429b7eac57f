package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
)

// CatalogService — прикладная логика каталога (товары и категории).
// Чтения идут через read-through кэш; каждая мутация после коммита
// снимает кэш своей группы (и каскадных групп — см. таблицу в cache.Invalidator).
type CatalogService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	store      ports.CacheStore
	inv        *cache.Invalidator
	log        ports.Logger
	ttl        time.Duration
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	store ports.CacheStore,
	inv *cache.Invalidator,
	log ports.Logger,
	ttl time.Duration,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		store:      store,
		inv:        inv,
		log:        log,
		ttl:        ttl,
	}
}

// ---------- товары: чтение ----------

// AdminListProducts — страница товаров для админки (кэш по page/limit).
func (s *CatalogService) AdminListProducts(ctx context.Context, page, limit int) (*domain.ProductPage, error) {
	key := cache.AdminProductsKey(page, limit)
	return cache.Cached(ctx, s.store, s.log, key, s.ttl, func(ctx context.Context) (*domain.ProductPage, error) {
		offset := (page - 1) * limit
		products, total, err := s.products.ListPaged(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		pages := (total + limit - 1) / limit
		return &domain.ProductPage{
			Products:   products,
			Pagination: domain.Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
		}, nil
	})
}

// AdminGetProduct — товар по id для админки.
// Отсутствие товара кэшируется как nil до истечения TTL (негативный кэш не отключаем).
func (s *CatalogService) AdminGetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := cache.AdminProductKey(id)
	return cache.Cached(ctx, s.store, s.log, key, s.ttl, func(ctx context.Context) (*domain.Product, error) {
		p, err := s.products.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return p, err
	})
}

// PublicListProducts — публичный список с фильтрами (featured/category/limit).
func (s *CatalogService) PublicListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	key := cache.ContentProductsKey(filter)
	return cache.Cached(ctx, s.store, s.log, key, s.ttl, func(ctx context.Context) ([]*domain.Product, error) {
		return s.products.List(ctx, filter)
	})
}

// PublicGetProduct — товар по slug для витрины.
func (s *CatalogService) PublicGetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	key := cache.ContentProductKey(slug)
	return cache.Cached(ctx, s.store, s.log, key, s.ttl, func(ctx context.Context) (*domain.Product, error) {
		p, err := s.products.GetBySlug(ctx, slug)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return p, err
	})
}

// ---------- товары: мутации ----------

// ProductInput — данные создания/обновления товара. Nil-поля в Update не меняются.
type ProductInput struct {
	Name            string
	Slug            string
	Description     *string
	Price           *float64
	DiscountedPrice *float64
	CategoryID      string
	Images          []string
	InStock         *bool
	Featured        *bool
}

// CreateProduct — создать товар: slug из имени (если не задан), проверка категории,
// затем инвалидация группы товаров.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price == nil {
		return nil, fmt.Errorf("%w: name and price required", errInvalidInput)
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}

	if in.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: invalid category_id", errInvalidInput)
			}
			return nil, err
		}
	}

	p := &domain.Product{
		Name:            in.Name,
		Slug:            slug,
		Description:     strOr(in.Description, ""),
		Price:           *in.Price,
		DiscountedPrice: in.DiscountedPrice,
		CategoryID:      in.CategoryID,
		Images:          imagesOr(in.Images),
		InStock:         boolOr(in.InStock, true),
		Featured:        boolOr(in.Featured, false),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.inv.Invalidate(ctx, cache.GroupProducts, p.ID)
	return s.products.GetByID(ctx, p.ID)
}

// UpdateProduct — частичное обновление товара.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newSlug := in.Slug
	if newSlug == "" && in.Name != "" {
		newSlug = Slugify(in.Name)
	}
	if newSlug != "" {
		p.Slug = newSlug
	}

	if in.CategoryID != "" && in.CategoryID != p.CategoryID {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: invalid category_id", errInvalidInput)
			}
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DiscountedPrice != nil {
		p.DiscountedPrice = in.DiscountedPrice
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.inv.Invalidate(ctx, cache.GroupProducts, p.ID)
	return s.products.GetByID(ctx, p.ID)
}

// DeleteProduct — удалить товар и снять кэш группы.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.inv.Invalidate(ctx, cache.GroupProducts, id)
	return nil
}

// ---------- категории ----------

// AdminListCategories — список категорий для админки.
func (s *CatalogService) AdminListCategories(ctx context.Context) ([]*domain.Category, error) {
	return cache.Cached(ctx, s.store, s.log, cache.AdminCategoriesKey, s.ttl,
		func(ctx context.Context) ([]*domain.Category, error) {
			return s.categories.List(ctx)
		})
}

// PublicListCategories — список категорий для витрины.
func (s *CatalogService) PublicListCategories(ctx context.Context) ([]*domain.Category, error) {
	return cache.Cached(ctx, s.store, s.log, cache.ContentCategoriesKey, s.ttl,
		func(ctx context.Context) ([]*domain.Category, error) {
			return s.categories.List(ctx)
		})
}

// CategoryInput — данные создания/обновления категории.
type CategoryInput struct {
	Name     string
	Slug     string
	ImageURL *string
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", errInvalidInput)
	}
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}

	c := &domain.Category{Name: in.Name, Slug: slug, ImageURL: strOr(in.ImageURL, "")}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	s.inv.Invalidate(ctx, cache.GroupCategories)
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Slug != "" {
		c.Slug = in.Slug
	}
	if in.ImageURL != nil {
		c.ImageURL = *in.ImageURL
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}

	s.inv.Invalidate(ctx, cache.GroupCategories)
	return c, nil
}

// DeleteCategory — удалить категорию; запрещено, пока на неё ссылаются товары.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.inv.Invalidate(ctx, cache.GroupCategories)
	return nil
}

// ---------- вспомогательные функции ----------

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func imagesOr(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
