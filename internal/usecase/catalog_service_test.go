package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports/mocks"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/golang/mock/gomock"
)

func newCatalogService(t *testing.T, store *memStore) (*usecase.CatalogService, *mocks.MockProductRepository, *mocks.MockCategoryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	products := mocks.NewMockProductRepository(ctrl)
	categories := mocks.NewMockCategoryRepository(ctrl)
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewCatalogService(products, categories, store, inv, nopLogger{}, time.Minute)
	return svc, products, categories
}

func TestPublicGetProduct_CachesResult(t *testing.T) {
	store := newMemStore()
	svc, products, _ := newCatalogService(t, store)
	ctx := context.Background()

	products.EXPECT().GetBySlug(gomock.Any(), "gold-ring").
		Return(&domain.Product{ID: "p1", Slug: "gold-ring", Name: "Gold Ring"}, nil).
		Times(1)

	for i := 0; i < 2; i++ {
		p, err := svc.PublicGetProduct(ctx, "gold-ring")
		if err != nil || p == nil || p.ID != "p1" {
			t.Fatalf("read %d: p=%+v err=%v", i, p, err)
		}
	}
	if !store.has(cache.ContentProductKey("gold-ring")) {
		t.Fatalf("product must be cached by slug")
	}
}

func TestPublicGetProduct_NotFoundCachedAsNil(t *testing.T) {
	store := newMemStore()
	svc, products, _ := newCatalogService(t, store)
	ctx := context.Background()

	products.EXPECT().GetBySlug(gomock.Any(), "ghost").
		Return(nil, domain.ErrNotFound).
		Times(1)

	for i := 0; i < 2; i++ {
		p, err := svc.PublicGetProduct(ctx, "ghost")
		if err != nil || p != nil {
			t.Fatalf("read %d: p=%+v err=%v", i, p, err)
		}
	}
}

func TestCreateProduct_RequiresNameAndPrice(t *testing.T) {
	svc, _, _ := newCatalogService(t, newMemStore())

	_, err := svc.CreateProduct(context.Background(), usecase.ProductInput{Name: "Ring"})
	if !usecase.IsInvalidInput(err) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreateProduct_UnknownCategoryRejected(t *testing.T) {
	svc, _, categories := newCatalogService(t, newMemStore())
	price := 99.0

	categories.EXPECT().GetByID(gomock.Any(), "c-missing").Return(nil, domain.ErrNotFound)

	_, err := svc.CreateProduct(context.Background(), usecase.ProductInput{
		Name: "Ring", Price: &price, CategoryID: "c-missing",
	})
	if !usecase.IsInvalidInput(err) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreateProduct_SlugifiedAndInvalidatesCache(t *testing.T) {
	store := newMemStore()
	store.data[cache.ContentProductsKey(domain.ProductFilter{})] = "[]"
	store.data[cache.AdminProductsKey(1, 20)] = "[]"
	store.data[cache.AdminOrdersKey] = "[]"

	svc, products, _ := newCatalogService(t, store)
	price := 149.5

	products.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) error {
			if p.Slug != "silver-moon-ring" {
				t.Fatalf("slug = %q", p.Slug)
			}
			if !p.InStock || p.Featured {
				t.Fatalf("defaults: in_stock=%v featured=%v", p.InStock, p.Featured)
			}
			p.ID = "p1"
			return nil
		})
	products.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Product{ID: "p1"}, nil)

	got, err := svc.CreateProduct(context.Background(), usecase.ProductInput{
		Name: "Silver Moon Ring!", Price: &price,
	})
	if err != nil || got.ID != "p1" {
		t.Fatalf("got=%+v err=%v", got, err)
	}

	// Кэш товарной группы снят, чужой — нет.
	if store.has(cache.ContentProductsKey(domain.ProductFilter{})) || store.has(cache.AdminProductsKey(1, 20)) {
		t.Fatalf("product caches must be invalidated")
	}
	if !store.has(cache.AdminOrdersKey) {
		t.Fatalf("orders cache must survive product mutation")
	}
}

func TestUpdateProduct_PartialFieldsKeepExisting(t *testing.T) {
	svc, products, _ := newCatalogService(t, newMemStore())
	desc := "Updated description"

	existing := &domain.Product{
		ID: "p1", Name: "Ring", Slug: "ring", Description: "Old",
		Price: 100, InStock: true, Featured: true,
	}
	products.EXPECT().GetByID(gomock.Any(), "p1").Return(existing, nil)
	products.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) error {
			if p.Description != desc {
				t.Fatalf("description = %q", p.Description)
			}
			// Не присланные поля не меняются.
			if p.Name != "Ring" || p.Price != 100 || !p.Featured {
				t.Fatalf("untouched fields changed: %+v", p)
			}
			return nil
		})
	products.EXPECT().GetByID(gomock.Any(), "p1").Return(existing, nil)

	if _, err := svc.UpdateProduct(context.Background(), "p1", usecase.ProductInput{Description: &desc}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
}

func TestDeleteCategory_BlockedWhileProductsReference(t *testing.T) {
	svc, products, categories := newCatalogService(t, newMemStore())

	categories.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Category{ID: "c1"}, nil)
	products.EXPECT().CountByCategory(gomock.Any(), "c1").Return(3, nil)
	// Delete не ожидается.

	err := svc.DeleteCategory(context.Background(), "c1")
	if !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("err = %v, want ErrCategoryInUse", err)
	}
}

func TestDeleteCategory_CascadesToContentProductCache(t *testing.T) {
	store := newMemStore()
	store.data[cache.AdminCategoriesKey] = "[]"
	store.data[cache.ContentCategoriesKey] = "[]"
	store.data[cache.ContentProductKey("ring")] = "{}"
	store.data[cache.AdminProductsKey(1, 20)] = "[]"

	svc, products, categories := newCatalogService(t, store)

	categories.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Category{ID: "c1"}, nil)
	products.EXPECT().CountByCategory(gomock.Any(), "c1").Return(0, nil)
	categories.EXPECT().Delete(gomock.Any(), "c1").Return(nil)

	if err := svc.DeleteCategory(context.Background(), "c1"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	// Категорийные и публичные товарные ключи сняты: витрина несёт
	// денормализованные данные категории.
	for _, gone := range []string{cache.AdminCategoriesKey, cache.ContentCategoriesKey, cache.ContentProductKey("ring")} {
		if store.has(gone) {
			t.Fatalf("key %q must be invalidated", gone)
		}
	}
	if !store.has(cache.AdminProductsKey(1, 20)) {
		t.Fatalf("admin product cache must survive category mutation")
	}
}

func TestAdminListProducts_CachedPerPage(t *testing.T) {
	store := newMemStore()
	svc, products, _ := newCatalogService(t, store)
	ctx := context.Background()

	products.EXPECT().ListPaged(gomock.Any(), 20, 0).
		Return([]*domain.Product{{ID: "p1"}}, 1, nil).
		Times(1)
	products.EXPECT().ListPaged(gomock.Any(), 10, 10).
		Return([]*domain.Product{}, 1, nil).
		Times(1)

	// Одна страница читается дважды — второй раз из кэша.
	for i := 0; i < 2; i++ {
		page, err := svc.AdminListProducts(ctx, 1, 20)
		if err != nil || len(page.Products) != 1 {
			t.Fatalf("page read %d: %+v err=%v", i, page, err)
		}
	}
	// Другие параметры выборки — отдельный ключ.
	if _, err := svc.AdminListProducts(ctx, 2, 10); err != nil {
		t.Fatalf("second page: %v", err)
	}
}
