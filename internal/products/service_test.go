package product

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

type recordingCleaner struct {
	urls []string
}

func (r *recordingCleaner) DeleteByURL(ctx context.Context, url string) {
	r.urls = append(r.urls, url)
}

func newTestService(t *testing.T) (Service, *recordingCleaner) {
	t.Helper()
	cleaner := &recordingCleaner{}
	cfg := config.CacheConfig{TTL: 30 * time.Second, DefaultBatchSize: 20}
	svc, err := NewService(NewRepository(openTestDB(t)), cfg, cleaner, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, cleaner
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Name:        "Rose Quartz",
		Description: "tumbled stone",
		Price:       decimal.NewFromFloat(12.50),
		Size:        "small",
		Benefits:    "calming",
		Category:    enums.ProductCategoryCrystals,
		Image:       "https://storage.googleapis.com/b/media/quartz.png",
	}
}

func TestCreateAndListProducts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Price.Equal(decimal.NewFromFloat(12.50)) {
		t.Fatalf("price mangled: %s", created.Price)
	}

	items, block, _, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || block.TotalItems != 1 {
		t.Fatalf("unexpected list result: %d items, %+v", len(items), block)
	}
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("missing name", func(t *testing.T) {
		input := validInput()
		input.Name = " "
		if err := expectValidation(svc, ctx, input); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("bad category", func(t *testing.T) {
		input := validInput()
		input.Category = enums.ProductCategory("Potions")
		if err := expectValidation(svc, ctx, input); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		input := validInput()
		input.Price = decimal.NewFromInt(-1)
		if err := expectValidation(svc, ctx, input); err != nil {
			t.Fatal(err)
		}
	})
}

func expectValidation(svc Service, ctx context.Context, input CreateProductInput) error {
	_, err := svc.Create(ctx, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "expected validation error")
	}
	return nil
}

func TestUpdateProductReplacesImage(t *testing.T) {
	ctx := context.Background()
	svc, cleaner := newTestService(t)

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newImage := "https://storage.googleapis.com/b/media/quartz-2.png"
	price := decimal.NewFromFloat(15.00)
	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{Image: &newImage, Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Image != newImage {
		t.Fatalf("image not updated: %s", updated.Image)
	}
	if len(cleaner.urls) != 1 {
		t.Fatalf("old image should be cleaned, got %v", cleaner.urls)
	}
}

func TestDeleteProductRefreshesCache(t *testing.T) {
	ctx := context.Background()
	svc, cleaner := newTestService(t)

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.urls) != 1 {
		t.Fatalf("expected media cleanup on delete, got %v", cleaner.urls)
	}

	items, _, _, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cache should be refreshed after delete, got %d items", len(items))
	}
}
