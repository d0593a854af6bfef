package rashifal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Rashifal{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) Service {
	t.Helper()
	cfg := config.CacheConfig{TTL: 30 * time.Second, DefaultBatchSize: 20}
	svc, err := NewService(NewRepository(openTestDB(t)), cfg, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Upsert(ctx, enums.ZodiacMesh, "a good day for beginnings")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated, err := svc.Upsert(ctx, enums.ZodiacMesh, "revised outlook")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("upsert must update in place, got new id %s", updated.ID)
	}
	if updated.Description != "revised outlook" {
		t.Fatalf("description not updated: %q", updated.Description)
	}
}

func TestUpsertValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Upsert(ctx, enums.ZodiacSign("Ophiuchus"), "x"); pkgerrors.As(err) == nil {
		t.Fatal("unknown sign must be rejected")
	}
	if _, err := svc.Upsert(ctx, enums.ZodiacMesh, "  "); pkgerrors.As(err) == nil {
		t.Fatal("empty description must be rejected")
	}
}

func TestListReturnsRashiOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// insert out of order
	for _, sign := range []enums.ZodiacSign{enums.ZodiacMeen, enums.ZodiacMesh, enums.ZodiacTula} {
		if _, err := svc.Upsert(ctx, sign, "entry for "+string(sign)); err != nil {
			t.Fatalf("upsert %s: %v", sign, err)
		}
	}

	rows, etag, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if etag == "" {
		t.Fatal("expected etag")
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := []enums.ZodiacSign{enums.ZodiacMesh, enums.ZodiacTula, enums.ZodiacMeen}
	for i, sign := range want {
		if rows[i].Title != sign {
			t.Fatalf("row %d = %s, want %s", i, rows[i].Title, sign)
		}
	}
}

func TestGetBySign(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.GetBySign(ctx, enums.ZodiacKark); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatal("expected not found before upsert")
	}

	if _, err := svc.Upsert(ctx, enums.ZodiacKark, "family matters surface"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	found, err := svc.GetBySign(ctx, enums.ZodiacKark)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.Description != "family matters surface" {
		t.Fatalf("unexpected description %q", found.Description)
	}
}
