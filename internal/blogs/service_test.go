package blog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stallcraft/backend/pkg/config"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

type recordingCleaner struct {
	urls []string
}

func (r *recordingCleaner) DeleteByURL(ctx context.Context, url string) {
	r.urls = append(r.urls, url)
}

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		TTL:                  30 * time.Second,
		BlogBatchSize:        10,
		TestimonialBatchSize: 20,
		DefaultBatchSize:     20,
	}
}

func newTestService(t *testing.T) (Service, *recordingCleaner) {
	t.Helper()
	cleaner := &recordingCleaner{}
	svc, err := NewService(NewRepository(openTestDB(t)), testCacheConfig(), cleaner, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, cleaner
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"The Fool's  Journey", "the fool's journey"},
		{"  Tarot   101  ", "tarot 101"},
		{"MAJOR ARCANA", "major arcana"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.in); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugToTitleLower(t *testing.T) {
	if got := SlugToTitleLower("the-fool-s-journey"); got != "the fool s journey" {
		t.Fatalf("unexpected slug conversion %q", got)
	}
}

func TestCreateAndListBlogs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, title := range []string{"Major Arcana", "Minor Arcana", "Court Cards"} {
		if _, err := svc.Create(ctx, CreateBlogInput{Title: title, Summary: "s"}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	items, block, etag, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 blogs, got %d", len(items))
	}
	if block.TotalItems != 3 || block.HasMore {
		t.Fatalf("unexpected pagination %+v", block)
	}
	if etag == "" {
		t.Fatal("expected etag")
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateBlogInput{Title: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateBlogInput{Title: "The Fool's Journey", Summary: "intro"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.GetBySlug(ctx, "the-fool's-journey")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("slug resolved to wrong blog %s", found.ID)
	}

	if _, err := svc.GetBySlug(ctx, "does-not-exist"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateBlogRewritesSlugAndCleansMedia(t *testing.T) {
	ctx := context.Background()
	svc, cleaner := newTestService(t)

	created, err := svc.Create(ctx, CreateBlogInput{Title: "Old Title", Image: "https://storage.googleapis.com/b/media/old.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTitle := "New  Title"
	newImage := "https://storage.googleapis.com/b/media/new.png"
	updated, err := svc.Update(ctx, created.ID, UpdateBlogInput{Title: &newTitle, Image: &newImage})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TitleLower != "new title" {
		t.Fatalf("title_lower not recomputed: %q", updated.TitleLower)
	}
	if len(cleaner.urls) != 1 || cleaner.urls[0] != "https://storage.googleapis.com/b/media/old.png" {
		t.Fatalf("old image not cleaned: %v", cleaner.urls)
	}

	if _, err := svc.GetBySlug(ctx, "new-title"); err != nil {
		t.Fatalf("new slug should resolve: %v", err)
	}
}

func TestDeleteBlogCleansMedia(t *testing.T) {
	ctx := context.Background()
	svc, cleaner := newTestService(t)

	created, err := svc.Create(ctx, CreateBlogInput{Title: "Doomed", Image: "https://storage.googleapis.com/b/media/doomed.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.urls) != 1 {
		t.Fatalf("expected media cleanup, got %v", cleaner.urls)
	}

	if _, err := svc.GetByID(ctx, created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	items, _, _, err := svc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cache should refresh after delete, got %d items", len(items))
	}
}

func TestDeleteMissingBlog(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Delete(context.Background(), uuid.New())
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
