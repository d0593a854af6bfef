package testimonial

import (
	"context"
	"testing"
	"time"

	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

type recordingCleaner struct {
	urls []string
}

func (r *recordingCleaner) DeleteByURL(ctx context.Context, url string) {
	r.urls = append(r.urls, url)
}

func newTestService(t *testing.T) (Service, *Repository, *recordingCleaner) {
	t.Helper()
	cleaner := &recordingCleaner{}
	repo := NewRepository(openTestDB(t))
	cfg := config.CacheConfig{TTL: 30 * time.Second, TestimonialBatchSize: 20}
	svc, err := NewService(repo, cfg, cleaner, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, cleaner
}

func TestKindFromContentType(t *testing.T) {
	if got := KindFromContentType("video/mp4"); got != enums.MediaKindVideo {
		t.Fatalf("video/mp4 => %s", got)
	}
	if got := KindFromContentType("image/png"); got != enums.MediaKindImage {
		t.Fatalf("image/png => %s", got)
	}
	if got := KindFromContentType("application/pdf"); got != enums.MediaKindImage {
		t.Fatalf("fallback => %s", got)
	}
}

func TestKindFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want enums.MediaKind
	}{
		{"https://cdn/x/clip.mp4", enums.MediaKindVideo},
		{"https://cdn/x/clip.webm?alt=media", enums.MediaKindVideo},
		{"https://cdn/x/CLIP.MP4", enums.MediaKindVideo},
		{"https://cdn/x/photo.png", enums.MediaKindImage},
		{"", enums.MediaKindNoMedia},
	}
	for _, tc := range cases {
		if got := KindFromURL(tc.url); got != tc.want {
			t.Errorf("KindFromURL(%q) = %s, want %s", tc.url, got, tc.want)
		}
	}
}

func TestCreateTestimonialMediaStates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	t.Run("no media", func(t *testing.T) {
		created, err := svc.Create(ctx, CreateTestimonialInput{
			Name:        "Asha",
			Description: "A calming reading.",
			Rating:      5,
			Spread:      "Celtic Cross",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.MediaType != enums.MediaKindNoMedia {
			t.Fatalf("expected no-media, got %s", created.MediaType)
		}
	})

	t.Run("no media without spread rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTestimonialInput{
			Name:        "Asha",
			Description: "A calming reading.",
			Rating:      5,
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("media without explicit kind is classified", func(t *testing.T) {
		created, err := svc.Create(ctx, CreateTestimonialInput{
			Name:  "Ravi",
			Media: "https://storage.googleapis.com/b/media/clip.mp4",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.MediaType != enums.MediaKindVideo {
			t.Fatalf("expected video, got %s", created.MediaType)
		}
	})

	t.Run("image kind without url rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTestimonialInput{
			Name:        "Meera",
			Description: "x",
			MediaType:   enums.MediaKindImage,
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("image without description rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTestimonialInput{
			Name:      "Meera",
			Media:     "https://storage.googleapis.com/b/media/photo.png",
			MediaType: enums.MediaKindImage,
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("video needs only a url", func(t *testing.T) {
		created, err := svc.Create(ctx, CreateTestimonialInput{
			Name:  "Dev",
			Media: "https://storage.googleapis.com/b/media/clip.webm",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.MediaType != enums.MediaKindVideo {
			t.Fatalf("expected video, got %s", created.MediaType)
		}
	})

	t.Run("rating out of range rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTestimonialInput{Name: "Dev", Description: "x", Spread: "y", Rating: 6})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestLegacyNoneKindNormalized(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	// legacy rows carry media_type "none"
	row := &models.Testimonial{
		Name:      "Legacy",
		MediaType: enums.MediaKind("none"),
		Status:    enums.TestimonialStatusActive,
	}
	created, err := repo.Create(ctx, row)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	found, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.MediaType != enums.MediaKindNoMedia {
		t.Fatalf("legacy kind not normalized: %s", found.MediaType)
	}
}

func TestUpdateMergeValidatesMediaPair(t *testing.T) {
	ctx := context.Background()
	svc, _, cleaner := newTestService(t)

	created, err := svc.Create(ctx, CreateTestimonialInput{
		Name:        "Asha",
		Description: "A calming reading.",
		Media:       "https://storage.googleapis.com/b/media/photo.png",
		MediaType:   enums.MediaKindImage,
		Rating:      4,
		Spread:      "Celtic Cross",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("clearing media moves to no-media", func(t *testing.T) {
		empty := ""
		updated, err := svc.Update(ctx, created.ID, UpdateTestimonialInput{Media: &empty})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.MediaType != enums.MediaKindNoMedia {
			t.Fatalf("expected no-media, got %s", updated.MediaType)
		}
		if len(cleaner.urls) != 1 || cleaner.urls[0] != "https://storage.googleapis.com/b/media/photo.png" {
			t.Fatalf("old media not cleaned: %v", cleaner.urls)
		}
	})

	t.Run("replacing media reclassifies", func(t *testing.T) {
		newMedia := "https://storage.googleapis.com/b/media/clip.webm"
		updated, err := svc.Update(ctx, created.ID, UpdateTestimonialInput{Media: &newMedia})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.MediaType != enums.MediaKindVideo {
			t.Fatalf("expected reclassified video, got %s", updated.MediaType)
		}
	})

	t.Run("switching kind to no-media clears the stored url", func(t *testing.T) {
		noMedia := enums.MediaKindNoMedia
		updated, err := svc.Update(ctx, created.ID, UpdateTestimonialInput{MediaType: &noMedia})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.MediaType != enums.MediaKindNoMedia {
			t.Fatalf("expected no-media, got %s", updated.MediaType)
		}
		if updated.Media != "" {
			t.Fatalf("media url not cleared: %s", updated.Media)
		}
		if len(cleaner.urls) != 2 || cleaner.urls[1] != "https://storage.googleapis.com/b/media/clip.webm" {
			t.Fatalf("replaced media not cleaned: %v", cleaner.urls)
		}
	})
}

func TestListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if _, err := svc.Create(ctx, CreateTestimonialInput{
		Name:        "Active",
		Description: "Great session.",
		Spread:      "Three Card",
		Status:      enums.TestimonialStatusActive,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive, err := svc.Create(ctx, CreateTestimonialInput{
		Name:        "Hidden",
		Description: "Great session.",
		Spread:      "Three Card",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	off := enums.TestimonialStatusInactive
	if _, err := svc.Update(ctx, inactive.ID, UpdateTestimonialInput{Status: &off}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active := enums.TestimonialStatusActive
	items, block, _, err := svc.List(ctx, 1, 10, &active)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Active" {
		t.Fatalf("unexpected filtered list: %+v", items)
	}
	if block.TotalItems != 1 {
		t.Fatalf("pagination should count filtered rows, got %+v", block)
	}

	all, _, _, err := svc.List(ctx, 1, 10, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both rows without filter, got %d", len(all))
	}
}

func TestDeleteTestimonialCleansMedia(t *testing.T) {
	ctx := context.Background()
	svc, _, cleaner := newTestService(t)

	created, err := svc.Create(ctx, CreateTestimonialInput{
		Name:        "Asha",
		Description: "Wonderful insight.",
		Media:       "https://storage.googleapis.com/b/media/photo.png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.urls) != 1 {
		t.Fatalf("expected media cleanup, got %v", cleaner.urls)
	}
}
