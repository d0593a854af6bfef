package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	mediasvc "github.com/stallcraft/backend/internal/media"
	productsvc "github.com/stallcraft/backend/internal/products"
	testimonialsvc "github.com/stallcraft/backend/internal/testimonials"
	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

type fakeMediaService struct {
	uploads []string
	deleted []string
}

func (f *fakeMediaService) Upload(ctx context.Context, input mediasvc.UploadInput) (*mediasvc.UploadResult, error) {
	f.uploads = append(f.uploads, input.Filename)
	kind := enums.MediaKindImage
	if strings.HasPrefix(input.ContentType, "video/") {
		kind = enums.MediaKindVideo
	}
	return &mediasvc.UploadResult{
		URL:  "https://storage.googleapis.com/test-bucket/media/" + input.Filename,
		Key:  "media/" + input.Filename,
		Kind: kind,
	}, nil
}

func (f *fakeMediaService) Replace(ctx context.Context, oldURL string, input mediasvc.UploadInput) (*mediasvc.UploadResult, error) {
	result, err := f.Upload(ctx, input)
	if err != nil {
		return nil, err
	}
	f.deleted = append(f.deleted, oldURL)
	return result, nil
}

func (f *fakeMediaService) DeleteByURL(ctx context.Context, url string) {
	f.deleted = append(f.deleted, url)
}

type formFile struct {
	field       string
	filename    string
	contentType string
	content     string
}

func buildForm(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			`form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte(file.content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func remarshal(t *testing.T, data any, out any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestAdminCreateBlogMultipart(t *testing.T) {
	svc := newBlogService(t)
	media := &fakeMediaService{}

	r := chi.NewRouter()
	r.Post("/admin/blogs", AdminCreateBlog(svc, media, nil))

	body, contentType := buildForm(t,
		map[string]string{"title": "Reading the Cups", "summary": "Emotions in the minor arcana."},
		formFile{field: "image", filename: "cups.png", contentType: "image/png", content: "png-bytes"},
	)
	req := httptest.NewRequest(http.MethodPost, "/admin/blogs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var blog models.Blog
	remarshal(t, env.Data, &blog)
	if blog.Image != "https://storage.googleapis.com/test-bucket/media/cups.png" {
		t.Fatalf("image = %s", blog.Image)
	}
	if len(media.uploads) != 1 {
		t.Fatalf("uploads = %v", media.uploads)
	}
}

func TestAdminCreateBlogMultipartMissingTitle(t *testing.T) {
	svc := newBlogService(t)

	r := chi.NewRouter()
	r.Post("/admin/blogs", AdminCreateBlog(svc, &fakeMediaService{}, nil))

	body, contentType := buildForm(t, map[string]string{"summary": "no title"})
	req := httptest.NewRequest(http.MethodPost, "/admin/blogs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.ErrorCode != string(pkgerrors.CodeBadRequest) {
		t.Fatalf("errorCode = %s", env.ErrorCode)
	}
}

func TestAdminCreateProductMultipartRequiresImage(t *testing.T) {
	svc, err := productsvc.NewService(
		productsvc.NewRepository(openTestDB(t, &models.Product{})), testCacheConfig(), nil, nil)
	if err != nil {
		t.Fatalf("product service: %v", err)
	}

	r := chi.NewRouter()
	r.Post("/admin/products", AdminCreateProduct(svc, &fakeMediaService{}, nil))

	body, contentType := buildForm(t, map[string]string{
		"name":     "Rose Quartz",
		"category": "Crystals",
		"price":    "12.50",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.ErrorCode != string(pkgerrors.CodeBadRequest) {
		t.Fatalf("errorCode = %s", env.ErrorCode)
	}
}

func TestAdminCreateTestimonialMultipartVideo(t *testing.T) {
	svc, err := testimonialsvc.NewService(
		testimonialsvc.NewRepository(openTestDB(t, &models.Testimonial{})), testCacheConfig(), nil, nil)
	if err != nil {
		t.Fatalf("testimonial service: %v", err)
	}
	media := &fakeMediaService{}

	r := chi.NewRouter()
	r.Post("/admin/testimonials", AdminCreateTestimonial(svc, media, nil))

	body, contentType := buildForm(t,
		map[string]string{"name": "Ravi", "rating": "5"},
		formFile{field: "media", filename: "review.mp4", contentType: "video/mp4", content: "mp4-bytes"},
	)
	req := httptest.NewRequest(http.MethodPost, "/admin/testimonials", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var row models.Testimonial
	remarshal(t, env.Data, &row)
	if row.MediaType != enums.MediaKindVideo {
		t.Fatalf("media type = %s", row.MediaType)
	}
	if row.Media == "" {
		t.Fatal("expected stored media url")
	}
}

func TestAdminUpdateProductMultipartKeepsImage(t *testing.T) {
	svc, err := productsvc.NewService(
		productsvc.NewRepository(openTestDB(t, &models.Product{})), testCacheConfig(), nil, nil)
	if err != nil {
		t.Fatalf("product service: %v", err)
	}

	created, err := svc.Create(context.Background(), productsvc.CreateProductInput{
		Name:     "Rose Quartz",
		Category: enums.ProductCategoryCrystals,
		Image:    "https://storage.googleapis.com/test-bucket/media/quartz.png",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := chi.NewRouter()
	r.Patch("/admin/products/{id}", AdminUpdateProduct(svc, &fakeMediaService{}, nil))

	body, contentType := buildForm(t, map[string]string{"name": "Rose Quartz Point"})
	req := httptest.NewRequest(http.MethodPatch, "/admin/products/"+created.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var product models.Product
	remarshal(t, env.Data, &product)
	if product.Name != "Rose Quartz Point" {
		t.Fatalf("name = %s", product.Name)
	}
	if product.Image != "https://storage.googleapis.com/test-bucket/media/quartz.png" {
		t.Fatalf("image changed: %s", product.Image)
	}
}
