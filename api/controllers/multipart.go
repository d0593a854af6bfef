package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/stallcraft/backend/api/validators"
	mediasvc "github.com/stallcraft/backend/internal/media"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

// The dashboard submits entity writes as multipart forms so field edits and
// file uploads travel in one request. JSON bodies stay accepted for API
// clients that manage media URLs themselves.

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func parseAdminForm(r *http.Request) error {
	if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid multipart form")
	}
	return nil
}

func requiredFormValue(r *http.Request, field string) (string, error) {
	value := strings.TrimSpace(r.FormValue(field))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeBadRequest, field+" is required").
			WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

// optionalFormValue distinguishes an omitted field from one explicitly sent
// empty, so partial updates can clear a column.
func optionalFormValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// optionalFormFile returns the named file part, or nil when the form carries
// no file under that name.
func optionalFormFile(r *http.Request, field string) (*validators.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "reading "+field+" upload")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &validators.UploadedFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     file,
	}, nil
}

// uploadFormFile streams a form file into object storage and closes it.
func uploadFormFile(ctx context.Context, media mediasvc.Service, file *validators.UploadedFile) (*mediasvc.UploadResult, error) {
	defer file.Content.Close()

	if media == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media storage unavailable")
	}
	return media.Upload(ctx, mediasvc.UploadInput{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		Content:     file.Content,
	})
}
