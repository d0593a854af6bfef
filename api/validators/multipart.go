package validators

import (
	"mime/multipart"
	"net/http"

	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

// UploadedFile describes one file pulled out of a multipart form.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     multipart.File
}

// ParseUploadedFile extracts the named file field from a multipart request.
// The caller owns Content and must close it.
func ParseUploadedFile(r *http.Request, field string, maxMemory int64) (*UploadedFile, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file field is required").
			WithDetails(map[string]any{"field": field})
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &UploadedFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     file,
	}, nil
}
