package controllers

import (
	"net/http"
	"strings"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/api/validators"
	mediasvc "github.com/stallcraft/backend/internal/media"
	"github.com/stallcraft/backend/pkg/logger"
)

const uploadFormMemory = 8 << 20

type uploadResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	MediaType string `json:"mediaType"`
}

// UploadMedia stores a multipart file and returns its public URL. When the
// replaces field carries a previous URL, that object is removed after the new
// upload succeeds.
func UploadMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := validators.ParseUploadedFile(r, "file", uploadFormMemory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer upload.Content.Close()

		input := mediasvc.UploadInput{
			Filename:    upload.Filename,
			ContentType: upload.ContentType,
			Size:        upload.Size,
			Content:     upload.Content,
		}

		var result *mediasvc.UploadResult
		if replaces := strings.TrimSpace(r.FormValue("replaces")); replaces != "" {
			result, err = svc.Replace(r.Context(), replaces, input)
		} else {
			result, err = svc.Upload(r.Context(), input)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "file uploaded", uploadResponse{
			URL:       result.URL,
			Key:       result.Key,
			MediaType: result.Kind.String(),
		})
	}
}
