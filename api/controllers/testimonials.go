package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/api/validators"
	mediasvc "github.com/stallcraft/backend/internal/media"
	testimonialsvc "github.com/stallcraft/backend/internal/testimonials"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
)

// ListTestimonials serves the cache-backed testimonial listing. The optional
// status query narrows the snapshot before pagination.
func ListTestimonials(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.TestimonialStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed := enums.ParseTestimonialStatus(raw)
			status = &parsed
		}

		items, block, etag, err := svc.List(r.Context(), page, limit, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if writeCachedList(w, r, etag) {
			return
		}
		responses.WriteList(w, "testimonials fetched", items, block)
	}
}

// GetTestimonial loads one testimonial by ID.
func GetTestimonial(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "testimonial fetched", row)
	}
}

type createTestimonialRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Media       string `json:"media"`
	MediaType   string `json:"mediaType"`
	Rating      int    `json:"rating" validate:"min=0,max=5"`
	Spread      string `json:"spread"`
	Status      string `json:"status"`
}

// AdminCreateTestimonial creates a testimonial. Multipart forms may attach a
// media file; the stored kind follows the upload's content type unless the
// form names one explicitly.
func AdminCreateTestimonial(svc testimonialsvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeTestimonialCreate(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "testimonial created", row)
	}
}

func decodeTestimonialCreate(r *http.Request, media mediasvc.Service) (*testimonialsvc.CreateTestimonialInput, error) {
	if !isMultipart(r) {
		var payload createTestimonialRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		input := &testimonialsvc.CreateTestimonialInput{
			Name:        payload.Name,
			Description: payload.Description,
			Media:       payload.Media,
			MediaType:   enums.NormalizeMediaKind(payload.MediaType),
			Rating:      payload.Rating,
			Spread:      payload.Spread,
		}
		if payload.Status != "" {
			input.Status = enums.ParseTestimonialStatus(payload.Status)
		}
		return input, nil
	}

	if err := parseAdminForm(r); err != nil {
		return nil, err
	}
	name, err := requiredFormValue(r, "name")
	if err != nil {
		return nil, err
	}
	input := &testimonialsvc.CreateTestimonialInput{
		Name:        name,
		Description: r.FormValue("description"),
		Spread:      r.FormValue("spread"),
	}
	if raw := strings.TrimSpace(r.FormValue("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rating")
		}
		input.Rating = rating
	}
	if raw := strings.TrimSpace(r.FormValue("status")); raw != "" {
		input.Status = enums.ParseTestimonialStatus(raw)
	}

	file, err := optionalFormFile(r, "media")
	if err != nil {
		return nil, err
	}
	if file != nil {
		result, err := uploadFormFile(r.Context(), media, file)
		if err != nil {
			return nil, err
		}
		input.Media = result.URL
		input.MediaType = result.Kind
	}
	if raw := strings.TrimSpace(r.FormValue("mediaType")); raw != "" {
		kind, err := enums.ParseMediaKind(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type")
		}
		input.MediaType = kind
	}
	return input, nil
}

type updateTestimonialRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Media       *string `json:"media,omitempty"`
	MediaType   *string `json:"mediaType,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Spread      *string `json:"spread,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// AdminUpdateTestimonial applies a partial update to a testimonial. Fields
// absent from the body carry over from the stored record; a multipart media
// file replaces the stored one.
func AdminUpdateTestimonial(svc testimonialsvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeTestimonialUpdate(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "testimonial updated", row)
	}
}

func decodeTestimonialUpdate(r *http.Request, media mediasvc.Service) (*testimonialsvc.UpdateTestimonialInput, error) {
	input := &testimonialsvc.UpdateTestimonialInput{}

	if !isMultipart(r) {
		var payload updateTestimonialRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		input.Name = payload.Name
		input.Description = payload.Description
		input.Media = payload.Media
		input.Rating = payload.Rating
		input.Spread = payload.Spread
		if payload.MediaType != nil {
			kind, err := enums.ParseMediaKind(*payload.MediaType)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type")
			}
			input.MediaType = &kind
		}
		if payload.Status != nil {
			status := enums.ParseTestimonialStatus(*payload.Status)
			input.Status = &status
		}
		return input, nil
	}

	if err := parseAdminForm(r); err != nil {
		return nil, err
	}
	input.Name = optionalFormValue(r, "name")
	input.Description = optionalFormValue(r, "description")
	input.Spread = optionalFormValue(r, "spread")
	if raw := optionalFormValue(r, "rating"); raw != nil {
		rating, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rating")
		}
		input.Rating = &rating
	}
	if raw := optionalFormValue(r, "status"); raw != nil {
		status := enums.ParseTestimonialStatus(*raw)
		input.Status = &status
	}

	file, err := optionalFormFile(r, "media")
	if err != nil {
		return nil, err
	}
	if file != nil {
		result, err := uploadFormFile(r.Context(), media, file)
		if err != nil {
			return nil, err
		}
		input.Media = &result.URL
		input.MediaType = &result.Kind
	}
	if raw := optionalFormValue(r, "mediaType"); raw != nil {
		kind, err := enums.ParseMediaKind(*raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type")
		}
		input.MediaType = &kind
	}
	return input, nil
}

// AdminDeleteTestimonial removes a testimonial and its stored media.
func AdminDeleteTestimonial(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "testimonial deleted", nil)
	}
}
