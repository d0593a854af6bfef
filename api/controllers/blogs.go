package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/api/validators"
	blogsvc "github.com/stallcraft/backend/internal/blogs"
	mediasvc "github.com/stallcraft/backend/internal/media"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
)

// ListBlogs serves the public, cache-backed blog listing.
func ListBlogs(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, block, etag, err := svc.List(r.Context(), page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if writeCachedList(w, r, etag) {
			return
		}
		responses.WriteList(w, "blogs fetched", items, block)
	}
}

// GetBlogBySlug resolves a blog from its URL slug.
func GetBlogBySlug(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		blog, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "blog fetched", blog)
	}
}

// AdminGetBlog loads one blog by ID for the dashboard.
func AdminGetBlog(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blog, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "blog fetched", blog)
	}
}

type createBlogRequest struct {
	Title   string `json:"title" validate:"required"`
	Summary string `json:"summary"`
	Image   string `json:"image"`
}

// AdminCreateBlog creates a blog post. The dashboard posts a multipart form
// carrying the image file; JSON bodies reference an already-stored URL.
func AdminCreateBlog(svc blogsvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeBlogCreate(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blog, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "blog created", blog)
	}
}

func decodeBlogCreate(r *http.Request, media mediasvc.Service) (*blogsvc.CreateBlogInput, error) {
	if !isMultipart(r) {
		var payload createBlogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return &blogsvc.CreateBlogInput{
			Title:   payload.Title,
			Summary: payload.Summary,
			Image:   payload.Image,
		}, nil
	}

	if err := parseAdminForm(r); err != nil {
		return nil, err
	}
	title, err := requiredFormValue(r, "title")
	if err != nil {
		return nil, err
	}
	input := &blogsvc.CreateBlogInput{
		Title:   title,
		Summary: r.FormValue("summary"),
	}

	file, err := optionalFormFile(r, "image")
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "image file is required").
			WithDetails(map[string]any{"field": "image"})
	}
	result, err := uploadFormFile(r.Context(), media, file)
	if err != nil {
		return nil, err
	}
	input.Image = result.URL
	return input, nil
}

type updateBlogRequest struct {
	Title   *string `json:"title,omitempty"`
	Summary *string `json:"summary,omitempty"`
	Image   *string `json:"image,omitempty"`
}

// AdminUpdateBlog applies a partial update to a blog post. A multipart image
// file replaces the stored one; a form without the file leaves it untouched.
func AdminUpdateBlog(svc blogsvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeBlogUpdate(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blog, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "blog updated", blog)
	}
}

func decodeBlogUpdate(r *http.Request, media mediasvc.Service) (*blogsvc.UpdateBlogInput, error) {
	input := &blogsvc.UpdateBlogInput{}

	if !isMultipart(r) {
		var payload updateBlogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		input.Title = payload.Title
		input.Summary = payload.Summary
		input.Image = payload.Image
	} else {
		if err := parseAdminForm(r); err != nil {
			return nil, err
		}
		input.Title = optionalFormValue(r, "title")
		input.Summary = optionalFormValue(r, "summary")

		file, err := optionalFormFile(r, "image")
		if err != nil {
			return nil, err
		}
		if file != nil {
			result, err := uploadFormFile(r.Context(), media, file)
			if err != nil {
				return nil, err
			}
			input.Image = &result.URL
		}
	}

	if input.Title == nil && input.Summary == nil && input.Image == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	return input, nil
}

// AdminDeleteBlog removes a blog post and its stored image.
func AdminDeleteBlog(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, "blog deleted", nil)
	}
}
