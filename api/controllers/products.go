package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/api/validators"
	mediasvc "github.com/stallcraft/backend/internal/media"
	productsvc "github.com/stallcraft/backend/internal/products"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
)

// ListProducts serves the public, cache-backed product listing.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteList(w, "products fetched", items, block)
	}
}

// GetProduct loads one product by ID.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product fetched", product)
	}
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size"`
	Benefits    string          `json:"benefits"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image"`
}

// AdminCreateProduct creates a product. Multipart forms must carry the image
// file; JSON bodies reference an already-stored URL.
func AdminCreateProduct(svc productsvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProductCreate(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "product created", product)
	}
}

func decodeProductCreate(r *http.Request, media mediasvc.Service) (*productsvc.CreateProductInput, error) {
	if !isMultipart(r) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		category, err := enums.ParseProductCategory(strings.TrimSpace(payload.Category))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		return &productsvc.CreateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			Size:        payload.Size,
			Benefits:    payload.Benefits,
			Category:    category,
			Image:       payload.Image,
		}, nil
	}

	if err := parseAdminForm(r); err != nil {
		return nil, err
	}
	name, err := requiredFormValue(r, "name")
	if err != nil {
		return nil, err
	}
	rawCategory, err := requiredFormValue(r, "category")
	if err != nil {
		return nil, err
	}
	category, err := enums.ParseProductCategory(rawCategory)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	input := &productsvc.CreateProductInput{
		Name:        name,
		Description: r.FormValue("description"),
		Size:        r.FormValue("size"),
		Benefits:    r.FormValue("benefits"),
		Category:    category,
	}
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = price
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

type updateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Size        *string          `json:"size,omitempty"`
	Benefits    *string          `json:"benefits,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

// AdminUpdateProduct applies a partial update to a product. A multipart image
// file replaces the stored one; a form without the file leaves it untouched.
func AdminUpdateProduct(svc productsvc.Service, media mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeProductUpdate(r, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product updated", product)
	}
}

func decodeProductUpdate(r *http.Request, media mediasvc.Service) (*productsvc.UpdateProductInput, error) {
	input := &productsvc.UpdateProductInput{}

	if !isMultipart(r) {
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		input.Name = payload.Name
		input.Description = payload.Description
		input.Price = payload.Price
		input.Size = payload.Size
		input.Benefits = payload.Benefits
		input.Image = payload.Image
		if payload.Category != nil {
			parsed, err := enums.ParseProductCategory(strings.TrimSpace(*payload.Category))
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
			}
			input.Category = &parsed
		}
		return input, nil
	}

	if err := parseAdminForm(r); err != nil {
		return nil, err
	}
	input.Name = optionalFormValue(r, "name")
	input.Description = optionalFormValue(r, "description")
	input.Size = optionalFormValue(r, "size")
	input.Benefits = optionalFormValue(r, "benefits")
	if raw := optionalFormValue(r, "price"); raw != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*raw))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if raw := optionalFormValue(r, "category"); raw != nil {
		parsed, err := enums.ParseProductCategory(strings.TrimSpace(*raw))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &parsed
	}

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
	return input, nil
}

// AdminDeleteProduct removes a product and its stored image.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, "product deleted", nil)
	}
}
