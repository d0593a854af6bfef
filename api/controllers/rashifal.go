package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/api/validators"
	rashifalsvc "github.com/stallcraft/backend/internal/rashifal"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
)

// ListRashifal serves the daily horoscope for all twelve signs in canonical
// order.
func ListRashifal(svc rashifalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, etag, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if writeCachedList(w, r, etag) {
			return
		}
		responses.WriteSuccess(w, "rashifal fetched", items)
	}
}

// GetRashifalBySign serves one sign's entry. Sign names contain spaces and
// parentheses, so the path segment arrives URL-encoded.
func GetRashifalBySign(svc rashifalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "sign")
		if decoded, err := url.PathUnescape(raw); err == nil {
			raw = decoded
		}

		sign, err := enums.ParseZodiacSign(strings.TrimSpace(raw))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid zodiac sign"))
			return
		}

		row, err := svc.GetBySign(r.Context(), sign)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "rashifal fetched", row)
	}
}

type upsertRashifalRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// AdminUpsertRashifal creates or overwrites the entry for one sign.
func AdminUpsertRashifal(svc rashifalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertRashifalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sign, err := enums.ParseZodiacSign(strings.TrimSpace(payload.Title))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid zodiac sign"))
			return
		}

		row, err := svc.Upsert(r.Context(), sign, payload.Description)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "rashifal saved", row)
	}
}

type updateRashifalRequest struct {
	Description string `json:"description" validate:"required"`
}

// AdminUpdateRashifalBySign overwrites one sign's entry, the sign coming from
// the path instead of the body.
func AdminUpdateRashifalBySign(svc rashifalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "sign")
		if decoded, err := url.PathUnescape(raw); err == nil {
			raw = decoded
		}
		sign, err := enums.ParseZodiacSign(strings.TrimSpace(raw))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid zodiac sign"))
			return
		}

		var payload updateRashifalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Upsert(r.Context(), sign, payload.Description)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "rashifal saved", row)
	}
}
