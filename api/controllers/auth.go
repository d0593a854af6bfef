package controllers

import (
	"net/http"
	"time"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/api/validators"
	authsvc "github.com/stallcraft/backend/internal/auth"
	"github.com/stallcraft/backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	AdminID   string    `json:"adminId"`
	Email     string    `json:"email"`
}

// Login exchanges dashboard credentials for a bearer token.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "login successful", loginResponse{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
			AdminID:   result.Admin.ID.String(),
			Email:     result.Admin.Email,
		})
	}
}
