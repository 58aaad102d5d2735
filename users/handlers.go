package users

import (
	"net/http"

	"github.com/user/memberchat/apperror"
	"github.com/user/memberchat/auth"
)

// Handlers exposes the profile endpoint over HTTP.
type Handlers struct {
	service Service
}

// NewHandlers creates user Handlers backed by the given service.
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security TokenAuth
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /profile [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthenticationError("authentication required", nil))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), identity.User.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}
