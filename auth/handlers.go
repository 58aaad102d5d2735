package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/memberchat/apperror"
)

// Handlers exposes the auth endpoints over HTTP.
type Handlers struct {
	service Service
}

// NewHandlers creates auth Handlers backed by the given service.
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary Register a new user
// @Description Creates an account from a unique username and a password.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.RegisterResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid input or username already exists"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewValidationError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusCreated, RegisterResponse{
			Message: "User registered successfully",
			User:    UserPayload{ID: user.ID, Username: user.Username},
		})
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Verifies credentials and returns the user's bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 401 {object} apperror.ErrorResponse "Invalid username or password"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewValidationError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		result, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, LoginResponse{
			Token: result.Token.Key,
			User:  UserPayload{ID: result.User.ID, Username: result.User.Username},
		})
	}
}

// HandleLogout godoc
// @Summary Log out
// @Description Revokes the bearer token used on this request.
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} auth.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthenticationError("authentication required", nil))
			return
		}

		if err := h.service.Logout(r.Context(), identity.Token.Key); err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
	}
}

// WriteJSON serializes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// WriteError translates any error into the uniform {"error": ...} body
// with the status code its type maps to. Non-AppError values become
// 500s with a generic message so internals never leak to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("error handling %s %s: %v", r.Method, r.URL.Path, appErr)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
