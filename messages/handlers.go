package messages

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/memberchat/apperror"
	"github.com/user/memberchat/auth"
	"github.com/user/memberchat/config"
	"github.com/user/memberchat/feed"
)

// Handlers exposes the feed endpoints over HTTP.
type Handlers struct {
	service     Service
	broadcaster *feed.Broadcaster
	cfg         config.FeedConfig
}

// NewHandlers creates feed Handlers. The broadcaster may be shared with
// other components; it receives every message created through here.
func NewHandlers(service Service, broadcaster *feed.Broadcaster, cfg config.FeedConfig) *Handlers {
	return &Handlers{service: service, broadcaster: broadcaster, cfg: cfg}
}

// RegisterRoutes mounts the feed routes on a router that already has
// the token middleware applied.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleList)
	router.Post("/", h.handleCreate)
	router.Get("/stream", h.handleStream)
}

// handleList godoc
// @Summary List messages
// @Description Returns the feed oldest-first. With page or page_size present the response is a {count,next,previous,results} envelope; otherwise a bare array.
// @Tags messages
// @Produce json
// @Security TokenAuth
// @Param page query int false "1-based page number"
// @Param page_size query int false "messages per page, capped at the configured maximum"
// @Success 200 {array} messages.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /messages [get]
func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r.URL.Query(), h.cfg)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if !params.Requested {
		results, err := h.service.ListAll(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, results)
		return
	}

	page, err := h.service.ListPage(r.Context(), params.Page, params.PageSize)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, buildEnvelope(r.URL.Path, params, page))
}

// handleCreate godoc
// @Summary Post a message
// @Tags messages
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param messageBody body messages.CreateRequest true "Message text"
// @Success 201 {object} messages.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse "Empty or oversized text"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /messages [post]
func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthenticationError("authentication required", nil))
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	msg, err := h.service.Create(r.Context(), identity.User.ID, identity.User.Username, req.Text)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	h.publish(msg)
	auth.WriteJSON(w, http.StatusCreated, msg)
}

// handleStream godoc
// @Summary Stream new messages
// @Description Server-Sent Events stream; each new feed entry arrives as an "event: message" with the JSON body.
// @Tags messages
// @Produce text/event-stream
// @Security TokenAuth
// @Success 200 {string} string "event stream"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /messages/stream [get]
func (h *Handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		auth.WriteError(w, r, apperror.NewInternalError("streaming unsupported", nil))
		return
	}

	id, events := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			if _, err := w.Write([]byte(event.Format())); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handlers) publish(msg *MessageResponse) {
	if h.broadcaster == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to encode feed event: %v", err)
		return
	}
	h.broadcaster.Publish(feed.Event{Name: "message", Data: string(data)})
}
