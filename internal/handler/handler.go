package handler

import (
	"encoding/json"
	"net/http"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/service"
	"go.uber.org/zap"
)

type Resp map[string]interface{}

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	secret   []byte
}

func New(services *service.Service, logger *zap.Logger, accessSecret string) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		secret:   []byte(accessSecret),
	}
}

type userHandlerFunc func(user *model.User, w http.ResponseWriter, r *http.Request)

// authorized requires a valid access token.
func (h *Handler) authorized(next userHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authMiddleware(r)
		if err != nil {
			h.respondError(w, err)
			return
		}

		next(user, w, r)
	}
}

// viewer accepts anonymous requests but still rejects a bad token.
func (h *Handler) viewer(next userHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.optionalAuthMiddleware(r)
		if err != nil {
			h.respondError(w, err)
			return
		}

		next(user, w, r)
	}
}

func (h *Handler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// users
	mux.HandleFunc("GET /api/v1/users", h.viewer(h.usersList))
	mux.HandleFunc("POST /api/v1/users", h.usersCreate)
	mux.HandleFunc("GET /api/v1/users/{id}", h.authorized(h.usersGet))

	// subscriptions
	mux.HandleFunc("POST /api/v1/users/{id}/subscribe", h.authorized(h.subscribe))
	mux.HandleFunc("DELETE /api/v1/users/{id}/subscribe", h.authorized(h.unsubscribe))

	// relations
	mux.HandleFunc("GET /api/v1/users/{id}/subscribers", h.authorized(h.subscribersList))
	mux.HandleFunc("DELETE /api/v1/users/{id}/subscribers/{subscriberId}", h.authorized(h.subscribersRemove))
	mux.HandleFunc("GET /api/v1/users/{id}/subscriptions", h.authorized(h.subscriptionsList))
	mux.HandleFunc("GET /api/v1/users/{id}/friends", h.authorized(h.friendsList))

	return logMiddleware(h.logger)(mux)
}

func (h *Handler) Respond(w http.ResponseWriter, resp any, statusCode int) {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return
	}

	respJSON, err := json.Marshal(resp)
	if err != nil {
		h.logger.Sugar().Errorf("failed to marshal response: %s", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respJSON)
}
