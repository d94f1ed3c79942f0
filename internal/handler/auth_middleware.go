package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BloggingApp/friends-service/internal/auth"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/service"
)

func (h *Handler) authMiddleware(r *http.Request) (*model.User, error) {
	bearerHeader := r.Header.Get("Authorization")

	if !strings.HasPrefix(bearerHeader, "Bearer ") {
		return nil, errNoToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearerHeader, "Bearer "))
	if token == "" {
		return nil, errNoToken
	}

	userID, err := auth.UserIDFromToken(token, h.secret)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidUserID) {
			return nil, errInvalidUserID
		}
		return nil, errInvalidJWT
	}

	user, err := h.services.User.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, errInvalidUserID
		}
		return nil, err
	}

	return user, nil
}

// optionalAuthMiddleware returns a nil user when no Authorization header is sent.
func (h *Handler) optionalAuthMiddleware(r *http.Request) (*model.User, error) {
	if r.Header.Get("Authorization") == "" {
		return nil, nil
	}
	return h.authMiddleware(r)
}
