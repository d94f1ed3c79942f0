package handler

import (
	"net/http"

	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
)

func (h *Handler) subscribe(user *model.User, w http.ResponseWriter, r *http.Request) {
	targetID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	target, err := h.services.Subscribe(r.Context(), user, targetID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.Respond(w, dto.NewUser(target), http.StatusCreated)
}

func (h *Handler) unsubscribe(user *model.User, w http.ResponseWriter, r *http.Request) {
	targetID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.services.Unsubscribe(r.Context(), user, targetID); err != nil {
		h.respondError(w, err)
		return
	}

	h.Respond(w, nil, http.StatusNoContent)
}
