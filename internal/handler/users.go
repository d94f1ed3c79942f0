package handler

import (
	"encoding/json"
	"net/http"

	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
)

func (h *Handler) usersList(viewer *model.User, w http.ResponseWriter, r *http.Request) {
	users, err := h.services.User.List(r.Context(), viewer)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.Respond(w, dto.NewUsers(users), http.StatusOK)
}

func (h *Handler) usersCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, errInvalidBody)
		return
	}

	user, err := h.services.User.Create(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.Respond(w, dto.NewUser(user), http.StatusCreated)
}

func (h *Handler) usersGet(viewer *model.User, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.services.User.Get(r.Context(), id, viewer)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.Respond(w, dto.NewUser(user), http.StatusOK)
}
