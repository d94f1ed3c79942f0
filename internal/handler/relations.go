package handler

import (
	"context"
	"net/http"

	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
)

type relationFunc func(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error)

// relationList serves one of the derived relationship views of the {id} user.
func (h *Handler) relationList(view relationFunc) userHandlerFunc {
	return func(viewer *model.User, w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.respondError(w, err)
			return
		}

		users, err := view(r.Context(), id, viewer)
		if err != nil {
			h.respondError(w, err)
			return
		}

		h.Respond(w, dto.NewUsers(users), http.StatusOK)
	}
}

func (h *Handler) subscribersList(viewer *model.User, w http.ResponseWriter, r *http.Request) {
	h.relationList(h.services.Subscribers)(viewer, w, r)
}

func (h *Handler) subscriptionsList(viewer *model.User, w http.ResponseWriter, r *http.Request) {
	h.relationList(h.services.Subscriptions)(viewer, w, r)
}

func (h *Handler) friendsList(viewer *model.User, w http.ResponseWriter, r *http.Request) {
	h.relationList(h.services.Friends)(viewer, w, r)
}

func (h *Handler) subscribersRemove(user *model.User, w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	subscriberID, err := pathID(r, "subscriberId")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.services.RemoveSubscriber(r.Context(), user, ownerID, subscriberID); err != nil {
		h.respondError(w, err)
		return
	}

	h.Respond(w, nil, http.StatusNoContent)
}
