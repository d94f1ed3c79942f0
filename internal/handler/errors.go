package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BloggingApp/friends-service/internal/service"
)

var (
	errNoToken       = service.ErrUnauthenticated
	errInvalidJWT    = &service.Error{Kind: service.KindUnauthenticated, Message: "invalid jwt"}
	errInvalidUserID = &service.Error{Kind: service.KindUnauthenticated, Message: "invalid user ID"}
	errNotFound      = &service.Error{Kind: service.KindNotFound, Message: "not found"}
	errInvalidBody   = &service.Error{Kind: service.KindValidation, Message: "invalid request body"}
)

func statusCode(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindPermission:
		return http.StatusForbidden
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError && !errors.Is(err, service.ErrInternal) {
		h.logger.Sugar().Errorf("unexpected error: %s", err.Error())
		err = service.ErrInternal
	}
	h.Respond(w, Resp{"errors": err.Error()}, code)
}

// pathID parses a positive integer path value. Anything else is a missing resource.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}
