package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindUnauthenticated
)

// Error is an expected failure carrying its category and a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrInternal        = newError(KindInternal, "internal server error")
	ErrUserNotFound    = newError(KindNotFound, "user not found")
	ErrUnauthenticated = newError(KindUnauthenticated, "authentication credentials were not provided")
	ErrNotEnoughRights = newError(KindPermission, "not enough rights")

	ErrCannotSubscribeToYourself = newError(KindValidation, "cannot subscribe to yourself")
	ErrCannotSubscribeTwice      = newError(KindValidation, "cannot subscribe twice")
	ErrCannotUnsubscribe         = newError(KindValidation, "cannot unsubscribe if not subscribed")

	ErrCannotCreateUser = newError(KindValidation, "cannot create user")
	ErrUsernameRequired = newError(KindValidation, "username is required")
	ErrInvalidUsername  = newError(KindValidation, "username may contain only letters, digits and @/./+/-/_ and be at most 150 characters")
	ErrPasswordRequired = newError(KindValidation, "password is required")
)

func errNotSubscriber(subscriber, owner string) error {
	return newError(KindValidation, fmt.Sprintf("user %s is not currently a subscriber of %s", subscriber, owner))
}

// KindOf reports the category of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
