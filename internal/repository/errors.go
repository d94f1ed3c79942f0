package repository

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrSelfFollow     = errors.New("user cannot follow themselves")
	ErrFollowExists   = errors.New("follow already exists")
	ErrFollowNotFound = errors.New("follow not found")
)
