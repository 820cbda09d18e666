package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("group chat not found")
	ErrStoreFull        = errors.New("group chat store is full")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidPresence  = errors.New("invalid presence")
	ErrSnapshotNotFound = errors.New("profile snapshot not found")
)
