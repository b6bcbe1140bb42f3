package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrFetch  = errors.New("fetch quote")
	ErrSend   = errors.New("send message")
	ErrEdit   = errors.New("edit message")
	ErrDelete = errors.New("delete message")
)
