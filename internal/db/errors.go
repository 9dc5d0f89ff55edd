package db

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrEmptyName = errors.New("name is empty")
)
