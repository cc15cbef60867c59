package api

import "errors"

var (
	errEmptyEmail = errors.New("subject or body is required")
	errEmptyText  = errors.New("text is required")
)
