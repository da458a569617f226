package models

import "errors"

var (
	ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and dashes")
	ErrInvalidRole = errors.New("unknown membership role")
)
