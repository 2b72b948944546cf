package sim

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid match options")
	ErrDuplicateUnit  = errors.New("unit id already in use")
)
