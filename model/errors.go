package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDirection    = errors.New("invalid direction")
	ErrRouteAlreadyExists  = errors.New("route already exists")
	ErrMalformedRouteToken = errors.New("malformed route token")
)

// LoadError points at the map line that stopped loading.
type LoadError struct {
	Line  int
	Token string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("map line %d, token %q: %v", e.Line, e.Token, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
