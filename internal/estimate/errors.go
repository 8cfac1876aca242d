package estimate

import "errors"

var (
	// ErrUnknownRoom is returned when a room key is not in the catalog.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrUnknownBrand is returned when a brand key is not in the catalog.
	ErrUnknownBrand = errors.New("unknown brand")
)
