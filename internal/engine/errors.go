package engine

import "errors"

var (
	// ErrInvalidInput is returned before any packing work when the settings
	// or an item size are unusable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOversize is returned when at least one item cannot fit an empty page
	// in any permitted orientation. The layout carries the rejected items and
	// no pages.
	ErrOversize = errors.New("items larger than the printable area")

	// ErrUnplaceable is returned when a freshly opened page accepts none of
	// the remaining items. The layout carries every page packed so far and
	// the items that could not be placed.
	ErrUnplaceable = errors.New("items could not be placed on an empty page")
)
