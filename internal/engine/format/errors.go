package format

import (
	"errors"

	"github.com/dshills/wordpad/internal/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrEmptySelection indicates a boolean toggle was requested without a range.
	ErrEmptySelection = errors.New("empty selection")

	// ErrInvalidValue indicates a font family or size outside the supported domain,
	// or an attribute passed to the wrong operation.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidColor indicates a malformed color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrRangeOutOfBounds is the buffer's out-of-bounds error, returned unmodified.
	ErrRangeOutOfBounds = buffer.ErrRangeOutOfBounds
)
