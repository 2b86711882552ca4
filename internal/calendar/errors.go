package calendar

import (
	"errors"

	"github.com/tartampluch/go-reldate/internal/config"
)

var (
	// ErrInvalidRange is returned when an enumeration is asked to walk an
	// infinite range.
	ErrInvalidRange = errors.New(config.ErrInvalidRange)

	// ErrInvalidOffset is returned when a week day offset is outside 1..7.
	ErrInvalidOffset = errors.New(config.ErrInvalidOffset)

	ErrUnknownCalendar = errors.New(config.ErrUnknownCalendar)
	ErrInvalidWorkweek = errors.New(config.ErrInvalidWorkweek)
	ErrICSDecode       = errors.New(config.ErrICSDecode)
)
