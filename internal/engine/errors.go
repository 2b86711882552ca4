package engine

import (
	"errors"

	"github.com/tartampluch/go-reldate/internal/config"
)

var (
	ErrRulesFormat    = errors.New(config.ErrRulesFormat)
	ErrRuleInvalid    = errors.New(config.ErrRuleInvalid)
	ErrUnknownPreset  = errors.New(config.ErrUnknownPreset)
	ErrInvalidHoliday = errors.New(config.ErrInvalidHoliday)
)
