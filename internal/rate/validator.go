package rate

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrDaysNotNumber  = errors.New("days must be a whole number")
	ErrDaysOutOfRange = errors.New("days is out of range")
)

// WindowValidator turns a requested number of days into a history window.
type WindowValidator struct {
	defaultDays int
	maxDays     int
}

// ParseDays accepts an empty value (the default window) or a whole number in [1, max].
func (v *WindowValidator) ParseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return v.defaultDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrDaysNotNumber
	}
	if days < 1 || days > v.maxDays {
		return 0, ErrDaysOutOfRange
	}
	return days, nil
}

func (v *WindowValidator) MaxDays() int { return v.maxDays }

func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func NewWindowValidator(defaultDays, maxDays int) *WindowValidator {
	if maxDays < 1 {
		maxDays = 1
	}
	if defaultDays < 1 || defaultDays > maxDays {
		defaultDays = maxDays
	}
	return &WindowValidator{defaultDays: defaultDays, maxDays: maxDays}
}
