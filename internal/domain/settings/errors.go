package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrInvalidClockTime = errors.New("invalid clock time, expected HH:MM")
)
