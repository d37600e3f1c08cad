package payment

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payment period")
)
