package sensor

import "errors"

var (
	ErrMalformed    = errors.New("malformed uplink payload")
	ErrUnknownOwner = errors.New("record owner is not a registered user")
	ErrInvalidRange = errors.New("invalid date range")
)
