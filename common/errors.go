package common

import (
	"errors"
)

// common errors
var (
	ErrInvalidAddressFormat   = errors.New("invalid address format")
	ErrInvalidAddressCheckSum = errors.New("invalid address checksum")
)

type Causer interface {
	Cause() error
}
