package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errNegativeAmount = errors.New("must not be negative")
	errNotPositive    = errors.New("must be greater than zero")
	errNotDecimal     = errors.New("must be a decimal amount")
)

func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errNotDecimal
	}
	if d.IsNegative() {
		return errNegativeAmount
	}
	return nil
}

func positive(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errNotDecimal
	}
	if !d.IsPositive() {
		return errNotPositive
	}
	return nil
}
