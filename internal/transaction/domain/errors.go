package domain

import "errors"

var (
	ErrNotFound = errors.New("transaction_not_found")
)
