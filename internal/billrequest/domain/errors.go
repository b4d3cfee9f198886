package domain

import "errors"

var (
	ErrInvalidKind           = errors.New("invalid_request_kind")
	ErrPaymentRequestPending = errors.New("payment_request_pending")
	ErrPrintRequestPending   = errors.New("print_request_pending")
	ErrNoOpenTransactions    = errors.New("no_open_transactions")
)
