package domain

import "errors"

var (
	ErrAtLeastTwoTransactions = errors.New("at_least_two_transactions_required")
	ErrItemIndexOutOfRange    = errors.New("item_index_out_of_range")
	ErrReasonRequired         = errors.New("reason_required")
	ErrNotesRequired          = errors.New("notes_required")
	ErrTableOccupied          = errors.New("table_occupied")
)
