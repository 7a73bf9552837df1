package service

import (
	model "feekhata_backend/internals/features/finance/ledger/model"
)

// ComputeLedgerStatus derives the ledger status from due/paid. Every
// mutation path (ensurer, allocator, manual payments) must go through
// this function; status is never set independently.
func ComputeLedgerStatus(amountDue, amountPaid float64) model.LedgerStatus {
	if amountPaid <= 0 {
		return model.LedgerUnpaid
	}
	if amountPaid >= amountDue {
		return model.LedgerPaid
	}
	return model.LedgerPartial
}
