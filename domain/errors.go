package domain

import "errors"

var (
	// ErrInvalidArgument will throw if a price, bid or identity does not satisfy the operation
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized will throw if the caller is not allowed to perform the operation
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the asset is already listed
	ErrConflict = errors.New("Your Item already exist")
	// ErrOperationInProgress will throw if another operation holds the same listing key
	ErrOperationInProgress = errors.New("operation in progress")

	ErrNotAuction = errors.New("no active auction")
	ErrBidTooLow  = errors.New("bid too low")
	ErrNoBids     = errors.New("no bids")

	ErrInvalidConfiguration = errors.New("invalid configuration")

	// collaborator failures
	ErrCustodyTransferFailed = errors.New("custody transfer failed")
	ErrRefundFailed          = errors.New("refund failed")
	ErrPaymentFailed         = errors.New("payment failed")

	// ErrFatalInconsistency will throw if a collaborator failed after an irreversible
	// transfer, the ledger needs operator reconciliation
	ErrFatalInconsistency = errors.New("fatal inconsistency")

	ErrInternalServerError = errors.New("Internal Server Error")
	ErrInvalidAddress      = errors.New("Invalid address")
)
