package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid revolution input")
	ErrRevolutionNotFound  = errors.New("revolution not found")
	ErrAlreadyInitiated    = errors.New("revolution already initiated")
	ErrNotInitiated        = errors.New("revolution has not been initiated")
	ErrRateOutOfRange      = errors.New("rate is outside the [0,1] interval")
	ErrPeriodClosed        = errors.New("period has already closed")
	ErrDuplicateSubmission = errors.New("address already submitted in this period")
	ErrUnknownChoice       = errors.New("voting choice not found")
	ErrUnknownPeriod       = errors.New("period not found")
	ErrUnknownAuction      = errors.New("auction not found")
	ErrAlreadyStarted      = errors.New("auction already started")
	ErrAuctionNotOpen      = errors.New("auction is not open for bids")
	ErrCreatorRateTooLow   = errors.New("bid creator rate below auction minimum")
	ErrCreatorRateTooHigh  = errors.New("bid creator rate above 1")
	ErrNoBids              = errors.New("auction has no bids")
	ErrAuctionNotOver      = errors.New("auction has not ended")
	ErrAlreadySettled      = errors.New("auction is already settled")
	ErrConflict            = errors.New("revolution version conflict")
)
