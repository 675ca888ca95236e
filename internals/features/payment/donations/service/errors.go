package service

import "errors"

// Error taxonomy for the donation lifecycle. Controllers map these to HTTP
// statuses; the payer only ever sees a generic message.
var (
	ErrValidation   = errors.New("validation error")
	ErrGateway      = errors.New("payment gateway error")
	ErrVerification = errors.New("payment verification failed")
	ErrPersistence  = errors.New("persistence error")
	ErrNotFound     = errors.New("not found")
)
