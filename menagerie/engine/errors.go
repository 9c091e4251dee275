package engine

import "errors"

// Every operation validates all preconditions before touching state, so any
// error below means nothing was applied.
var (
	ErrNotOwner            = errors.New("caller does not own this token")
	ErrUnknownID           = errors.New("unknown token id")
	ErrCooldownActive      = errors.New("action is on cooldown")
	ErrNotReady            = errors.New("structure is not ready to resolve")
	ErrNotActive           = errors.New("structure is not active")
	ErrAlreadyActive       = errors.New("structure is already active")
	ErrInsufficientInput   = errors.New("insufficient input resource")
	ErrInsufficientBalance = errors.New("insufficient resource balance")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrTooYoung            = errors.New("creature is below breeding level")
	ErrSameParent          = errors.New("parents must be distinct creatures")
	ErrNotListed           = errors.New("no active listing for this token")
	ErrNotSeller           = errors.New("caller is not the listing seller")
	ErrListed              = errors.New("creature has an active listing")
	ErrUnknownSubType      = errors.New("unknown sub-type")
	ErrInvalidPrice        = errors.New("listing price must be positive")
	ErrInvalidName         = errors.New("name is empty or too long")
	ErrInvalidAmount       = errors.New("amount must be positive")
)
