package services

import "errors"

var (
	ErrInvalidBet        = errors.New("bet must be a positive integer")
	ErrInsufficientFunds = errors.New("insufficient stars for this bet")
	ErrUnknownGame       = errors.New("unknown game")
)
